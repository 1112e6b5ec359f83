/*
 * Copyright (c) 2020. Temple3x (temple3x@gmail.com)
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package xdigest

import (
	"encoding/hex"
	"hash"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var _ hash.Hash32 = New()

func TestDigestMatchesOneShot(t *testing.T) {
	b := []byte("rustfs erasure code results")

	d := New()
	_, _ = d.Write(b[:6])
	_, _ = d.WriteString(string(b[6:]))
	assert.Equal(t, Sum32(b), d.Sum32())
	assert.Equal(t, Sum32(b), Sum32String(string(b)))
	assert.Len(t, d.Sum(nil), d.Size())

	d.Reset()
	assert.Equal(t, Sum32(nil), d.Sum32())
}

func TestETag(t *testing.T) {
	b := []byte("Metric,Value\n")
	e := ETag(b)
	assert.Len(t, e, 10)
	assert.True(t, strings.HasPrefix(e, `"`) && strings.HasSuffix(e, `"`))

	d := New()
	_, _ = d.Write(b)
	assert.Equal(t, hex.EncodeToString(d.Sum(nil)), e[1:9])
	assert.Equal(t, e, ETag(b))
	assert.NotEqual(t, e, ETag([]byte("Metric,Value\r\n")))
}
