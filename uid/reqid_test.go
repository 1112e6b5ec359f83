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

package uid

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseReqID(t *testing.T) {

	reqids := new(sync.Map)
	start := time.Now()

	wg := new(sync.WaitGroup)
	n := runtime.NumCPU()
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(seed int) {
			defer wg.Done()
			reqids.Store(seed, MakeReqID())
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		v, ok := reqids.Load(i)
		assert.True(t, ok)
		reqID := v.(string)
		assert.Len(t, reqID, ReqIDLen)

		inst, ts, err := ParseReqID(reqID)
		assert.Nil(t, err)
		assert.Equal(t, InstanceID(), inst)
		assert.True(t, ts.Sub(start) > -time.Minute && ts.Sub(start) < time.Minute)
	}
}

func TestParseReqIDBad(t *testing.T) {
	for _, s := range []string{"", "abc", "zz" + MakeReqID()[2:]} {
		_, _, err := ParseReqID(s)
		assert.Equal(t, ErrBadReqID, err, s)
	}
}

func BenchmarkMakeReqID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = MakeReqID()
	}
}

func BenchmarkMakeReqID_Parallel(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = MakeReqID()
		}
	})
}

func BenchmarkParseReqID(b *testing.B) {
	s := MakeReqID()
	for i := 0; i < b.N; i++ {
		_, _, _ = ParseReqID(s)
	}
}
