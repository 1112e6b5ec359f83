// Copyright (c) 2020. Temple3x (temple3x@gmail.com)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Package xdigest provides hash functions on byte sequences by wrapping xxhash.
// These hash functions are used for content fingerprints (e.g. HTTP ETag)
// that need to map byte sequences to a uniform distribution on unsigned 32-bit integers.
package xdigest

import (
	"github.com/cespare/xxhash/v2"
	"github.com/templexxx/xhex"
)

type digest struct {
	xxh *xxhash.Digest
}

// New creates a xdigest.
func New() *digest {
	return &digest{xxhash.New()}
}

// Write (via the embedded io.Writer interface) adds more data to the running hash.
// It never returns an error.
func (d *digest) Write(b []byte) (n int, err error) {
	return d.xxh.Write(b)
}

// WriteString adds more data to the running hash.
// It never returns an error.
func (d *digest) WriteString(s string) (n int, err error) {
	return d.xxh.WriteString(s)
}

// Sum appends the current hash to b and returns the resulting slice.
// It does not change the underlying hash state.
func (d *digest) Sum(b []byte) []byte {
	return appendSum32(b, d.Sum32())
}

// Sum32 returns the current hash.
func (d *digest) Sum32() uint32 {
	return uint32(d.xxh.Sum64())
}

// Reset resets the Hash to its initial state.
func (d *digest) Reset() {
	d.xxh.Reset()
}

// Size returns the number of bytes Sum will return.
func (d *digest) Size() int {
	return 4
}

// BlockSize returns the hash's underlying block size.
func (d *digest) BlockSize() int {
	return 32
}

// Sum32 computes the 32-bit xxHash_low32bit digest of b.
func Sum32(b []byte) uint32 {
	return uint32(xxhash.Sum64(b))
}

// Sum32String computes the 32-bit xxHash_low32bit digest of s.
func Sum32String(s string) uint32 {
	return uint32(xxhash.Sum64String(s))
}

// ETag returns a strong HTTP entity tag of b, e.g. "1a2b3c4d".
func ETag(b []byte) string {
	var s [4]byte
	var h [10]byte
	appendSum32(s[:0], Sum32(b))
	h[0], h[9] = '"', '"'
	xhex.Encode(h[1:9], s[:])
	return string(h[:])
}

func appendSum32(b []byte, s uint32) []byte {
	return append(
		b,
		byte(s>>24),
		byte(s>>16),
		byte(s>>8),
		byte(s),
	)
}
