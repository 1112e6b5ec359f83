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

package xbytes

import (
	"io"
	"sync"
)

// Buffer is a byte buffer which could be read after written.
type Buffer interface {
	io.ReadWriteCloser
	Bytes() []byte
	Len() int
}

// MaxBytesSizeInPool is the initial capacity of pooled buffers.
// An exported summary is a few KiB, 8 KiB is enough for most cases.
const MaxBytesSizeInPool = 8 * 1024

var (
	_bufferPool = newBufferPool()
	// GetBuffer retrieves a buffer from the buffer pool, creating one if necessary.
	GetBuffer = _bufferPool.Get
)

// A bufferPool is a type-safe wrapper around a sync.Pool.
type bufferPool struct {
	p *sync.Pool
}

func newBufferPool() bufferPool {
	return bufferPool{p: &sync.Pool{
		New: func() interface{} {
			return &BytesBuffer{S: make([]byte, 0, MaxBytesSizeInPool)}
		},
	}}
}

// Get retrieves a BytesBuffer from the pool, creating one if necessary.
func (p bufferPool) Get() *BytesBuffer {
	buf := p.p.Get().(*BytesBuffer)
	buf.reset()
	buf.pool = p
	return buf
}

func (p bufferPool) put(buf *BytesBuffer) {
	p.p.Put(buf)
}

// BytesBuffer is a thin wrapper around a byte slice. It's intended to be pooled, so
// the only way to construct one is via a bufferPool.
type BytesBuffer struct {
	S    []byte
	i    int64
	pool bufferPool
}

// Write implements the io.Writer interface.
func (r *BytesBuffer) Write(bs []byte) (int, error) {
	r.S = append(r.S, bs...)
	return len(bs), nil
}

// WriteString implements the io.StringWriter interface.
func (r *BytesBuffer) WriteString(s string) (int, error) {
	r.S = append(r.S, s...)
	return len(s), nil
}

// Read implements the io.Reader interface.
func (r *BytesBuffer) Read(b []byte) (n int, err error) {
	if r.i >= int64(len(r.S)) {
		return 0, io.EOF
	}
	n = copy(b, r.S[r.i:])
	r.i += int64(n)
	return
}

// Close returns the BytesBuffer to its bufferPool.
//
// Callers must not retain references to the BytesBuffer after calling Close.
func (r *BytesBuffer) Close() error {
	r.pool.put(r)
	return nil
}

// Bytes returns a mutable reference to the underlying byte slice.
func (r *BytesBuffer) Bytes() []byte {
	return r.S
}

// Len returns the written length.
func (r *BytesBuffer) Len() int {
	return len(r.S)
}

func (r *BytesBuffer) reset() {
	r.S = r.S[:0]
	r.i = 0
}
