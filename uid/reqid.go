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

// Package uid provides methods to generate request IDs & instance IDs.
package uid

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/templexxx/tsc"
	"github.com/templexxx/xhex"
)

// reqid struct:
// +-----------------+------------+---------------+
// |  instanceID(48) | padding(16)| timestamp(64) |
// +-----------------+------------+---------------+
//
// Total length: 16B, 32B after hex encoding.
//
// Because timestamp's precision is nanosecond,
// and getting timestamp has cost too,
// it's hard to find two same reqid
// even multi processes run on the same machine (has same instanceID).

// ReqIDLen is the length of encoded request ID.
const ReqIDLen = 32

// ErrBadReqID is returned by ParseReqID when the input isn't a request ID.
var ErrBadReqID = errors.New("bad request id")

var _instanceID = makeInstanceID()

func makeInstanceID() [6]byte {
	var b [6]byte
	copy(b[:], uuid.NodeID())
	return b
}

// InstanceID returns the instance ID (according MAC address).
//
// Warn:
// It maybe not unique in container,
// MAC address maybe not unique in cluster.
func InstanceID() string {
	return hex.EncodeToString(_instanceID[:])
}

// Buf will escape to heap because can't inline hex encoding.
// So make a pool here.
var reqMPool = sync.Pool{
	New: func() interface{} {
		p := make([]byte, 16+ReqIDLen)
		return &p
	},
}

// MakeReqID makes a request ID.
// Request ID is encoded in 128bit hex codes which is as same as Jaeger.
//
// Warn:
// Maybe not unique but it's acceptable.
func MakeReqID() string {

	p := reqMPool.Get().(*[]byte)
	b := *p

	copy(b[:6], _instanceID[:])
	b[6], b[7] = 0, 0
	binary.LittleEndian.PutUint64(b[8:16], uint64(tsc.UnixNano()))

	xhex.Encode(b[16:16+ReqIDLen], b[:16])
	v := string(b[16 : 16+ReqIDLen])
	reqMPool.Put(p)

	return v
}

// ParseReqID parses reqID made by MakeReqID.
func ParseReqID(reqID string) (instanceID string, t time.Time, err error) {

	if len(reqID) != ReqIDLen {
		err = ErrBadReqID
		return
	}

	var b [16]byte
	if xhex.Decode(b[:], []byte(reqID)) != nil {
		err = ErrBadReqID
		return
	}
	instanceID = hex.EncodeToString(b[0:6])
	t = time.Unix(0, int64(binary.LittleEndian.Uint64(b[8:16])))
	return
}
