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

// Package erasure proves tolerance figures by running real Reed-Solomon
// encoding and reconstruction over a stripe.
package erasure

import (
	"bytes"
	"errors"

	"github.com/klauspost/reedsolomon"
	"github.com/zaibyte/eccalc/ec"
	"github.com/zaibyte/eccalc/xdigest"
	"github.com/zaibyte/eccalc/xerrors"
)

// ShardSize is the size of each shard in the payload.
const ShardSize = 64

var (
	// ErrBadShape is returned when stripe/parity/failures can't describe an erasure set.
	ErrBadShape = errors.New("bad erasure shape")
	// ErrInvalidPlan is returned by VerifyPlan for a plan with validation error.
	ErrInvalidPlan = errors.New("invalid plan")
)

// Report is the result of Verify.
type Report struct {
	StripeSize int `json:"stripe_size"`
	Parity     int `json:"parity"`
	Failures   int `json:"failures"`
	// Patterns is the number of erasure patterns tried.
	Patterns int `json:"patterns"`
	// Recovered is the number of patterns which were reconstructed bit-exact.
	Recovered int `json:"recovered"`
	// Checksum is the xdigest of the original payload.
	Checksum uint32 `json:"checksum"`
}

// OK returns true if every pattern is recovered.
func (r Report) OK() bool {
	return r.Patterns > 0 && r.Recovered == r.Patterns
}

// MaxRecoverable returns the max number of lost shards a stripe could survive,
// 0 for a shape which can't be encoded.
func MaxRecoverable(stripe, parity int) int {
	if !validShape(stripe, parity) {
		return 0
	}
	return parity
}

func validShape(stripe, parity int) bool {
	return stripe >= 2 && stripe <= 256 && parity >= 1 && parity < stripe
}

// Verify encodes a deterministic payload into stripe-parity data shards
// and parity parity shards, then erases every contiguous window of failures
// shards (start rotates over the whole stripe), reconstructs and compares.
func Verify(stripe, parity, failures int) (Report, error) {

	if !validShape(stripe, parity) {
		return Report{}, xerrors.WithMsgf(ErrBadShape, "stripe: %d, parity: %d", stripe, parity)
	}
	if failures < 0 || failures > stripe {
		return Report{}, xerrors.WithMsgf(ErrBadShape, "failures: %d out of [0, %d]", failures, stripe)
	}

	data := stripe - parity
	enc, err := reedsolomon.New(data, parity)
	if err != nil {
		return Report{}, err
	}

	payload := makePayload(data * ShardSize)
	shards, err := enc.Split(payload)
	if err != nil {
		return Report{}, err
	}
	if err = enc.Encode(shards); err != nil {
		return Report{}, err
	}

	rep := Report{
		StripeSize: stripe,
		Parity:     parity,
		Failures:   failures,
		Checksum:   xdigest.Sum32(payload),
	}

	patterns := stripe
	if failures == 0 || failures == stripe {
		patterns = 1
	}

	work := make([][]byte, stripe)
	for start := 0; start < patterns; start++ {
		for i := range shards {
			work[i] = append([]byte(nil), shards[i]...)
		}
		for i := 0; i < failures; i++ {
			work[(start+i)%stripe] = nil
		}

		rep.Patterns++
		if enc.Reconstruct(work) != nil {
			continue
		}
		if equal(shards, work) {
			rep.Recovered++
		}
	}
	return rep, nil
}

// VerifyPlan verifies the per-stripe drive failure tolerance of plan.
func VerifyPlan(plan ec.Plan) (Report, error) {
	if plan.Err != nil {
		return Report{}, xerrors.WithMsg(ErrInvalidPlan, plan.Err.Error())
	}
	return Verify(plan.Input.StripeSize, plan.Input.Parity, plan.Result.DriveFailures)
}

func makePayload(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i*31 + 7)
	}
	return p
}

func equal(a, b [][]byte) bool {
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
