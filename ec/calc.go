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

package ec

import (
	"github.com/zaibyte/eccalc/config/settings"
	"github.com/zaibyte/eccalc/errno"
)

const minTotalDrives = settings.MinTotalDrives

// Input is all the values a user could change.
type Input struct {
	Topology
	StripeSize int `json:"stripe_size"`
	Parity     int `json:"parity"`
}

// DefaultInput returns DefaultTopology without stripe & parity,
// Calculate will pick them.
func DefaultInput() Input {
	return Input{Topology: DefaultTopology()}
}

// Plan is the output of Calculate.
type Plan struct {
	// Input is the effective input:
	// stripe & parity are adjusted to feasible values.
	Input          Input           `json:"input"`
	Partition      Partition       `json:"partition"`
	ParityOptions  []int           `json:"parity_options"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
	Result         Result          `json:"result"`
	// Err is the validation error, nil if valid.
	// Result is zero if Err != nil.
	Err error `json:"-"`
}

// Calculate runs the whole pipeline synchronously.
//
// The stripe size is kept if it's feasible, otherwise the biggest one is picked.
// The parity is kept if it's an option, otherwise DefaultParity is picked.
func Calculate(in Input) Plan {

	p := Validate(in.Topology)
	total := in.TotalDrives()

	stripe := SelectStripe(p.StripeSizes, in.StripeSize)

	opts := []int{}
	if p.Err == nil && stripe > 0 && total >= minTotalDrives {
		opts = ParityOptions(stripe)
	}

	var parity int
	if contains(opts, in.Parity) {
		parity = in.Parity
	} else {
		parity = DefaultParity(opts, total)
	}

	plan := Plan{
		Input: Input{
			Topology:   in.Topology,
			StripeSize: stripe,
			Parity:     parity,
		},
		Partition:     p,
		ParityOptions: opts,
		Err:           validationErr(p, total, stripe, opts),
	}

	if r, ok := Recommend(p); ok {
		plan.Recommendation = &r
	}

	if plan.Err == nil {
		plan.Result = Evaluate(in.Topology, p, stripe, parity)
	}
	return plan
}

// Valid returns true if the Plan has no validation error.
func (p Plan) Valid() bool {
	return p.Err == nil
}

// ErrMsg returns the validation error message, "" if valid.
func (p Plan) ErrMsg() string {
	if p.Err == nil {
		return ""
	}
	return p.Err.Error()
}

// validationErr returns the first validation error found.
//
// Order: input limits, total drives, topology, parity.
// Too few drives is reported whatever the partition is.
func validationErr(p Partition, total, stripe int, opts []int) error {
	if p.Err != nil && p.Err != errno.ErrInfeasibleTopology {
		return p.Err
	}
	if total < minTotalDrives {
		return errno.ErrInsufficientDrives
	}
	if p.Err != nil {
		return p.Err
	}
	if stripe > 0 && len(opts) == 0 {
		return errno.ErrNoParity
	}
	return nil
}
