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

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zaibyte/eccalc/ec"
	"github.com/zaibyte/eccalc/erasure"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a stripe survives its parity count of drive failures",
	Long: `Encode a payload with Reed-Solomon using the effective stripe size and parity,
erase every contiguous window of parity shards and reconstruct it.

It fails if any erasure pattern isn't recovered bit-exact.`,
	RunE: runVerify,
}

func init() {
	addInputFlags(verifyCmd)
}

var errNotRecovered = errors.New("not all erasure patterns are recovered")

func runVerify(cmd *cobra.Command, args []string) error {
	in, err := inputFromFlags(cmd)
	if err != nil {
		return err
	}
	rep, err := erasure.VerifyPlan(ec.Calculate(in))
	if err != nil {
		return err
	}
	err = printResult(cmd, &rep, [][2]string{
		{"Stripe size (K + M)", fmt.Sprint(rep.StripeSize)},
		{"Parity (M)", fmt.Sprint(rep.Parity)},
		{"Failures per pattern", fmt.Sprint(rep.Failures)},
		{"Recovered", fmt.Sprintf("%d / %d", rep.Recovered, rep.Patterns)},
		{"Checksum", fmt.Sprintf("%08x", rep.Checksum)},
	})
	if err != nil {
		return err
	}
	if !rep.OK() {
		return errNotRecovered
	}
	return nil
}
