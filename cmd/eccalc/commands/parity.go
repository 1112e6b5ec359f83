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
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zaibyte/eccalc/ec"
)

var parityCmd = &cobra.Command{
	Use:   "parity <stripe>",
	Short: "List parity options of a stripe size",
	Args:  cobra.ExactArgs(1),
	RunE:  runParity,
}

type parityOutput struct {
	StripeSize    int   `json:"stripe_size"`
	ParityOptions []int `json:"parity_options"`
}

func runParity(cmd *cobra.Command, args []string) error {
	stripe, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("illegal stripe size: %q", args[0])
	}
	opts := ec.ParityOptions(stripe)
	return printResult(cmd, &parityOutput{StripeSize: stripe, ParityOptions: opts}, [][2]string{
		{"Stripe size (K + M)", fmt.Sprint(stripe)},
		{"Parity options", joinInts(opts)},
	})
}
