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

	"github.com/spf13/cobra"
	"github.com/zaibyte/eccalc/ec"
	"github.com/zaibyte/eccalc/export"
	"github.com/zaibyte/eccalc/metricutil"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate usable capacity and failure tolerance",
	Long: `Calculate usable capacity and failure tolerance of a cluster.

Stripe size and parity are adjusted to feasible values,
the effective ones are printed.

Examples:
  # Default cluster: 8 servers, 16 drives per server, 8 TiB drives
  eccalc calc

  # 12 servers with 7.68 TiB drives, EC 12+4
  eccalc calc --servers 12 --capacity 7.68TiB --stripe 16 --parity 4

  # Reproduce a shared calculation
  eccalc calc --share-url 'https://rustfs.com/erasure-code-calculator?servers=8&drives=16&capacity=8&stripe=16&parity=4'`,
	RunE: runCalc,
}

func init() {
	addInputFlags(calcCmd)
}

// planOutput is the JSON form of a calculation.
type planOutput struct {
	ec.Plan
	Summary []export.Pair `json:"summary"`
}

func runCalc(cmd *cobra.Command, args []string) error {
	in, err := inputFromFlags(cmd)
	if err != nil {
		return err
	}
	plan := ec.Calculate(in)
	metricutil.ObserveCalc(plan.Err)
	if !plan.Valid() {
		return plan.Err
	}

	pairs := make([][2]string, 0, 16)
	for _, p := range export.Summary(plan) {
		pairs = append(pairs, [2]string{p.Label, p.Value})
	}
	pairs = append(pairs,
		[2]string{"Servers per shard", fmt.Sprint(plan.Partition.ServersPerShard)},
		[2]string{"Shards", fmt.Sprint(plan.Partition.Shards)},
		[2]string{"Feasible stripe sizes", joinInts(plan.Partition.StripeSizes)},
		[2]string{"Parity options", joinInts(plan.ParityOptions)},
	)
	if r := plan.Recommendation; r != nil {
		pairs = append(pairs, [2]string{"Recommended", fmt.Sprintf("%d + %d (EC:%d)", r.StripeSize-r.Parity, r.Parity, r.Parity)})
	}
	return printResult(cmd, &planOutput{Plan: plan, Summary: export.Summary(plan)}, pairs)
}
