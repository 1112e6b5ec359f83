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
	"github.com/zaibyte/eccalc/errno"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend stripe size and parity of a topology",
	Long: `Recommend the biggest feasible stripe size with EC:4 if it's an option,
otherwise with the biggest parity.

Examples:
  eccalc recommend --servers 6 --drives 12`,
	RunE: runRecommend,
}

func init() {
	addInputFlags(recommendCmd)
}

type recommendOutput struct {
	Partition      ec.Partition      `json:"partition"`
	Recommendation ec.Recommendation `json:"recommendation"`
}

func runRecommend(cmd *cobra.Command, args []string) error {
	in, err := inputFromFlags(cmd)
	if err != nil {
		return err
	}
	p := ec.Validate(in.Topology)
	if p.Err != nil {
		return p.Err
	}
	r, ok := ec.Recommend(p)
	if !ok {
		return errno.ErrNoParity
	}

	return printResult(cmd, &recommendOutput{Partition: p, Recommendation: r}, [][2]string{
		{"Servers per shard", fmt.Sprint(p.ServersPerShard)},
		{"Shards", fmt.Sprint(p.Shards)},
		{"Stripe size (K + M)", fmt.Sprint(r.StripeSize)},
		{"Parity (M)", fmt.Sprint(r.Parity)},
		{"Data shards (K)", fmt.Sprint(r.StripeSize - r.Parity)},
	})
}
