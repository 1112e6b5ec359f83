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

import "github.com/zaibyte/eccalc/config/settings"

// ParityOptions returns the valid parity counts of a stripe in descending order.
//
// Every even size in [MinStripeSize, stripeSize] contributes size/2.
func ParityOptions(stripeSize int) []int {
	if stripeSize < settings.MinStripeSize {
		return []int{}
	}

	opts := make([]int, 0, (stripeSize-settings.MinStripeSize)/2+1)
	for size := stripeSize; size >= settings.MinStripeSize; size-- {
		if size%2 == 0 {
			opts = append(opts, size/2)
		}
	}
	return opts
}

// DefaultParity picks the parity shown when the user hasn't chosen one.
func DefaultParity(opts []int, totalDrives int) int {
	if len(opts) == 0 {
		return 0
	}
	if totalDrives >= settings.PreferredParityMinDrives && contains(opts, settings.PreferredParity) {
		return settings.PreferredParity
	}
	return opts[0]
}

// SelectStripe keeps cur if it's feasible, otherwise picks the biggest one.
func SelectStripe(sizes []int, cur int) int {
	if len(sizes) == 0 {
		return 0
	}
	if contains(sizes, cur) {
		return cur
	}
	return sizes[0]
}

// Recommendation is the suggested stripe & parity,
// balancing efficiency and availability.
type Recommendation struct {
	StripeSize int `json:"stripe_size"`
	Parity     int `json:"parity"`
}

// Recommend returns the biggest stripe with EC:4 if possible.
// ok is false if there is no feasible stripe.
//
// p.StripeSizes must be in descending order, as PartitionServers returns.
func Recommend(p Partition) (r Recommendation, ok bool) {
	if len(p.StripeSizes) == 0 {
		return
	}

	stripe := p.StripeSizes[0]

	opts := ParityOptions(stripe)
	parity := 0
	if contains(opts, settings.PreferredParity) {
		parity = settings.PreferredParity
	} else if len(opts) > 0 {
		parity = opts[0]
	}
	return Recommendation{StripeSize: stripe, Parity: parity}, true
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
