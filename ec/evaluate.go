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
	"github.com/zaibyte/eccalc/xbytes"
	"github.com/zaibyte/eccalc/xmath"
)

// Result is the capacity & fault tolerance of a configuration.
//
// All tolerance counts are rounded down,
// reported guarantees never exceed what the encoding can recover.
type Result struct {
	RawBytes    float64 `json:"raw_bytes"`
	UsableBytes float64 `json:"usable_bytes"`
	Efficiency  float64 `json:"efficiency"` // In [0, 1].

	// DriveFailures is the drives one stripe could lose.
	DriveFailures int `json:"drive_failures_per_stripe"`
	// DriveFailureTolerance is the drives the whole cluster could lose.
	DriveFailureTolerance          int `json:"drive_failure_tolerance"`
	ServerFailureTolerance         int `json:"server_failure_tolerance"`
	ServerFailureTolerancePerShard int `json:"server_failure_tolerance_per_shard"`
}

// Evaluate computes Result.
// It returns zero Result if p has error or stripe/parity is zero.
func Evaluate(t Topology, p Partition, stripe, parity int) Result {

	if p.Err != nil || stripe == 0 || parity == 0 {
		return Result{}
	}

	total := float64(t.TotalDrives())
	s := float64(stripe)

	raw := total * xbytes.TiBToBytes(t.DriveCapacityTiB)
	eff := (s - float64(parity)) / s

	df := parity
	// Half-stripe parity can't recover every failure pattern (no quorum),
	// so report one fewer.
	if float64(df) == s/2 {
		df--
	}

	sps := float64(p.ServersPerShard)
	return Result{
		RawBytes:                       raw,
		UsableBytes:                    raw * eff,
		Efficiency:                     eff,
		DriveFailures:                  df,
		DriveFailureTolerance:          xmath.FloorInt(float64(df) / s * total),
		ServerFailureTolerancePerShard: xmath.FloorInt(float64(df) * sps / s),
		ServerFailureTolerance:         xmath.FloorInt(float64(df) * sps * float64(p.Shards) / s),
	}
}
