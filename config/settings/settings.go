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

// Package settings is the global settings of eccalc.
// Don't modify it unless you totally know what will happen.
package settings

const (
	kib = 1024
	mib = kib * 1024
	gib = mib * 1024
	tib = gib * 1024
)

// TiB is the number of bytes in a tebibyte.
// Drive capacity is always given in TiB and converted with it.
const TiB = float64(tib)

/* ----- Erasure Set ----- */
const (
	// MaxStripeSize is the biggest erasure set (K+M) a cluster may use.
	//
	// It's also the upper bound of servers in a shard:
	// one erasure set never spans more than one shard.
	MaxStripeSize = 16
	// MaxServersPerShard is the upper bound of the divisor scan.
	MaxServersPerShard = MaxStripeSize
	// MinServersPerShard is the smallest shard which could keep data
	// available after losing a server.
	MinServersPerShard = 4
	// MinStripeSize is the smallest stripe which has any parity option.
	MinStripeSize = 4

	// PreferredParity is the parity picked by default when the cluster
	// is big enough (PreferredParityMinDrives) and the stripe offers it.
	// EC:4 is a balanced choice between efficiency and durability.
	PreferredParity          = 4
	PreferredParityMinDrives = 16
)

/* ----- Topology Limits ----- */
const (
	MinDrivesPerServer  = 1
	MaxDrivesPerServer  = 256
	MinDriveCapacityTiB = 1
	// MinTotalDrives is the minimum drives of the whole cluster.
	MinTotalDrives = 4
)

/* ----- Defaults ----- */
const (
	DefaultServers          = 8
	DefaultDrivesPerServer  = 16
	DefaultDriveCapacityTiB = 8

	// DefaultLogRoot is the default log files path root.
	// e.g.:
	// <DefaultLogRoot>/<appName>/access.log
	// & <DefaultLogRoot>/<appName>/error.log
	DefaultLogRoot = "/var/log/eccalc"

	// DefaultShareBase is the calculator page which share links point to.
	DefaultShareBase = "https://rustfs.com/erasure-code-calculator"
)

/* ----- Project ----- */
const (
	GitHubRepo = "rustfs/rustfs"
	DockerRepo = "rustfs/rustfs"

	// Fallbacks are shown when upstream APIs are unreachable.
	FallbackStars       = 11000
	FallbackForks       = 500
	FallbackCommits     = 2000
	FallbackDockerPulls = 100000
)
