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

// Package ec implements the erasure-code capacity calculator.
//
// The calculator is a pipeline of pure functions:
//
//	Validate/Partition -> ParityOptions -> Evaluate
//
// Calculate runs the whole pipeline for one Input.
// Nothing is cached, every call recomputes all derived values.
package ec

import (
	"math"
	"sort"

	"github.com/zaibyte/eccalc/config/settings"
	"github.com/zaibyte/eccalc/errno"
)

// Topology is the physical cluster configuration.
type Topology struct {
	Servers          int     `json:"servers"`
	DrivesPerServer  int     `json:"drives_per_server"`
	DriveCapacityTiB float64 `json:"drive_capacity_tib"`
}

// TotalDrives returns drives of the whole cluster.
func (t Topology) TotalDrives() int {
	return t.Servers * t.DrivesPerServer
}

// DefaultTopology returns the topology shown before any input.
func DefaultTopology() Topology {
	return Topology{
		Servers:          settings.DefaultServers,
		DrivesPerServer:  settings.DefaultDrivesPerServer,
		DriveCapacityTiB: settings.DefaultDriveCapacityTiB,
	}
}

// Partition is how servers are grouped into shards,
// and the stripe sizes which are feasible for the grouping.
//
// A shard is a group of servers sharing one stripe boundary.
type Partition struct {
	ServersPerShard int   `json:"servers_per_shard"`
	Shards          int   `json:"shards"`
	StripeSizes     []int `json:"stripe_sizes"` // Descending.
	Err             error `json:"-"`
}

// PartitionServers groups servers into shards.
//
// Servers per shard is the largest divisor of servers in [1, MaxServersPerShard].
// A shard with less than MinServersPerShard servers is infeasible.
func PartitionServers(servers, drivesPerServer int) Partition {

	if servers < 1 {
		return Partition{StripeSizes: []int{}, Err: errno.ErrInfeasibleTopology}
	}

	p := Partition{ServersPerShard: servers, Shards: 1}
	// Scan all candidates, the last (largest) divisor wins.
	for d := 1; d <= settings.MaxServersPerShard; d++ {
		if servers%d == 0 {
			p.ServersPerShard = d
			p.Shards = servers / d
		}
	}

	if p.ServersPerShard < settings.MinServersPerShard {
		p.StripeSizes = []int{}
		p.Err = errno.ErrInfeasibleTopology
		return p
	}

	if p.Shards > 1 {
		// One erasure set spans exactly one shard's servers.
		p.StripeSizes = []int{p.ServersPerShard}
		return p
	}

	drives := p.ServersPerShard * drivesPerServer
	sizes := make([]int, 0, settings.MaxStripeSize/p.ServersPerShard)
	for s := p.ServersPerShard; s <= settings.MaxStripeSize; s += p.ServersPerShard {
		if drives%s == 0 {
			sizes = append(sizes, s)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	p.StripeSizes = sizes
	return p
}

// Validate checks drives & capacity limits before partitioning.
// Any violation short-circuits with an empty Partition carrying the error.
func Validate(t Topology) Partition {

	if t.DrivesPerServer < settings.MinDrivesPerServer || t.DrivesPerServer > settings.MaxDrivesPerServer {
		return Partition{StripeSizes: []int{}, Err: errno.ErrDrivesOutOfRange}
	}

	c := t.DriveCapacityTiB
	if math.IsNaN(c) || math.IsInf(c, 0) || c < settings.MinDriveCapacityTiB {
		return Partition{StripeSizes: []int{}, Err: errno.ErrCapacityTooSmall}
	}

	return PartitionServers(t.Servers, t.DrivesPerServer)
}
