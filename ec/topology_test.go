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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zaibyte/eccalc/errno"
)

func TestPartitionServers(t *testing.T) {
	tests := []struct {
		servers, drives int
		sps, shards     int
		sizes           []int
		err             error
	}{
		{8, 16, 8, 1, []int{16, 8}, nil},
		{12, 1, 12, 1, []int{12}, nil},
		{6, 2, 6, 1, []int{12, 6}, nil},
		{5, 4, 5, 1, []int{10, 5}, nil},
		{4, 1, 4, 1, []int{4}, nil},
		{4, 3, 4, 1, []int{12, 4}, nil},
		{16, 1, 16, 1, []int{16}, nil},
		{32, 8, 16, 2, []int{16}, nil},
		{24, 8, 12, 2, []int{12}, nil},
		{100, 4, 10, 10, []int{10}, nil},
		{3, 16, 3, 1, []int{}, errno.ErrInfeasibleTopology},
		{17, 16, 1, 17, []int{}, errno.ErrInfeasibleTopology},
		{34, 16, 2, 17, []int{}, errno.ErrInfeasibleTopology},
		{0, 16, 0, 0, []int{}, errno.ErrInfeasibleTopology},
	}

	for _, tt := range tests {
		p := PartitionServers(tt.servers, tt.drives)
		assert.Equal(t, tt.sps, p.ServersPerShard, "servers: %d", tt.servers)
		assert.Equal(t, tt.shards, p.Shards, "servers: %d", tt.servers)
		assert.Equal(t, tt.sizes, p.StripeSizes, "servers: %d", tt.servers)
		assert.Equal(t, tt.err, p.Err, "servers: %d", tt.servers)
	}
}

// Servers per shard must be the largest divisor in range, not the first one.
func TestPartitionServersLargestDivisor(t *testing.T) {
	for servers := 1; servers <= 1024; servers++ {
		p := PartitionServers(servers, 1)

		exp := 1
		for d := 16; d >= 1; d-- {
			if servers%d == 0 {
				exp = d
				break
			}
		}
		assert.Equal(t, exp, p.ServersPerShard, "servers: %d", servers)
		assert.Equal(t, servers, p.ServersPerShard*p.Shards, "servers: %d", servers)

		if exp >= 4 {
			assert.NoError(t, p.Err, "servers: %d", servers)
			assert.NotEmpty(t, p.StripeSizes, "servers: %d", servers)
		} else {
			assert.Equal(t, errno.ErrInfeasibleTopology, p.Err, "servers: %d", servers)
		}

		for i := 1; i < len(p.StripeSizes); i++ {
			assert.True(t, p.StripeSizes[i-1] > p.StripeSizes[i], "must be descending")
		}
		for _, s := range p.StripeSizes {
			assert.True(t, s <= 16)
		}
	}
}

func TestValidate(t *testing.T) {
	for _, drives := range []int{0, -1, 257} {
		p := Validate(Topology{Servers: 8, DrivesPerServer: drives, DriveCapacityTiB: 8})
		assert.Equal(t, errno.ErrDrivesOutOfRange, p.Err)
		assert.Empty(t, p.StripeSizes)
		assert.Equal(t, 0, p.ServersPerShard)
		assert.Equal(t, 0, p.Shards)
	}

	for _, c := range []float64{0, 0.5, -8, math.NaN(), math.Inf(1)} {
		p := Validate(Topology{Servers: 8, DrivesPerServer: 16, DriveCapacityTiB: c})
		assert.Equal(t, errno.ErrCapacityTooSmall, p.Err, "capacity: %v", c)
		assert.Empty(t, p.StripeSizes)
	}

	// Drives limit is checked before capacity.
	p := Validate(Topology{Servers: 8, DrivesPerServer: 0, DriveCapacityTiB: 0})
	assert.Equal(t, errno.ErrDrivesOutOfRange, p.Err)

	p = Validate(Topology{Servers: 8, DrivesPerServer: 256, DriveCapacityTiB: 1})
	assert.NoError(t, p.Err)
	assert.Equal(t, []int{16, 8}, p.StripeSizes)

	p = Validate(Topology{Servers: 8, DrivesPerServer: 1, DriveCapacityTiB: 1})
	assert.NoError(t, p.Err)
	assert.Equal(t, []int{8}, p.StripeSizes)
}

func TestTotalDrives(t *testing.T) {
	assert.Equal(t, 128, DefaultTopology().TotalDrives())
	assert.Equal(t, 0, Topology{}.TotalDrives())
}
