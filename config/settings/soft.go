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

// The idea of soft settings is from Dragonboat.

package settings

import "time"

// Tuning these parameters only changes how often upstream APIs are hit.
// It will not change any calculation result.

// Soft is the soft settings that can be changed after the deployment of a
// system.
var Soft = getDefaultSoftSettings()

type soft struct {

	//
	// stats
	//
	// StatsTTL is how long a fetched project metric is considered fresh.
	StatsTTL time.Duration
	// StatsFetchTimeout bounds every single upstream request.
	StatsFetchTimeout time.Duration
	// StatsRefreshInterval is the period of the background refresher.
	StatsRefreshInterval time.Duration

	// UpstreamRate is the token refill rate (per second) for upstream calls.
	// GitHub allows 60 unauthenticated requests per hour.
	UpstreamRate float64
	// UpstreamBurst is the token bucket capacity.
	UpstreamBurst int64
}

func getDefaultSoftSettings() soft {
	return soft{
		StatsTTL:             5 * time.Hour,
		StatsFetchTimeout:    5 * time.Second,
		StatsRefreshInterval: time.Hour,

		UpstreamRate:  60.0 / 3600,
		UpstreamBurst: 10,
	}
}
