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

package stats

import (
	"context"
	"strconv"

	"github.com/zaibyte/eccalc/config/settings"
)

type dockerRepoResp struct {
	PullCount *int64 `json:"pull_count"`
}

// DockerPulls returns the pull count of the Docker Hub repository,
// or the fallback with error.
func (c *Client) DockerPulls(ctx context.Context) (int64, error) {
	var r dockerRepoResp
	url := c.cfg.DockerHubAPI + "/v2/repositories/" + c.cfg.DockerRepo + "/"
	if _, err := c.getJSON(ctx, url, "application/json", &r); err != nil {
		return settings.FallbackDockerPulls, err
	}
	if r.PullCount == nil {
		return settings.FallbackDockerPulls, nil
	}
	return *r.PullCount, nil
}

// FormatCompact formats n like 11500 to "11.5k", 12000 to "12k".
// n < 1000 is formatted as it is.
func FormatCompact(n int64) string {
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}
	if n%1000 == 0 {
		return strconv.FormatInt(n/1000, 10) + "k"
	}
	return strconv.FormatFloat(float64(n)/1000, 'f', 1, 64) + "k"
}
