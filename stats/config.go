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
	"github.com/zaibyte/eccalc/config"
	"github.com/zaibyte/eccalc/config/settings"
)

// Config is the config of project metrics.
type Config struct {
	GitHubAPI    string `toml:"github_api"`
	DockerHubAPI string `toml:"docker_hub_api"`
	Repo         string `toml:"repo"`
	DockerRepo   string `toml:"docker_repo"`
	UserAgent    string `toml:"user_agent"`

	TTL             config.Duration `toml:"ttl"`
	FetchTimeout    config.Duration `toml:"fetch_timeout"`
	RefreshInterval config.Duration `toml:"refresh_interval"`

	// UpstreamRate is tokens per second, UpstreamBurst is the bucket capacity.
	UpstreamRate  float64 `toml:"upstream_rate"`
	UpstreamBurst int64   `toml:"upstream_burst"`
}

const (
	defaultGitHubAPI    = "https://api.github.com"
	defaultDockerHubAPI = "https://hub.docker.com"
	defaultUserAgent    = "RustFS-Website"
)

func (c *Config) adjust() {
	config.Adjust(&c.GitHubAPI, defaultGitHubAPI)
	config.Adjust(&c.DockerHubAPI, defaultDockerHubAPI)
	config.Adjust(&c.Repo, settings.GitHubRepo)
	config.Adjust(&c.DockerRepo, settings.DockerRepo)
	config.Adjust(&c.UserAgent, defaultUserAgent)

	config.Adjust(&c.TTL, settings.Soft.StatsTTL)
	config.Adjust(&c.FetchTimeout, settings.Soft.StatsFetchTimeout)
	config.Adjust(&c.RefreshInterval, settings.Soft.StatsRefreshInterval)

	config.Adjust(&c.UpstreamRate, settings.Soft.UpstreamRate)
	config.Adjust(&c.UpstreamBurst, settings.Soft.UpstreamBurst)
}
