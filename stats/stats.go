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

// Package stats provides project metrics (GitHub popularity, releases,
// Docker pulls) fetched from public APIs with fallbacks.
//
// Values are cached with TTL and refreshed by a background worker,
// callers never wait on an unreachable upstream for longer than the fetch timeout.
package stats

import (
	"context"
	"time"

	"github.com/zaibyte/eccalc/config/settings"
	"github.com/zaibyte/eccalc/metricutil"
	"github.com/zaibyte/eccalc/xlog"
	"go.uber.org/zap"
)

// Upstream sources, they are used as metrics labels too.
const (
	SourceGitHub  = "github"
	SourceRelease = "release"
	SourceDocker  = "docker"
)

// Service owns the caches of project metrics.
type Service struct {
	client *Client

	GitHub  *Cache[GitHubMetrics]
	Release *Cache[*Release]
	Pulls   *Cache[int64]

	refresher *Refresher
}

// NewService creates a Service, cfg's zero fields will be set to defaults.
func NewService(cfg *Config) *Service {
	c := NewClient(cfg)
	ttl := cfg.TTL.Duration

	s := &Service{client: c}
	s.GitHub = NewCache(ttl, FallbackGitHubMetrics(), observe[GitHubMetrics](SourceGitHub, c.FetchGitHubMetrics))
	s.Release = NewCache(ttl, (*Release)(nil), observe[*Release](SourceRelease, c.LatestRelease))
	s.Pulls = NewCache(ttl, int64(settings.FallbackDockerPulls), observe[int64](SourceDocker, c.DockerPulls))
	return s
}

func observe[T any](source string, f FetchFunc[T]) FetchFunc[T] {
	return func(ctx context.Context) (T, error) {
		v, err := f(ctx)
		metricutil.ObserveFetch(source, err)
		if err != nil {
			xlog.Warn("fetch project metrics failed, use fallback",
				zap.String("source", source), zap.Error(err))
		}
		return v, err
	}
}

// Snapshot is the project metrics shown to users.
type Snapshot struct {
	GitHubMetrics
	StarsCompact string   `json:"stars_compact"`
	DockerPulls  int64    `json:"docker_pulls"`
	PullsCompact string   `json:"docker_pulls_compact"`
	Version      string   `json:"version,omitempty"`
	Release      *Release `json:"release,omitempty"`
	// Downloads is platform -> URL.
	Downloads map[string]string `json:"downloads,omitempty"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// Platforms which have download links.
var Platforms = []string{"windows", "linux", "macos", "docker"}

// Snapshot returns cached metrics, refreshing stale ones.
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	gm := s.GitHub.Get(ctx)
	rel := s.Release.Get(ctx)
	pulls := s.Pulls.Get(ctx)
	_, at := s.GitHub.Peek()

	snap := Snapshot{
		GitHubMetrics: gm,
		StarsCompact:  FormatCompact(int64(gm.Stars)),
		DockerPulls:   pulls,
		PullsCompact:  FormatCompact(pulls),
		Release:       rel,
		FetchedAt:     at,
	}
	if rel != nil {
		snap.Version = FormatVersion(rel.TagName)
		for _, p := range Platforms {
			if u := DownloadURL(rel, p); u != "" {
				if snap.Downloads == nil {
					snap.Downloads = make(map[string]string)
				}
				snap.Downloads[p] = u
			}
		}
	}
	return snap
}

// StartRefresher refreshes all caches every interval in background.
func (s *Service) StartRefresher(interval time.Duration) {
	s.refresher = NewRefresher(interval,
		func(ctx context.Context) error { _, err := s.GitHub.Refresh(ctx); return err },
		func(ctx context.Context) error { _, err := s.Release.Refresh(ctx); return err },
		func(ctx context.Context) error { _, err := s.Pulls.Refresh(ctx); return err },
	)
	s.refresher.Start()
}

// Close stops the refresher if it's started.
func (s *Service) Close() error {
	if s.refresher != nil {
		s.refresher.Stop()
	}
	return nil
}
