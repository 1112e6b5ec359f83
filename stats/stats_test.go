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
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaibyte/eccalc/config/settings"
	"github.com/zaibyte/eccalc/errno"
	"github.com/zaibyte/eccalc/xhttp"
)

type fakeUpstream struct {
	*httptest.Server
	mux *http.ServeMux
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	mux := http.NewServeMux()
	s := httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return &fakeUpstream{Server: s, mux: mux}
}

func (f *fakeUpstream) json(path string, status int, v interface{}, header map[string]string) {
	f.mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		for k, hv := range header {
			w.Header().Set(k, hv)
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	})
}

func (f *fakeUpstream) client() *Client {
	return NewClient(&Config{
		GitHubAPI:     f.URL,
		DockerHubAPI:  f.URL,
		UpstreamRate:  100,
		UpstreamBurst: 100,
	})
}

func TestFetchGitHubMetrics(t *testing.T) {
	f := newFakeUpstream(t)
	f.json("/repos/rustfs/rustfs", 200, map[string]int{"stargazers_count": 11500, "forks_count": 600}, nil)
	f.json("/repos/rustfs/rustfs/commits", 200, []struct{}{{}}, map[string]string{
		"Link": `<https://api.github.com/repositories/1/commits?per_page=1&page=2>; rel="next", ` +
			`<https://api.github.com/repositories/1/commits?per_page=1&page=3456>; rel="last"`,
	})

	m, err := f.client().FetchGitHubMetrics(context.Background())
	require.Nil(t, err)
	assert.Equal(t, GitHubMetrics{Stars: 11500, Forks: 600, Commits: 3456}, m)
}

func TestFetchGitHubMetricsPartial(t *testing.T) {
	f := newFakeUpstream(t)
	f.json("/repos/rustfs/rustfs", 200, map[string]int{"stargazers_count": 0}, nil)
	f.json("/repos/rustfs/rustfs/commits", 200, []struct{}{}, nil)

	m, err := f.client().FetchGitHubMetrics(context.Background())
	require.Nil(t, err)
	assert.Equal(t, 0, m.Stars)
	assert.Equal(t, settings.FallbackForks, m.Forks)
	assert.Equal(t, settings.FallbackCommits, m.Commits)
}

func TestFetchGitHubMetricsNoLink(t *testing.T) {
	f := newFakeUpstream(t)
	f.json("/repos/rustfs/rustfs", 200, map[string]int{"stargazers_count": 1, "forks_count": 2}, nil)
	f.json("/repos/rustfs/rustfs/commits", 200, []struct{}{{}}, nil)

	m, err := f.client().FetchGitHubMetrics(context.Background())
	require.Nil(t, err)
	assert.Equal(t, GitHubMetrics{Stars: 1, Forks: 2, Commits: 1}, m)
}

func TestFetchGitHubMetricsFailed(t *testing.T) {
	f := newFakeUpstream(t)
	f.json("/repos/rustfs/rustfs", 200, map[string]int{"stargazers_count": 1}, nil)
	f.json("/repos/rustfs/rustfs/commits", 500, nil, nil)

	m, err := f.client().FetchGitHubMetrics(context.Background())
	var se *xhttp.StatusError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, FallbackGitHubMetrics(), m)
}

func TestLatestRelease(t *testing.T) {
	f := newFakeUpstream(t)
	f.json("/repos/rustfs/rustfs/releases/latest", 200, Release{TagName: "1.0.0"}, nil)

	rel, err := f.client().LatestRelease(context.Background())
	require.Nil(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, "1.0.0", rel.TagName)
}

func TestLatestReleaseFallbackToList(t *testing.T) {
	f := newFakeUpstream(t)
	f.json("/repos/rustfs/rustfs/releases/latest", 404, map[string]string{"message": "Not Found"}, nil)
	f.json("/repos/rustfs/rustfs/releases", 200, []Release{
		{TagName: "1.0.0-alpha.20", Draft: true, Assets: []Asset{{Name: "a"}}},
		{TagName: "1.0.0-alpha.19"},
		{TagName: "1.0.0-alpha.18", Assets: []Asset{{Name: "rustfs-linux-x86_64.zip"}}},
	}, nil)

	rel, err := f.client().LatestRelease(context.Background())
	require.Nil(t, err)
	require.NotNil(t, rel)
	assert.Equal(t, "1.0.0-alpha.18", rel.TagName)
}

func TestLatestReleaseNothing(t *testing.T) {
	f := newFakeUpstream(t)
	f.json("/repos/rustfs/rustfs/releases/latest", 404, nil, nil)
	f.json("/repos/rustfs/rustfs/releases", 200, []Release{{TagName: "x", Draft: true}}, nil)

	rel, err := f.client().LatestRelease(context.Background())
	assert.Nil(t, err)
	assert.Nil(t, rel)
}

func TestPickRelease(t *testing.T) {
	assert.Nil(t, pickRelease(nil))
	list := []*Release{{TagName: "d", Draft: true}, {TagName: "n"}}
	assert.Equal(t, "n", pickRelease(list).TagName)
}

func TestDockerPulls(t *testing.T) {
	f := newFakeUpstream(t)
	f.json("/v2/repositories/rustfs/rustfs/", 200, map[string]int64{"pull_count": 123456}, nil)

	n, err := f.client().DockerPulls(context.Background())
	require.Nil(t, err)
	assert.Equal(t, int64(123456), n)

	f2 := newFakeUpstream(t)
	n, err = f2.client().DockerPulls(context.Background())
	assert.NotNil(t, err)
	assert.Equal(t, int64(settings.FallbackDockerPulls), n)
}

func TestUpstreamRateLimit(t *testing.T) {
	f := newFakeUpstream(t)
	f.json("/v2/repositories/rustfs/rustfs/", 200, map[string]int64{"pull_count": 1}, nil)

	c := NewClient(&Config{DockerHubAPI: f.URL, UpstreamRate: 0.0001, UpstreamBurst: 1})
	_, err := c.DockerPulls(context.Background())
	require.Nil(t, err)
	_, err = c.DockerPulls(context.Background())
	assert.True(t, errors.Is(err, errno.ErrTooManyRequests))
}

func TestParseLastPage(t *testing.T) {
	n, ok := parseLastPage(`<https://x/commits?per_page=1&page=42>; rel="last"`)
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = parseLastPage(`<https://x/commits?page=2>; rel="next"`)
	assert.False(t, ok)
	_, ok = parseLastPage("")
	assert.False(t, ok)
}

func TestFormatCompact(t *testing.T) {
	cases := map[int64]string{
		0:      "0",
		999:    "999",
		1000:   "1k",
		11000:  "11k",
		11500:  "11.5k",
		11549:  "11.5k",
		11999:  "12.0k",
		123456: "123.5k",
	}
	for n, exp := range cases {
		assert.Equal(t, exp, FormatCompact(n), "%d", n)
	}
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "v1.0.0", FormatVersion("1.0.0"))
	assert.Equal(t, "v1.0.0-alpha.18", FormatVersion("v1.0.0-alpha.18"))
	assert.Equal(t, "latest", FormatVersion("latest"))
	assert.Equal(t, "1.0", FormatVersion("1.0"))
}

func TestFormatReleaseDate(t *testing.T) {
	assert.Equal(t, "July 1, 2025", FormatReleaseDate("2025-07-01T08:00:00Z"))
	assert.Equal(t, "yesterday", FormatReleaseDate("yesterday"))
}

func TestDownloadURL(t *testing.T) {
	rel := &Release{Assets: []Asset{
		{Name: "rustfs-Windows-x86_64.zip", BrowserDownloadURL: "w"},
		{Name: "rustfs-linux-x86_64.zip", BrowserDownloadURL: "l"},
		{Name: "rustfs-darwin-aarch64.zip", BrowserDownloadURL: "m"},
	}}
	assert.Equal(t, "w", DownloadURL(rel, "windows"))
	assert.Equal(t, "l", DownloadURL(rel, "linux"))
	assert.Equal(t, "m", DownloadURL(rel, "macos"))
	assert.Equal(t, "", DownloadURL(rel, "docker"))
	assert.Equal(t, "", DownloadURL(rel, "plan9"))
	assert.Equal(t, "", DownloadURL(nil, "linux"))
}

func TestServiceSnapshot(t *testing.T) {
	f := newFakeUpstream(t)
	f.json("/repos/rustfs/rustfs", 200, map[string]int{"stargazers_count": 11500, "forks_count": 600}, nil)
	f.json("/repos/rustfs/rustfs/commits", 200, []struct{}{{}}, map[string]string{
		"Link": `<https://x/commits?per_page=1&page=3000>; rel="last"`,
	})
	f.json("/repos/rustfs/rustfs/releases/latest", 200, Release{
		TagName: "1.0.0-alpha.18",
		Assets:  []Asset{{Name: "rustfs-linux-x86_64.zip", BrowserDownloadURL: "https://dl/linux"}},
	}, nil)
	f.json("/v2/repositories/rustfs/rustfs/", 200, map[string]int64{"pull_count": 250000}, nil)

	s := NewService(&Config{GitHubAPI: f.URL, DockerHubAPI: f.URL, UpstreamRate: 100, UpstreamBurst: 100})
	defer s.Close()

	snap := s.Snapshot(context.Background())
	assert.Equal(t, GitHubMetrics{Stars: 11500, Forks: 600, Commits: 3000}, snap.GitHubMetrics)
	assert.Equal(t, "11.5k", snap.StarsCompact)
	assert.Equal(t, int64(250000), snap.DockerPulls)
	assert.Equal(t, "250k", snap.PullsCompact)
	assert.Equal(t, "v1.0.0-alpha.18", snap.Version)
	assert.Equal(t, map[string]string{"linux": "https://dl/linux"}, snap.Downloads)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestServiceSnapshotUnreachable(t *testing.T) {
	f := newFakeUpstream(t)
	s := NewService(&Config{GitHubAPI: f.URL, DockerHubAPI: f.URL, UpstreamRate: 100, UpstreamBurst: 100})

	snap := s.Snapshot(context.Background())
	assert.Equal(t, FallbackGitHubMetrics(), snap.GitHubMetrics)
	assert.Equal(t, int64(settings.FallbackDockerPulls), snap.DockerPulls)
	assert.Nil(t, snap.Release)
	assert.True(t, snap.FetchedAt.IsZero())
}
