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
	"regexp"
	"strconv"

	"github.com/zaibyte/eccalc/config/settings"
	"golang.org/x/sync/errgroup"
)

// GitHubMetrics is the repository popularity.
type GitHubMetrics struct {
	Stars   int `json:"stars"`
	Forks   int `json:"forks"`
	Commits int `json:"commits"`
}

// FallbackGitHubMetrics is used when GitHub is unreachable.
func FallbackGitHubMetrics() GitHubMetrics {
	return GitHubMetrics{
		Stars:   settings.FallbackStars,
		Forks:   settings.FallbackForks,
		Commits: settings.FallbackCommits,
	}
}

const (
	githubAccept   = "application/vnd.github+json"
	githubV3Accept = "application/vnd.github.v3+json"
)

type repoResp struct {
	Stars *int `json:"stargazers_count"`
	Forks *int `json:"forks_count"`
}

var lastPageRe = regexp.MustCompile(`page=(\d+)>; rel="last"`)

// parseLastPage gets the last page number in a Link header.
func parseLastPage(link string) (int, bool) {
	m := lastPageRe.FindStringSubmatch(link)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// FetchGitHubMetrics gets stars, forks & commits concurrently.
//
// With per_page=1, the last page number of commits is the commit count.
// Any failure returns the fallback with the error.
// Missing fields fall back individually.
func (c *Client) FetchGitHubMetrics(ctx context.Context) (GitHubMetrics, error) {

	fb := FallbackGitHubMetrics()
	base := c.cfg.GitHubAPI + "/repos/" + c.cfg.Repo

	var (
		repo    repoResp
		commits int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := c.getJSON(gctx, base, githubAccept, &repo)
		return err
	})
	g.Go(func() error {
		var list []interface{}
		h, err := c.getJSON(gctx, base+"/commits?per_page=1", githubAccept, &list)
		if err != nil {
			return err
		}
		if n, ok := parseLastPage(h.Get("Link")); ok {
			commits = n
		} else {
			commits = len(list)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fb, err
	}

	m := fb
	if repo.Stars != nil {
		m.Stars = *repo.Stars
	}
	if repo.Forks != nil {
		m.Forks = *repo.Forks
	}
	if commits > 0 {
		m.Commits = commits
	}
	return m, nil
}
