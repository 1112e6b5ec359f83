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
	"strings"
	"time"
)

// Release is a GitHub release.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
	Prerelease  bool      `json:"prerelease"`
	Draft       bool      `json:"draft"`
	Assets      []Asset   `json:"assets"`
}

// Asset is a file attached to Release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
}

// LatestRelease returns the latest official release,
// if there isn't one, returns the latest non-draft release with assets in the last 10,
// or the latest non-draft one.
// Returns nil if nothing found.
func (c *Client) LatestRelease(ctx context.Context) (*Release, error) {

	base := c.cfg.GitHubAPI + "/repos/" + c.cfg.Repo + "/releases"

	rel := new(Release)
	if _, err := c.getJSON(ctx, base+"/latest", githubV3Accept, rel); err == nil {
		return rel, nil
	}

	var list []*Release
	if _, err := c.getJSON(ctx, base+"?per_page=10", githubV3Accept, &list); err != nil {
		return nil, err
	}
	return pickRelease(list), nil
}

func pickRelease(list []*Release) *Release {
	for _, r := range list {
		if r != nil && !r.Draft && len(r.Assets) > 0 {
			return r
		}
	}
	for _, r := range list {
		if r != nil && !r.Draft {
			return r
		}
	}
	return nil
}

var semverRe = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:-(.+))?$`)

// FormatVersion makes "1.0.0-alpha.1" & "v1.0.0-alpha.1" to "v1.0.0-alpha.1",
// returns v as it is if it's not a semantic version.
func FormatVersion(v string) string {
	clean := strings.TrimPrefix(v, "v")
	if !semverRe.MatchString(clean) {
		return v
	}
	return "v" + clean
}

// FormatReleaseDate formats RFC 3339 date s as "January 2, 2006",
// returns s if it can't be parsed.
func FormatReleaseDate(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format("January 2, 2006")
}

var platformPatterns = map[string]*regexp.Regexp{
	"windows": regexp.MustCompile(`(?i)windows`),
	"linux":   regexp.MustCompile(`(?i)linux`),
	"macos":   regexp.MustCompile(`(?i)darwin`),
	"docker":  regexp.MustCompile(`(?i)docker`),
}

// DownloadURL returns the first asset's URL of rel matching platform,
// platform is one of windows, linux, macos & docker.
// Returns "" if nothing matched.
func DownloadURL(rel *Release, platform string) string {
	if rel == nil {
		return ""
	}
	p, ok := platformPatterns[platform]
	if !ok {
		return ""
	}
	for _, a := range rel.Assets {
		if p.MatchString(a.Name) {
			return a.BrowserDownloadURL
		}
	}
	return ""
}
