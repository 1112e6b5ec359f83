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

package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/zaibyte/eccalc/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show RustFS project metrics",
	Long: `Show GitHub stars, forks, commits, Docker pulls and the latest release.

Fallback values are shown when the upstream APIs are unreachable.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().String("github-api", "", "GitHub API endpoint")
	statsCmd.Flags().String("docker-hub-api", "", "Docker Hub API endpoint")
	statsCmd.Flags().Duration("timeout", 10*time.Second, "Timeout of all fetches")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := new(stats.Config)
	cfg.GitHubAPI, _ = cmd.Flags().GetString("github-api")
	cfg.DockerHubAPI, _ = cmd.Flags().GetString("docker-hub-api")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	svc := stats.NewService(cfg)
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	snap := svc.Snapshot(ctx)

	version := snap.Version
	if version == "" {
		version = "-"
	}
	pairs := [][2]string{
		{"Stars", fmt.Sprintf("%d (%s)", snap.Stars, snap.StarsCompact)},
		{"Forks", fmt.Sprint(snap.Forks)},
		{"Commits", fmt.Sprint(snap.Commits)},
		{"Docker pulls", fmt.Sprintf("%d (%s)", snap.DockerPulls, snap.PullsCompact)},
		{"Latest version", version},
	}
	if snap.Release != nil {
		pairs = append(pairs, [2]string{"Released", stats.FormatReleaseDate(snap.Release.PublishedAt.Format(time.RFC3339))})
	}
	platforms := make([]string, 0, len(snap.Downloads))
	for p := range snap.Downloads {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	for _, p := range platforms {
		pairs = append(pairs, [2]string{"Download (" + p + ")", snap.Downloads[p]})
	}
	return printResult(cmd, &snap, pairs)
}
