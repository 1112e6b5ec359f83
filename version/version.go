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

// Package version records build information,
// they are set by -ldflags "-X" at build time.
package version

import "runtime"

var (
	ReleaseVersion = "None"
	GitHash        = "None"
	GitBranch      = "None"
)

// Info is the build information.
type Info struct {
	Version   string `json:"version"`
	GitHash   string `json:"git_hash"`
	GitBranch string `json:"git_branch"`
	GoVersion string `json:"go_version"`
}

// GetInfo returns Info of this binary.
func GetInfo() Info {
	return Info{
		Version:   ReleaseVersion,
		GitHash:   GitHash,
		GitBranch: GitBranch,
		GoVersion: runtime.Version(),
	}
}
