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

// Package xlogtest makes loggers in a temp directory for testing.
package xlogtest

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/zaibyte/eccalc/xlog"
)

var (
	mu   sync.Mutex
	dirs []string
)

// New creates loggers in a temp directory named with prefix,
// and init global logger. Call Clean to remove all.
func New(prefix string) (*xlog.ErrorLogger, *xlog.AccessLogger) {
	dir, err := os.MkdirTemp(os.TempDir(), prefix)
	if err != nil {
		panic(err)
	}

	mu.Lock()
	dirs = append(dirs, dir)
	mu.Unlock()

	cfg := &xlog.ServerConfig{
		ErrorLogOutput:  filepath.Join(dir, "error.log"),
		AccessLogOutput: filepath.Join(dir, "access.log"),
		ErrorLogLevel:   "debug",
	}
	el, al, err := cfg.MakeAppLogger(prefix)
	if err != nil {
		panic(err)
	}
	return el, al
}

// Dir returns the last directory created by New.
func Dir() string {
	mu.Lock()
	defer mu.Unlock()
	if len(dirs) == 0 {
		return ""
	}
	return dirs[len(dirs)-1]
}

// Clean closes global logger and removes all directories created by New.
func Clean() {
	_ = xlog.Close()

	mu.Lock()
	defer mu.Unlock()
	for _, d := range dirs {
		_ = os.RemoveAll(d)
	}
	dirs = nil
}
