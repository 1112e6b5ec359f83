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
	"time"

	"github.com/lni/goutils/syncutil"
	"github.com/zaibyte/eccalc/xlog"
	"go.uber.org/zap"
)

// RefreshFunc refreshes a cache.
type RefreshFunc func(ctx context.Context) error

// Refresher refreshes caches periodically in background.
type Refresher struct {
	interval time.Duration
	fns      []RefreshFunc
	stopper  *syncutil.Stopper
}

// NewRefresher creates a Refresher, call Start to run it.
func NewRefresher(interval time.Duration, fns ...RefreshFunc) *Refresher {
	return &Refresher{
		interval: interval,
		fns:      fns,
		stopper:  syncutil.NewStopper(),
	}
}

// Start starts the worker, fns run once at the beginning.
func (r *Refresher) Start() {
	r.stopper.RunWorker(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			<-r.stopper.ShouldStop()
			cancel()
		}()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			r.refreshAll(ctx)
			select {
			case <-ticker.C:
			case <-r.stopper.ShouldStop():
				return
			}
		}
	})
}

func (r *Refresher) refreshAll(ctx context.Context) {
	for _, f := range r.fns {
		if err := f(ctx); err != nil {
			xlog.Warn("refresh project metrics failed", zap.Error(err))
		}
	}
}

// Stop stops the worker and waits for it.
func (r *Refresher) Stop() {
	r.stopper.Stop()
}
