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
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc fetches a fresh value.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Cache holds a value fetched from upstream for ttl.
//
// Concurrent refreshes are merged into one upstream call,
// a failed refresh keeps the stale value.
type Cache[T any] struct {
	fetch FetchFunc[T]
	ttl   time.Duration
	now   func() time.Time

	mu        sync.RWMutex
	value     T
	fetchedAt time.Time

	sf singleflight.Group
}

// NewCache creates a Cache holding initial until the first successful fetch.
func NewCache[T any](ttl time.Duration, initial T, fetch FetchFunc[T]) *Cache[T] {
	return &Cache[T]{
		fetch: fetch,
		ttl:   ttl,
		now:   time.Now,
		value: initial,
	}
}

// Peek returns the value & fetched time without refreshing.
// fetchedAt is zero if it has never been fetched.
func (c *Cache[T]) Peek() (v T, fetchedAt time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.fetchedAt
}

// Fresh returns true if the value was fetched within ttl.
func (c *Cache[T]) Fresh() bool {
	_, at := c.Peek()
	return !at.IsZero() && c.now().Sub(at) < c.ttl
}

// Get returns the fresh value, refreshing it if it's stale.
// If refresh failed, the stale value is returned.
func (c *Cache[T]) Get(ctx context.Context) T {
	if c.Fresh() {
		v, _ := c.Peek()
		return v
	}
	v, _ := c.Refresh(ctx)
	return v
}

// Refresh fetches value from upstream regardless of freshness.
// On failure, it returns the stale value with the error.
func (c *Cache[T]) Refresh(ctx context.Context) (T, error) {
	// The fetch is shared by all waiters, so it mustn't be canceled by one of them.
	fctx := context.WithoutCancel(ctx)
	_, err, _ := c.sf.Do("refresh", func() (interface{}, error) {
		v, err := c.fetch(fctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.value = v
		c.fetchedAt = c.now()
		c.mu.Unlock()
		return nil, nil
	})
	v, _ := c.Peek()
	return v, err
}
