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
	"net/http"

	"github.com/juju/ratelimit"
	"github.com/zaibyte/eccalc/errno"
	"github.com/zaibyte/eccalc/xerrors"
	"github.com/zaibyte/eccalc/xhttp"
)

// Client requests upstream public APIs.
// All requests share one token bucket.
type Client struct {
	cfg    *Config
	hc     *xhttp.Client
	bucket *ratelimit.Bucket
}

// NewClient creates a Client, cfg's zero fields will be set to defaults.
func NewClient(cfg *Config) *Client {
	cfg.adjust()
	return &Client{
		cfg:    cfg,
		hc:     xhttp.NewDefaultH1Client(),
		bucket: ratelimit.NewBucketWithRate(cfg.UpstreamRate, cfg.UpstreamBurst),
	}
}

// getJSON GETs url and decodes the body into v, returns the response header.
func (c *Client) getJSON(ctx context.Context, url, accept string, v interface{}) (http.Header, error) {

	if c.bucket.TakeAvailable(1) == 0 {
		return nil, xerrors.WithMsg(errno.ErrTooManyRequests, "upstream rate limit")
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.FetchTimeout.Duration)
	defer cancel()

	h := make(http.Header)
	h.Set("Accept", accept)
	h.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.hc.Request(ctx, http.MethodGet, url, "", h)
	if err != nil {
		return nil, err
	}
	defer xhttp.CloseResp(resp)

	if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
		return nil, xerrors.WithMsgf(err, "decode %s", url)
	}
	return resp.Header, nil
}
