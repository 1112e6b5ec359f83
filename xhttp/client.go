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

package xhttp

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/zaibyte/eccalc/config"
	"github.com/zaibyte/eccalc/uid"
	"github.com/zaibyte/eccalc/version"
	"golang.org/x/net/http2"
)

// UserAgent is the User-Agent of xhttp Client.
const UserAgent = "Go-eccalc-xhttp"

// Client is xhttp client.
type Client struct {
	cs []*http.Client
	id uint64
}

// NextClient uses Round Robin to chose a client.
// For HTTP/2, reuse connections may damage performance if the load is too high,
// so we may need more clients.
func (c *Client) NextClient() *http.Client {
	next := atomic.AddUint64(&c.id, 1) % uint64(len(c.cs))
	return c.cs[next]
}

var (
	defaultClientCnt = 16 // 16 is enough for most cases.
	// defaultTransport is a h2c transport and backward-compatible with HTTP/1.1.
	defaultTransport = &http2.Transport{
		DialTLS: func(network, addr string, cfg *tls.Config) (conn net.Conn, e error) {
			return net.Dial(network, addr)
		},
		DisableCompression: true,
		AllowHTTP:          true,
	}
)

// NewDefaultClient creates a h2c Client with default configs.
func NewDefaultClient() *Client {

	return NewClient(0, nil)
}

// NewClient creates a Client.
// If clientCnt == 0, use defaultClientCnt.
func NewClient(clientCnt int, transport http.RoundTripper) *Client {

	config.Adjust(&clientCnt, defaultClientCnt)
	if transport == nil {
		transport = defaultTransport
	}

	cs := make([]*http.Client, clientCnt)
	for i := range cs {
		cs[i] = &http.Client{
			Transport: transport,
		}
	}
	return &Client{
		cs,
		0,
	}
}

const (
	defaultDialTimeout       = 3 * time.Second
	defaultRespHeaderTimeout = 5 * time.Second
	defaultIdleConnsPerHost  = 5
)

var defaultH1Transport = newH1Transport(defaultDialTimeout, defaultRespHeaderTimeout, defaultIdleConnsPerHost)

// NewDefaultH1Client creates a Client with default HTTP/1.1 Transport (TLS supported),
// it's used for requesting public services.
func NewDefaultH1Client() *Client {

	cs := make([]*http.Client, 1) // No need more than 1 client in HTTP/1.1
	cs[0] = &http.Client{
		Transport: defaultH1Transport,
	}
	return &Client{
		cs,
		0,
	}
}

// NewH1Client creates a Client with HTTP/1.1 Transport.
func NewH1Client(dial, resp time.Duration, maxIdle int) *Client {

	cs := make([]*http.Client, 1) // No need more than 1 client in HTTP/1.1
	cs[0] = &http.Client{
		Transport: newH1Transport(dial, resp, maxIdle),
	}
	return &Client{
		cs,
		0,
	}
}

func newH1Transport(dial, resp time.Duration, maxIdle int) *http.Transport {

	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConnsPerHost:   maxIdle,
		ResponseHeaderTimeout: resp,
		TLSHandshakeTimeout:   dial,

		DialContext: (&net.Dialer{
			Timeout:   dial,
			KeepAlive: 75 * time.Second,
		}).DialContext,
	}
}

// StatusError is returned by Request when the response status code >= 400.
type StatusError struct {
	StatusCode int
	Msg        string
}

func (e *StatusError) Error() string {
	if e.Msg == "" {
		return http.StatusText(e.StatusCode)
	}
	return e.Msg
}

// maxErrBody is the max bytes read from an error response body.
const maxErrBody = 4 * 1024

// Request sends an HTTP request and returns an HTTP response.
// header will be added to the request, it could be nil.
//
// A status code >= 400 DO cause a *StatusError,
// and the response will be closed.
//
// On error, any Response can be ignored.
func (c *Client) Request(ctx context.Context, method, url, reqID string, header http.Header) (resp *http.Response, err error) {

	url = addScheme(url)
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return
	}

	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	if reqID == "" {
		reqID = uid.MakeReqID()
	}
	req.Header.Set(ReqIDHeader, reqID)
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", UserAgent)
	}

	hc := c.NextClient()
	resp, err = hc.Do(req)
	if err != nil {
		return
	}

	if resp.StatusCode >= 400 { // See ReplyError for more details.
		buf, err2 := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		CloseResp(resp)
		if err2 != nil {
			return resp, err2
		}
		err = &StatusError{
			StatusCode: resp.StatusCode,
			Msg:        strings.TrimSuffix(string(buf), "\n"), // drop \n
		}
		return
	}
	return
}

func addScheme(url string) string {
	if !strings.Contains(url, "://") {
		url = "http://" + url
	}
	return url
}

// CloseResp close http.Response gracefully.
func CloseResp(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// --- Default Handle API ---- //

// Debug open/close a server logger's debug level.
func (c *Client) Debug(ctx context.Context, addr string, on bool, reqID string) (err error) {

	cmd := "off"
	if on {
		cmd = "on"
	}
	resp, err := c.Request(ctx, http.MethodPut, addr+"/v1/debug-log/"+cmd, reqID, nil)
	if err != nil {
		return
	}
	CloseResp(resp)
	return nil
}

// Version returns the code version of a server.
func (c *Client) Version(ctx context.Context, addr, reqID string) (ver version.Info, err error) {

	resp, err := c.Request(ctx, http.MethodGet, addr+"/v1/code-version", reqID, nil)
	if err != nil {
		return
	}
	defer CloseResp(resp)

	err = json.NewDecoder(resp.Body).Decode(&ver)
	return
}

// Ping checks a server health.
func (c *Client) Ping(ctx context.Context, addr, reqID string) (err error) {

	resp, err := c.Request(ctx, http.MethodHead, addr+"/v1/ping", reqID, nil)
	if err != nil {
		return
	}
	CloseResp(resp)
	return nil
}
