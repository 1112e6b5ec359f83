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

package calcapi

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaibyte/eccalc/erasure"
	"github.com/zaibyte/eccalc/errno"
	"github.com/zaibyte/eccalc/share"
	"github.com/zaibyte/eccalc/stats"
	"github.com/zaibyte/eccalc/xhttp"
	"github.com/zaibyte/eccalc/xlog/xlogtest"
)

var (
	testServer   *httptest.Server
	testUpstream *httptest.Server
)

func TestMain(m *testing.M) {
	_, al := xlogtest.New("test-calcapi")

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/rustfs/rustfs", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"stargazers_count": 11500, "forks_count": 600}`))
	})
	testUpstream = httptest.NewServer(mux)

	st := stats.NewService(&stats.Config{
		GitHubAPI:     testUpstream.URL,
		DockerHubAPI:  testUpstream.URL,
		UpstreamRate:  100,
		UpstreamBurst: 100,
	})

	srv := xhttp.NewServer(&xhttp.ServerConfig{AppName: "test-calcapi"}, al)
	New(&Config{ShareBase: "https://example.com/calc"}, st).Register(srv)
	testServer = httptest.NewServer(srv.Handler())

	code := m.Run()
	testServer.Close()
	testUpstream.Close()
	xlogtest.Clean()
	os.Exit(code)
}

func get(t *testing.T, path string, q url.Values) *http.Response {
	u := testServer.URL + path
	if q != nil {
		u += "?" + q.Encode()
	}
	resp, err := http.Get(u)
	require.Nil(t, err)
	t.Cleanup(func() { xhttp.CloseResp(resp) })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	require.Nil(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestCalcDefault(t *testing.T) {
	resp := get(t, "/v1/calc", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(xhttp.ReqIDHeader))

	var ret PlanResp
	decode(t, resp, &ret)
	assert.Equal(t, 8, ret.Input.Servers)
	assert.Equal(t, 16, ret.Input.StripeSize)
	assert.Equal(t, 4, ret.Input.Parity)
	assert.Equal(t, 32, ret.Result.DriveFailureTolerance)
	assert.Equal(t, 2, ret.Result.ServerFailureTolerance)
	assert.Equal(t, []int{16, 8}, ret.Partition.StripeSizes)
	assert.Len(t, ret.Summary, 12)
}

func TestCalcQuery(t *testing.T) {
	q := url.Values{}
	q.Set(share.KeyServers, "32")
	q.Set(share.KeyDrivesPerServer, "8")
	q.Set(share.KeyDriveCapacity, "4")
	resp := get(t, "/v1/calc", q)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ret PlanResp
	decode(t, resp, &ret)
	assert.Equal(t, 16, ret.Partition.ServersPerShard)
	assert.Equal(t, 2, ret.Partition.Shards)
	assert.Equal(t, 64, ret.Result.DriveFailureTolerance)
	assert.Equal(t, 8, ret.Result.ServerFailureTolerance)
}

func TestCalcBadRequest(t *testing.T) {
	q := url.Values{}
	q.Set(share.KeyServers, "eight")
	resp := get(t, "/v1/calc", q)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalcInvalid(t *testing.T) {
	cases := []struct {
		servers, drives string
		code            errno.Errno
	}{
		{"3", "16", errno.ErrInfeasibleTopology},
		{"8", "300", errno.ErrDrivesOutOfRange},
		{"1", "2", errno.ErrInsufficientDrives},
	}
	for _, c := range cases {
		q := url.Values{}
		q.Set(share.KeyServers, c.servers)
		q.Set(share.KeyDrivesPerServer, c.drives)
		resp := get(t, "/v1/calc", q)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var ret ErrorResp
		decode(t, resp, &ret)
		assert.Equal(t, int(c.code), ret.Code)
		assert.Equal(t, c.code.Error(), ret.Error)
	}
}

func TestRecommend(t *testing.T) {
	q := url.Values{}
	q.Set(share.KeyServers, "6")
	q.Set(share.KeyDrivesPerServer, "2")
	resp := get(t, "/v1/recommend", q)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ret RecommendResp
	decode(t, resp, &ret)
	assert.Equal(t, 6, ret.Partition.ServersPerShard)
	assert.Equal(t, 12, ret.Recommendation.StripeSize)
	assert.Equal(t, 4, ret.Recommendation.Parity)

	q.Set(share.KeyServers, "2")
	resp = get(t, "/v1/recommend", q)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestParity(t *testing.T) {
	resp := get(t, "/v1/parity/16", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ret ParityResp
	decode(t, resp, &ret)
	assert.Equal(t, []int{8, 7, 6, 5, 4, 3, 2}, ret.ParityOptions)

	resp = get(t, "/v1/parity/2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &ret)
	assert.Equal(t, []int{}, ret.ParityOptions)

	resp = get(t, "/v1/parity/x", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportCSV(t *testing.T) {
	resp := get(t, "/v1/export/csv", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv;charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "rustfs-erasure-code-results.csv")
	etag := resp.Header.Get("ETag")
	assert.NotEmpty(t, etag)

	recs, err := csv.NewReader(resp.Body).ReadAll()
	require.Nil(t, err)
	assert.Len(t, recs, 13)

	req, err := http.NewRequest(http.MethodGet, testServer.URL+"/v1/export/csv", nil)
	require.Nil(t, err)
	req.Header.Set("If-None-Match", etag)
	resp2, err := http.DefaultClient.Do(req)
	require.Nil(t, err)
	defer xhttp.CloseResp(resp2)
	assert.Equal(t, http.StatusNotModified, resp2.StatusCode)
}

func TestExportSVG(t *testing.T) {
	resp := get(t, "/v1/export/svg", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml;charset=utf-8", resp.Header.Get("Content-Type"))
	b, err := io.ReadAll(resp.Body)
	require.Nil(t, err)
	assert.True(t, strings.HasPrefix(string(b), "<?xml"))
}

func TestExportBad(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, get(t, "/v1/export/pdf", nil).StatusCode)

	q := url.Values{}
	q.Set(share.KeyServers, "3")
	assert.Equal(t, http.StatusUnprocessableEntity, get(t, "/v1/export/csv", q).StatusCode)
}

func TestShare(t *testing.T) {
	q := url.Values{}
	q.Set(share.KeyServers, "8")
	q.Set(share.KeyStripeSize, "7") // infeasible, adjusted to 16
	resp := get(t, "/v1/share", q)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ret ShareResp
	decode(t, resp, &ret)
	u, err := url.Parse(ret.URL)
	require.Nil(t, err)
	assert.Equal(t, "example.com", u.Host)
	in, ok := share.Decode(u.Query())
	require.True(t, ok)
	assert.Equal(t, 16, in.StripeSize)
	assert.Equal(t, 4, in.Parity)
}

func TestStats(t *testing.T) {
	resp := get(t, "/v1/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap stats.Snapshot
	decode(t, resp, &snap)
	// commits endpoint is missing, so all GitHub metrics fall back.
	assert.Equal(t, stats.FallbackGitHubMetrics(), snap.GitHubMetrics)
	assert.Equal(t, "11k", snap.StarsCompact)
}

func TestVerify(t *testing.T) {
	resp := get(t, "/v1/verify", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rep erasure.Report
	decode(t, resp, &rep)
	assert.Equal(t, 4, rep.Failures)
	assert.True(t, rep.OK())
}

func TestMetrics(t *testing.T) {
	get(t, "/v1/calc", nil)
	resp := get(t, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.Nil(t, err)
	assert.Contains(t, string(b), "eccalc_calculations_total")
}
