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
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaibyte/eccalc/uid"
	"github.com/zaibyte/eccalc/version"
	"github.com/zaibyte/eccalc/xlog"
	"github.com/zaibyte/eccalc/xlog/xlogtest"
)

var (
	testServer  *httptest.Server
	testSrvAddr string

	testClient *Client
)

func makeTestServer() {

	_, al := xlogtest.New("test-xhttp")

	srv := NewServer(&ServerConfig{
		AppName: "test-xhttp",
	}, al)
	srv.AddHandler("teapot", http.MethodGet, "/v1/teapot", func(w http.ResponseWriter, r *http.Request,
		p httprouter.Params) (written, status int) {
		return ReplyError(w, "short and stout", http.StatusTeapot)
	}, 0)
	srv.AddHandler("slow", http.MethodGet, "/v1/slow", func(w http.ResponseWriter, r *http.Request,
		p httprouter.Params) (written, status int) {
		time.Sleep(50 * time.Millisecond)
		return ReplyCode(w, http.StatusOK)
	}, 1)

	testServer = httptest.NewServer(srv.Handler())
	testSrvAddr = testServer.URL

	testClient = NewClient(1, defaultTransport)
}

func TestMain(m *testing.M) {
	makeTestServer()

	code := m.Run()
	testServer.Close()
	xlogtest.Clean()
	os.Exit(code)
}

func TestServerH2cH1(t *testing.T) {

	resp, err := testClient.Request(context.Background(), http.MethodHead, testSrvAddr+"/v1/ping", "", nil)
	require.Nil(t, err)
	defer CloseResp(resp)
	assert.Equal(t, 2, resp.ProtoMajor, "proto should be 2 with HTTP/2 client")

	c1 := http.DefaultClient // HTTP/1.1 should be ok too.
	resp1, err := c1.Head(testSrvAddr + "/v1/ping")
	require.Nil(t, err)
	defer CloseResp(resp1)
	assert.Equal(t, 1, resp1.ProtoMajor, "proto should be 1 with HTTP/1.1 client")
}

func TestServerPing(t *testing.T) {
	assert.Nil(t, testClient.Ping(context.Background(), testSrvAddr, ""))
	assert.Nil(t, NewDefaultH1Client().Ping(context.Background(), testSrvAddr, ""))
}

func TestServerDebug(t *testing.T) {

	ctx := context.Background()
	require.Nil(t, testClient.Debug(ctx, testSrvAddr, true, ""))
	assert.Equal(t, "debug", xlog.GetLvl())

	require.Nil(t, testClient.Debug(ctx, testSrvAddr, false, ""))
	assert.Equal(t, "info", xlog.GetLvl())
}

func TestServerLimit(t *testing.T) {

	errs := make(chan error, 10)
	wg := &sync.WaitGroup{}
	wg.Add(10)
	for i := 0; i < 10; i++ {
		go func() {
			defer wg.Done()

			resp, err := testClient.Request(context.Background(), http.MethodGet, testSrvAddr+"/v1/slow", "", nil)
			if err != nil {
				errs <- err
				return
			}
			CloseResp(resp)
		}()
	}
	wg.Wait()
	close(errs)

	eCnt := 0
	for err := range errs {
		eCnt++
		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
		assert.Equal(t, http.StatusText(http.StatusTooManyRequests), se.Error())
	}
	assert.True(t, eCnt > 0 && eCnt < 10, "unexpect error count: %d", eCnt)
}

func TestServerVersion(t *testing.T) {

	ret, err := testClient.Version(context.Background(), testSrvAddr, "")
	require.Nil(t, err)
	assert.Equal(t, version.GetInfo(), ret)
}

func TestStatusError(t *testing.T) {
	_, err := testClient.Request(context.Background(), http.MethodGet, testSrvAddr+"/v1/teapot", "", nil)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTeapot, se.StatusCode)
	assert.Equal(t, "short and stout", se.Error())
}

func TestMustHaveHeader(t *testing.T) {

	resp, err := testClient.Request(context.Background(), http.MethodHead, testSrvAddr+"/v1/ping", "", nil)
	require.Nil(t, err)
	defer CloseResp(resp)

	reqID := resp.Header.Get(ReqIDHeader)
	require.NotEmpty(t, reqID)
	_, _, err = uid.ParseReqID(reqID)
	assert.Nil(t, err, "illegal request ID")

	// Request ID from client is kept.
	id := uid.MakeReqID()
	resp2, err := testClient.Request(context.Background(), http.MethodHead, testSrvAddr+"/v1/ping", id, nil)
	require.Nil(t, err)
	defer CloseResp(resp2)
	assert.Equal(t, id, resp2.Header.Get(ReqIDHeader))
}

func TestFillPath(t *testing.T) {
	assert.Equal(t, "/v1/parity/16", FillPath("/v1/parity/:stripe", map[string]string{"stripe": "16"}))
	assert.Equal(t, "/v1/ping", FillPath("/v1/ping", nil))
}
