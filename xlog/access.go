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

package xlog

import (
	"net"
	"net/http"
	"time"

	"github.com/zaibyte/eccalc/xmath"
	"go.uber.org/zap"
)

// AccessLogger is used for recording the server access log.
type AccessLogger struct {
	fl *FreeLogger
}

// NewAccessLogger creates an AccessLogger.
func NewAccessLogger(outputPath string, rCfg *RotateConfig) (logger *AccessLogger, err error) {
	fl, err := NewFreeLogger(outputPath, rCfg)
	if err != nil {
		return
	}
	return &AccessLogger{fl}, nil
}

// ReqIDFieldName is the HTTP header key of reqID,
// and it's the field name in logs too.
const ReqIDFieldName = "x-rustfs-request-id"

// AccessLogFmt: access logger output format.
// It's used for log collector process(e.g. elastic/filebeat).
//
// fields (nginx style):
// |      name           |  type  |             detail              |		e.g		               |
// |---------------------|--------|---------------------------------|-----------------------------------|
// | api                 | string | see ps 5                        | calc                              |
// | remote_addr         | string |                                 | 192.168.1.3                       |
// | request             | string | `<method> <URI> <proto>`        | GET /v1/calc HTTP/1.1             |
// | status              | int    |                                 | 200                               |
// | body_bytes_sent     | int    |  response body length(written)  | 1                                 |
// | body_bytes_recv     | int64  |  request body length            | 1                                 |
// | request_time        | float64|  see ps 2                       | 1.00                              |
// | time                | string | log entry written time(ISO8601) | 2018-12-26T01:09:22.852+0800      |
// | x-rustfs-request-id | string |                                 | 0242ac1100020000c0a7f0d3e1b2c416  |
//
// ps:
// 1.body_bytes_sent
// is not the value of Content-Length in resp header,
// it's the real bytes written in resp.
//
// 2.request_time
// request processing time in milliseconds with 2 decimals.
//
// 3. remote_addr
// if there is a proxy in front of server, the remote_addr may be wrong
// so set header X-Real-IP = $remote_addr in your proxy
//
// 4. time
// fmt is as the same as error logger.
//
// 5. api
// handle's name, is used to distinguish different requests for
// analysing logs in the future
type AccessLogFmt struct {
	API           string  `json:"api"`
	RemoteAddr    string  `json:"remote_addr"`
	Request       string  `json:"request"`
	Status        int     `json:"status"`
	BodyBytesSent int     `json:"body_bytes_sent"`
	BodyBytesRecv int64   `json:"body_bytes_recv"`
	RequestTime   float64 `json:"request_time"`
	Time          string  `json:"time"`
	ReqID         string  `json:"x-rustfs-request-id"`
}

// Write writes entry to AccessLogger.
func (l *AccessLogger) Write(apiName string, r *http.Request,
	start time.Time, reqID string, written, status int) {

	remoteAddr := r.Header.Get("X-Real-IP")
	if remoteAddr == "" {
		remoteAddr = r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			remoteAddr = host
		}
	}

	now := time.Now()
	l.fl.Write(
		zap.String("api", apiName),
		zap.String("remote_addr", remoteAddr),
		zap.String("time", now.Format(ISO8601TimeFormat)),
		zap.String("request", r.Method+" "+r.RequestURI+" "+r.Proto),
		zap.Int("status", status),
		zap.Int64("body_bytes_recv", r.ContentLength),
		zap.Int("body_bytes_sent", written),
		zap.Float64("request_time", xmath.Round(now.Sub(start).Seconds()*1000, 2)),
		zap.String(ReqIDFieldName, reqID),
	)
}

// Sync syncs AccessLogger.
func (l *AccessLogger) Sync() (err error) {
	return l.fl.Sync()
}

// Close closes AccessLogger.
func (l *AccessLogger) Close() (err error) {
	return l.fl.Close()
}
