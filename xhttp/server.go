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
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/zaibyte/eccalc/config"
	"github.com/zaibyte/eccalc/metricutil"
	"github.com/zaibyte/eccalc/uid"
	"github.com/zaibyte/eccalc/version"
	"github.com/zaibyte/eccalc/xlog"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// ServerConfig is the config of Server.
type ServerConfig struct {
	AppName string `toml:"app_name"`
	Address string `toml:"address"`

	MaxConcurrentStreams uint32          `toml:"max_concurrent_streams"`
	MaxReadFrameSize     uint32          `toml:"max_read_frame_size"`
	IdleTimeout          config.Duration `toml:"idle_timeout"`
	ReadHeaderTimeout    config.Duration `toml:"read_header_timeout"`
	ShutdownTimeout      config.Duration `toml:"shutdown_timeout"`
}

const (
	defaultAppName = "-"
	defaultAddress = "127.0.0.1:9090"

	defaultMaxConcurrentStreams uint32 = 250
	defaultMaxReadFrameSize     uint32 = 16 * 1024
	defaultIdleTimeout                 = 75 * time.Second
	defaultReadHeaderTimeout           = 3 * time.Second
	defaultShutdownTimeout             = 3 * time.Second
)

// Server implements methods to build & run a HTTP server.
type Server struct {
	cfg  *ServerConfig
	aLog *xlog.AccessLogger

	router *httprouter.Router

	srv *http.Server
	h2  *http2.Server

	exits []func() error // run these functions before exit
}

func parseConfig(cfg *ServerConfig) {
	config.Adjust(&cfg.AppName, defaultAppName)
	config.Adjust(&cfg.Address, defaultAddress)
	config.Adjust(&cfg.IdleTimeout, defaultIdleTimeout)
	config.Adjust(&cfg.ReadHeaderTimeout, defaultReadHeaderTimeout)
	config.Adjust(&cfg.ShutdownTimeout, defaultShutdownTimeout)
	config.Adjust(&cfg.MaxConcurrentStreams, defaultMaxConcurrentStreams)
	config.Adjust(&cfg.MaxReadFrameSize, defaultMaxReadFrameSize)
}

// NewServer creates a Server.
//
// Warn: Be sure you have run InitGlobalLogger before call it.
func NewServer(cfg *ServerConfig, aLog *xlog.AccessLogger) (s *Server) {

	parseConfig(cfg)

	s = &Server{
		cfg:  cfg,
		aLog: aLog,
	}

	s.addDefaultHandler()
	s.withDefaultExit()

	s.h2 = &http2.Server{
		IdleTimeout:          cfg.IdleTimeout.Duration,
		MaxConcurrentStreams: cfg.MaxConcurrentStreams,
		MaxReadFrameSize:     cfg.MaxReadFrameSize,
	}

	s.srv = &http.Server{
		Addr:              cfg.Address,
		ErrorLog:          log.New(xlog.GetLogger(), "", 0),
		Handler:           s.Handler(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.IdleTimeout.Duration,
	}

	return
}

// HandlerFunc wraps http.HandlerFunc and returns written & status for access Log.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, p httprouter.Params) (written, status int)

// AddHandler helps to add handler to Server.
// limit is the max count of concurrent requests, <= 0 means no limit.
func (s *Server) AddHandler(name, method, path string, handler HandlerFunc, limit int64) {
	if limit > 0 {
		l := newReqLimit(limit)
		handler = l.withLimit(handler)
	}
	s.router.Handle(method, path, s.withLog(handler, name))
}

// AddRawHandler adds a http.Handler without access log.
func (s *Server) AddRawHandler(method, path string, handler http.Handler) {
	s.router.Handler(method, path, handler)
}

// AddExit adds function that will run before exit.
func (s *Server) AddExit(f func() error) {
	s.exits = append(s.exits, f)
}

// Handler returns the h2c handler of Server.
func (s *Server) Handler() http.Handler {
	return h2c.NewHandler(s.router, s.h2)
}

// Run starts the Server and implements graceful shutdown.
func (s *Server) Run() {

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()
	xlog.Info("server is running", zap.String("app", s.cfg.AppName), zap.String("address", s.cfg.Address))

	c := make(chan os.Signal, 2)
	signal.Notify(c,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)

	sig := <-c
	xlog.Info("got signal to exit", zap.String("signal", sig.String()))

	s.Close()

	switch sig {
	case syscall.SIGTERM:
		os.Exit(0)
	default:
		os.Exit(1)
	}
}

// Close shuts down the http server and runs exit functions in order.
func (s *Server) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout.Duration)
	defer cancel()
	_ = s.srv.Shutdown(ctx)

	for _, f := range s.exits {
		if err := f(); err != nil {
			xlog.Warn("exit function failed", zap.Error(err))
		}
	}
}

// withLog adds access log & latency metrics.
// All handler must be with access log.
//
// ps:
// withLog will also add the request ID header.
func (s *Server) withLog(next HandlerFunc, name string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {

		// start for access log
		start := time.Now()

		reqID := r.Header.Get(ReqIDHeader)
		if reqID == "" {
			reqID = uid.MakeReqID()
		}
		w.Header().Set(ReqIDHeader, reqID)

		written, status := next(w, r, p)

		s.aLog.Write(name, r, start, reqID, written, status)
		metricutil.ObserveRequest(name, start)
	}
}

// reqLimit implements the ability to limit request count at the same time.
type reqLimit struct {
	limit int64
	cnt   int64
}

func newReqLimit(limit int64) *reqLimit {
	return &reqLimit{
		limit: limit,
	}
}

func (l *reqLimit) withLimit(next HandlerFunc) HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) (written, status int) {

		if atomic.AddInt64(&l.cnt, 1) > l.limit {
			atomic.AddInt64(&l.cnt, -1)
			return ReplyError(w, "", http.StatusTooManyRequests)
		}
		written, status = next(w, r, p)
		atomic.AddInt64(&l.cnt, -1)
		return
	}
}

// --- Default Handler ---- //
// --- All HTTP Servers will have these APIs ---- //
// Don't forget to add new API to xhttp.Client.
const (
	debugAPIName   = "debug"
	versionAPIName = "version"
	pingAPIName    = "ping" // ping is used for checking server health.
)

// addDefaultHandler add default handler.
func (s *Server) addDefaultHandler() {
	if s.router == nil {
		s.router = httprouter.New()
	}

	s.AddHandler(debugAPIName, http.MethodPut, "/v1/debug-log/:cmd", s.debug, 1)
	s.AddHandler(versionAPIName, http.MethodGet, "/v1/code-version", s.version, 1)
	s.AddHandler(pingAPIName, http.MethodHead, "/v1/ping", s.ping, 0)
}

func (s *Server) debug(w http.ResponseWriter, r *http.Request,
	p httprouter.Params) (written, status int) {

	reqID := w.Header().Get(ReqIDHeader)

	cmd := p.ByName("cmd")
	switch cmd {
	case "on":
		xlog.DebugOn()
		xlog.DebugID(reqID, "debug on")
	default:
		xlog.DebugOff()
		xlog.InfoID(reqID, "debug off")
	}

	return ReplyCode(w, http.StatusOK)
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request,
	p httprouter.Params) (written, status int) {

	return ReplyCode(w, http.StatusOK)
}

func (s *Server) version(w http.ResponseWriter, r *http.Request,
	p httprouter.Params) (written, status int) {

	return ReplyJson(w, version.GetInfo(), http.StatusOK)
}

func (s *Server) withDefaultExit() {
	s.AddExit(s.aLog.Sync)
	s.AddExit(xlog.Sync)
}
