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

// Package calcapi serves the erasure code calculator over HTTP.
package calcapi

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/zaibyte/eccalc/config"
	"github.com/zaibyte/eccalc/config/settings"
	"github.com/zaibyte/eccalc/ec"
	"github.com/zaibyte/eccalc/erasure"
	"github.com/zaibyte/eccalc/errno"
	"github.com/zaibyte/eccalc/export"
	"github.com/zaibyte/eccalc/metricutil"
	"github.com/zaibyte/eccalc/share"
	"github.com/zaibyte/eccalc/stats"
	"github.com/zaibyte/eccalc/xbytes"
	"github.com/zaibyte/eccalc/xdigest"
	"github.com/zaibyte/eccalc/xhttp"
	"github.com/zaibyte/eccalc/xlog"
	"go.uber.org/zap"
)

// Config is the config of calculator API.
type Config struct {
	// ShareBase is the page which share links point to.
	ShareBase string `toml:"share_base"`
	// Limit is the max concurrent requests of each API.
	Limit int64 `toml:"limit"`
}

const defaultLimit = 256

// API implements calculator handlers.
type API struct {
	cfg   *Config
	stats *stats.Service
}

// New creates an API. st could be nil, then /v1/stats is not implemented.
func New(cfg *Config, st *stats.Service) *API {
	config.Adjust(&cfg.ShareBase, settings.DefaultShareBase)
	config.Adjust(&cfg.Limit, int64(defaultLimit))
	return &API{cfg: cfg, stats: st}
}

// Register adds all handlers to s.
func (a *API) Register(s *xhttp.Server) {
	l := a.cfg.Limit
	s.AddHandler("calc", http.MethodGet, "/v1/calc", a.calc, l)
	s.AddHandler("recommend", http.MethodGet, "/v1/recommend", a.recommend, l)
	s.AddHandler("parity", http.MethodGet, "/v1/parity/:stripe", a.parity, l)
	s.AddHandler("export", http.MethodGet, "/v1/export/:format", a.export, l)
	s.AddHandler("share", http.MethodGet, "/v1/share", a.share, l)
	s.AddHandler("stats", http.MethodGet, "/v1/stats", a.projectStats, l)
	s.AddHandler("verify", http.MethodGet, "/v1/verify", a.verify, l)
	s.AddRawHandler(http.MethodGet, "/metrics", metricutil.Handler())
}

// PlanResp is the body of a calculation.
type PlanResp struct {
	ec.Plan
	Summary []export.Pair `json:"summary,omitempty"`
}

// ErrorResp is the body of a validation failure (422).
type ErrorResp struct {
	Code      int          `json:"code"`
	Error     string       `json:"error"`
	Partition ec.Partition `json:"partition"`
}

// parseInput decodes query over defaults, non-numeric value is a bad request.
func parseInput(r *http.Request) (ec.Input, error) {
	return share.DecodePartial(r.URL.Query(), ec.DefaultInput())
}

func (a *API) calculate(w http.ResponseWriter, r *http.Request) (plan ec.Plan, written, status int, ok bool) {
	in, err := parseInput(r)
	if err != nil {
		written, status = xhttp.ReplyError(w, err.Error(), http.StatusBadRequest)
		return
	}
	plan = ec.Calculate(in)
	metricutil.ObserveCalc(plan.Err)
	if !plan.Valid() {
		written, status = replyInvalid(w, plan.Err, plan.Partition)
		return
	}
	return plan, 0, 0, true
}

func replyInvalid(w http.ResponseWriter, err error, p ec.Partition) (written, status int) {
	xlog.DebugID(w.Header().Get(xhttp.ReqIDHeader), "invalid input: "+err.Error())
	return xhttp.ReplyJson(w, &ErrorResp{
		Code:      int(errno.ErrToErrno(err)),
		Error:     err.Error(),
		Partition: p,
	}, http.StatusUnprocessableEntity)
}

func (a *API) calc(w http.ResponseWriter, r *http.Request, p httprouter.Params) (written, status int) {
	plan, written, status, ok := a.calculate(w, r)
	if !ok {
		return
	}
	return xhttp.ReplyJson(w, &PlanResp{Plan: plan, Summary: export.Summary(plan)}, http.StatusOK)
}

// RecommendResp is the body of recommend.
type RecommendResp struct {
	Partition      ec.Partition      `json:"partition"`
	Recommendation ec.Recommendation `json:"recommendation"`
}

func (a *API) recommend(w http.ResponseWriter, r *http.Request, p httprouter.Params) (written, status int) {
	in, err := parseInput(r)
	if err != nil {
		return xhttp.ReplyError(w, err.Error(), http.StatusBadRequest)
	}
	part := ec.Validate(in.Topology)
	if part.Err != nil {
		return replyInvalid(w, part.Err, part)
	}
	rec, ok := ec.Recommend(part)
	if !ok {
		return replyInvalid(w, errno.ErrNoParity, part)
	}
	return xhttp.ReplyJson(w, &RecommendResp{Partition: part, Recommendation: rec}, http.StatusOK)
}

// ParityResp is the body of parity.
type ParityResp struct {
	StripeSize    int   `json:"stripe_size"`
	ParityOptions []int `json:"parity_options"`
}

func (a *API) parity(w http.ResponseWriter, r *http.Request, p httprouter.Params) (written, status int) {
	stripe, err := strconv.Atoi(p.ByName("stripe"))
	if err != nil {
		return xhttp.ReplyError(w, "illegal stripe: "+p.ByName("stripe"), http.StatusBadRequest)
	}
	return xhttp.ReplyJson(w, &ParityResp{StripeSize: stripe, ParityOptions: ec.ParityOptions(stripe)}, http.StatusOK)
}

func (a *API) export(w http.ResponseWriter, r *http.Request, p httprouter.Params) (written, status int) {
	f, err := export.ParseFormat(p.ByName("format"))
	if err != nil {
		return xhttp.ReplyError(w, err.Error(), http.StatusNotFound)
	}
	plan, written, status, ok := a.calculate(w, r)
	if !ok {
		return
	}

	buf := xbytes.GetBuffer()
	defer buf.Close()
	if err = export.Write(buf, f, plan); err != nil {
		xlog.ErrorID(w.Header().Get(xhttp.ReqIDHeader), "export failed: "+err.Error())
		return xhttp.ReplyError(w, "", http.StatusInternalServerError)
	}

	etag := xdigest.ETag(buf.Bytes())
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return 0, http.StatusNotModified
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.Filename()+`"`)
	return xhttp.ReplyBin(w, buf, int64(buf.Len()))
}

// ShareResp is the body of share.
type ShareResp struct {
	URL string `json:"url"`
}

func (a *API) share(w http.ResponseWriter, r *http.Request, p httprouter.Params) (written, status int) {
	in, err := parseInput(r)
	if err != nil {
		return xhttp.ReplyError(w, err.Error(), http.StatusBadRequest)
	}
	// Share the effective input, the same as what users see.
	plan := ec.Calculate(in)
	u, err := share.Link(a.cfg.ShareBase, plan.Input)
	if err != nil {
		xlog.ErrorID(w.Header().Get(xhttp.ReqIDHeader), "make share link failed: "+err.Error())
		return xhttp.ReplyError(w, "", http.StatusInternalServerError)
	}
	return xhttp.ReplyJson(w, &ShareResp{URL: u}, http.StatusOK)
}

func (a *API) projectStats(w http.ResponseWriter, r *http.Request, p httprouter.Params) (written, status int) {
	if a.stats == nil {
		return xhttp.ReplyError(w, "", http.StatusNotImplemented)
	}
	return xhttp.ReplyJson(w, a.stats.Snapshot(r.Context()), http.StatusOK)
}

func (a *API) verify(w http.ResponseWriter, r *http.Request, p httprouter.Params) (written, status int) {
	plan, written, status, ok := a.calculate(w, r)
	if !ok {
		return
	}
	rep, err := erasure.VerifyPlan(plan)
	if err != nil {
		xlog.GetLogger().Error("verify failed", xlog.ReqID(w.Header().Get(xhttp.ReqIDHeader)), zap.Error(err))
		return xhttp.ReplyError(w, err.Error(), http.StatusInternalServerError)
	}
	return xhttp.ReplyJson(w, &rep, http.StatusOK)
}
