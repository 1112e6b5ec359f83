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

// Package metricutil provides the Prometheus metrics of eccalc,
// and functions to push them to Prometheus Pushgateway.
package metricutil

import (
	"net/http"
	"strconv"
	"time"

	"github.com/lni/goutils/syncutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/zaibyte/eccalc/config"
	"github.com/zaibyte/eccalc/errno"
	"github.com/zaibyte/eccalc/xlog"
	"go.uber.org/zap"
)

const namespace = "eccalc"

var (
	calculations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calculations_total",
		Help:      "Number of calculations by result.",
	}, []string{"result"})

	validationErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_errors_total",
		Help:      "Number of calculations rejected by validation, by errno code.",
	}, []string{"code"})

	statsFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_fetch_total",
		Help:      "Number of upstream project metrics fetches.",
	}, []string{"source", "outcome"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by API.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"api"})
)

func init() {
	prometheus.MustRegister(calculations, validationErrors, statsFetches, requestDuration)
}

// Handler returns the HTTP handler exposing the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveCalc counts a calculation with its validation error (nil if ok).
func ObserveCalc(err error) {
	if err == nil {
		calculations.WithLabelValues("ok").Inc()
		return
	}
	calculations.WithLabelValues("invalid").Inc()
	if errno.IsValidation(err) {
		validationErrors.WithLabelValues(strconv.Itoa(int(errno.ErrToErrno(err)))).Inc()
	}
}

// ObserveFetch counts an upstream fetch of source.
func ObserveFetch(source string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "fallback"
	}
	statsFetches.WithLabelValues(source, outcome).Inc()
}

// ObserveRequest records a request's latency.
func ObserveRequest(api string, start time.Time) {
	requestDuration.WithLabelValues(api).Observe(time.Since(start).Seconds())
}

// Config is the Pushgateway config.
type Config struct {
	PushJob      string          `toml:"push_job"`
	PushAddress  string          `toml:"push_address"`
	PushInterval config.Duration `toml:"push_interval"`
}

const (
	defaultPushInterval = 15 * time.Second
)

// Push pushes metrics in background until the returned Stopper stops.
// It returns nil if Pushgateway is disabled.
func Push(cfg *Config, instanceID string) *syncutil.Stopper {

	if len(cfg.PushAddress) == 0 || cfg.PushJob == "" {
		xlog.Info("disable Prometheus push client")
		return nil
	}

	config.Adjust(&cfg.PushInterval, defaultPushInterval)

	xlog.Info("start Prometheus push client")

	pusher := push.New(cfg.PushAddress, cfg.PushJob).
		Gatherer(prometheus.DefaultGatherer).
		Grouping("instance", instanceID)

	stopper := syncutil.NewStopper()
	stopper.RunWorker(func() {
		ticker := time.NewTicker(cfg.PushInterval.Duration)
		defer ticker.Stop()
		for {
			if err := pusher.Push(); err != nil {
				xlog.Error("could not push metrics to Prometheus Pushgateway", zap.Error(err))
			}
			select {
			case <-ticker.C:
			case <-stopper.ShouldStop():
				return
			}
		}
	})
	return stopper
}
