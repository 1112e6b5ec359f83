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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/zaibyte/eccalc/calcapi"
	"github.com/zaibyte/eccalc/config"
	"github.com/zaibyte/eccalc/metricutil"
	"github.com/zaibyte/eccalc/stats"
	"github.com/zaibyte/eccalc/uid"
	"github.com/zaibyte/eccalc/xhttp"
	"github.com/zaibyte/eccalc/xlog"
	"go.uber.org/zap"
)

const appName = "eccalc"

// ServeConfig is the config file of serve.
type ServeConfig struct {
	Server xhttp.ServerConfig `toml:"server"`
	Log    xlog.ServerConfig  `toml:"log"`
	API    calcapi.Config     `toml:"api"`
	// DisableStats disables /v1/stats & background refreshing.
	DisableStats bool              `toml:"disable_stats"`
	Stats        stats.Config      `toml:"stats"`
	Metrics      metricutil.Config `toml:"metrics"`
}

// LoadServeConfig loads config from TOML file fp,
// empty fp means all defaults.
func LoadServeConfig(fp string) (*ServeConfig, error) {
	cfg := new(ServeConfig)
	if fp == "" {
		return cfg, nil
	}
	if err := config.Load(fp, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator HTTP API",
	Long: `Serve the calculator HTTP API (HTTP/1.1 & h2c).

Examples:
  eccalc serve --config /etc/eccalc/eccalc.toml
  eccalc serve --addr 0.0.0.0:9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("config", "", "Config file path (TOML)")
	serveCmd.Flags().String("addr", "", "Listen address, overrides config")
}

// newServer builds the server from cfg, it doesn't start it.
func newServer(cfg *ServeConfig) (*xhttp.Server, error) {
	el, al, err := cfg.Log.MakeAppLogger(appName)
	if err != nil {
		return nil, err
	}

	cfg.Server.AppName = appName
	srv := xhttp.NewServer(&cfg.Server, al)

	var st *stats.Service
	if !cfg.DisableStats {
		st = stats.NewService(&cfg.Stats)
		st.StartRefresher(cfg.Stats.RefreshInterval.Duration)
		srv.AddExit(st.Close)
	}
	calcapi.New(&cfg.API, st).Register(srv)

	if stopper := metricutil.Push(&cfg.Metrics, uid.InstanceID()); stopper != nil {
		srv.AddExit(func() error {
			stopper.Stop()
			return nil
		})
	}
	srv.AddExit(al.Close)
	srv.AddExit(el.Close)
	return srv, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	fp, _ := cmd.Flags().GetString("config")
	cfg, err := LoadServeConfig(fp)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Address = addr
	}

	srv, err := newServer(cfg)
	if err != nil {
		return err
	}
	xlog.Info("eccalc starting", zap.String("instance", uid.InstanceID()))
	srv.Run()
	return nil
}
