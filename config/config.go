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

// Package config provides methods to load & adjust configs.
//
// All config files are in TOML.
package config

import (
	"time"

	"github.com/BurntSushi/toml"

	"github.com/zaibyte/eccalc/xerrors"
)

// Load loads TOML file from path into cfg.
// Undecoded keys are treated as error, it helps to find typos.
func Load(path string, cfg interface{}) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return xerrors.WithMsgf(err, "failed to load config: %s", path)
	}
	if u := md.Undecoded(); len(u) > 0 {
		return xerrors.WithMsgf(ErrUnknownKey, "%s: %s", path, u[0].String())
	}
	return nil
}

// Adjust sets *v = def if *v is zero value.
//
// Supported types:
// *string, *int, *int64, *uint32, *uint64, *float64, *bool(only true default),
// *time.Duration, *Duration.
//
// It panics on other types, a wrong type is a bug, not a config error.
func Adjust(v interface{}, def interface{}) {
	switch p := v.(type) {
	case *string:
		if *p == "" {
			*p = def.(string)
		}
	case *int:
		if *p == 0 {
			*p = def.(int)
		}
	case *int64:
		if *p == 0 {
			*p = def.(int64)
		}
	case *uint32:
		if *p == 0 {
			*p = def.(uint32)
		}
	case *uint64:
		if *p == 0 {
			*p = def.(uint64)
		}
	case *float64:
		if *p == 0 {
			*p = def.(float64)
		}
	case *bool:
		if !*p {
			*p = def.(bool)
		}
	case *time.Duration:
		if *p == 0 {
			*p = def.(time.Duration)
		}
	case *Duration:
		if p.Duration == 0 {
			p.Duration = def.(time.Duration)
		}
	default:
		panic("config: unsupported Adjust type")
	}
}

// Duration is a wrapper of time.Duration for TOML and JSON.
// e.g. push_interval = "15s"
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}
