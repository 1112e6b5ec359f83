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

// Package xbytes provides byte size formatting & parsing
// and a pool of byte buffers.
package xbytes

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	units "github.com/docker/go-units"

	"github.com/zaibyte/eccalc/config/settings"
	"github.com/zaibyte/eccalc/xerrors"
)

const base = 1024

var binaryAbbrs = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB", "YiB"}

// tibIndex is the unit used when there is nothing to show.
const tibIndex = 4

// NiceBytes formats v in the biggest binary unit which keeps the number < 1024.
//
// One decimal place is kept for numbers < 10 (except bytes).
// Non-finite or non-positive v is shown as "0 TiB".
func NiceBytes(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return "0 " + binaryAbbrs[tibIndex]
	}

	n, i := v, 0
	for n >= base && i < len(binaryAbbrs)-1 {
		n /= base
		i++
	}

	format, scale := "%.0f %s", 1.0
	if n < 10 && i > 0 {
		format, scale = "%.1f %s", 10
	}
	// Ties round up (1.25 -> 1.3), fmt rounds them to even.
	r := math.Floor(n*scale+0.5) / scale
	if r >= base {
		return fmt.Sprintf(format, r, binaryAbbrs[i])
	}
	return units.CustomSize(format, r*math.Pow(base, float64(i)), base, binaryAbbrs)
}

// GetBytes converts v in unit to bytes.
// Unknown unit returns 0.
func GetBytes(v float64, unit string) float64 {
	for i, u := range binaryAbbrs {
		if u == unit {
			return v * math.Pow(base, float64(i))
		}
	}
	return 0
}

// TiBToBytes converts TiB to bytes.
func TiBToBytes(tib float64) float64 {
	return tib * settings.TiB
}

// ParseTiB parses a drive capacity.
//
// A plain number is in TiB (e.g. "8", "7.5"),
// otherwise it must be a binary size (e.g. "8TiB", "512GiB", "1.5t").
func ParseTiB(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}

	n, err := units.RAMInBytes(s)
	if err != nil {
		return 0, xerrors.WithMsgf(err, "illegal capacity %q", s)
	}
	return float64(n) / settings.TiB, nil
}
