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

// Package export renders a calculation plan as downloadable files.
//
// Exports are snapshots for users, they are never read back.
package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zaibyte/eccalc/ec"
	"github.com/zaibyte/eccalc/xbytes"
	"github.com/zaibyte/eccalc/xmath"
)

// Format is an export file format.
type Format string

const (
	CSV Format = "csv"
	SVG Format = "svg"
)

// FilePrefix is the file name without extension.
const FilePrefix = "rustfs-erasure-code-results"

var (
	// ErrInvalidPlan is returned when exporting a plan with validation error.
	ErrInvalidPlan = errors.New("export: invalid plan")
	// ErrUnknownFormat is returned by ParseFormat.
	ErrUnknownFormat = errors.New("export: unknown format")
)

type invalidPlanError struct {
	cause error
}

func (e *invalidPlanError) Error() string        { return ErrInvalidPlan.Error() + ": " + e.cause.Error() }
func (e *invalidPlanError) Unwrap() error        { return e.cause }
func (e *invalidPlanError) Is(target error) bool { return target == ErrInvalidPlan }

// ParseFormat parses s (case-insensitive) into Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case CSV, SVG:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Filename returns the default download file name.
func (f Format) Filename() string {
	return FilePrefix + "." + string(f)
}

// ContentType returns the MIME type.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml;charset=utf-8"
	}
	return "text/csv;charset=utf-8"
}

// Write writes plan in format f to w.
func Write(w io.Writer, f Format, plan ec.Plan) error {
	switch f {
	case CSV:
		return WriteCSV(w, plan)
	case SVG:
		return WriteSVG(w, plan)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Pair is a row of summary.
type Pair struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summary returns the ordered rows shown to users.
func Summary(plan ec.Plan) []Pair {
	in, r := plan.Input, plan.Result
	return []Pair{
		{"Servers", strconv.Itoa(in.Servers)},
		{"Drives per server", strconv.Itoa(in.DrivesPerServer)},
		{"Drive capacity (TiB)", strconv.FormatFloat(in.DriveCapacityTiB, 'f', -1, 64)},
		{"Stripe size (K + M)", strconv.Itoa(in.StripeSize)},
		{"Parity (M)", strconv.Itoa(in.Parity)},
		{"Raw capacity", xbytes.NiceBytes(r.RawBytes)},
		{"Usable capacity", xbytes.NiceBytes(r.UsableBytes)},
		{"Storage efficiency", fmt.Sprintf("%d%%", xmath.FloorPercent(r.Efficiency))},
		{"Drive failure tolerance", fmt.Sprintf("cluster tolerates about %d drive failures", r.DriveFailureTolerance)},
		{"Per-stripe tolerance", fmt.Sprintf("%d / %d", r.DriveFailures, in.StripeSize)},
		{"Server failure tolerance", fmt.Sprintf("cluster tolerates about %d server failures", r.ServerFailureTolerance)},
		{"Per-shard tolerance", fmt.Sprintf("%d / %d", r.ServerFailureTolerancePerShard, plan.Partition.ServersPerShard)},
	}
}

func checkPlan(plan ec.Plan) error {
	if plan.Err != nil {
		return &invalidPlanError{cause: plan.Err}
	}
	return nil
}
