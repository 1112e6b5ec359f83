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

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zaibyte/eccalc/ec"
	"github.com/zaibyte/eccalc/errno"
)

func defaultPlan() ec.Plan {
	return ec.Calculate(ec.DefaultInput())
}

func TestSummary(t *testing.T) {
	rows := Summary(defaultPlan())
	assert.Len(t, rows, 12)

	exp := map[string]string{
		"Servers":                  "8",
		"Drives per server":        "16",
		"Drive capacity (TiB)":     "8",
		"Stripe size (K + M)":      "16",
		"Parity (M)":               "4",
		"Raw capacity":             "1.0 PiB",
		"Usable capacity":          "768 TiB",
		"Storage efficiency":       "75%",
		"Drive failure tolerance":  "cluster tolerates about 32 drive failures",
		"Per-stripe tolerance":     "4 / 16",
		"Server failure tolerance": "cluster tolerates about 2 server failures",
		"Per-shard tolerance":      "2 / 8",
	}
	for _, p := range rows {
		assert.Equal(t, exp[p.Label], p.Value, p.Label)
	}
	assert.Equal(t, "Servers", rows[0].Label)
	assert.Equal(t, "Per-shard tolerance", rows[11].Label)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	assert.Nil(t, WriteCSV(&buf, defaultPlan()))

	recs, err := csv.NewReader(&buf).ReadAll()
	assert.Nil(t, err)
	assert.Len(t, recs, 13)
	assert.Equal(t, []string{"Metric", "Value"}, recs[0])
	assert.Equal(t, []string{"Usable capacity", "768 TiB"}, recs[7])
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	assert.Nil(t, WriteSVG(&buf, defaultPlan()))

	s := buf.String()
	assert.True(t, strings.HasPrefix(s, "<?xml"))
	assert.Contains(t, s, `width="720"`)
	assert.Contains(t, s, `height="372"`) // 32*2 + 22*14
	assert.Contains(t, s, SVGTitle)
	assert.Contains(t, s, "Usable capacity: 768 TiB")
	assert.Equal(t, 13, strings.Count(s, "<text "))

	// Must be well-formed.
	dec := xml.NewDecoder(strings.NewReader(s))
	for {
		_, err := dec.Token()
		if err != nil {
			assert.Equal(t, "EOF", err.Error())
			break
		}
	}
}

func TestSVGHeight(t *testing.T) {
	assert.Equal(t, 32*2+22*2, SVGHeight(0))
	assert.Equal(t, 372, SVGHeight(12))
}

func TestInvalidPlan(t *testing.T) {
	in := ec.DefaultInput()
	in.Servers = 3
	plan := ec.Calculate(in)
	assert.NotNil(t, plan.Err)

	for _, f := range []Format{CSV, SVG} {
		var buf bytes.Buffer
		err := Write(&buf, f, plan)
		assert.True(t, errors.Is(err, ErrInvalidPlan))
		assert.True(t, errors.Is(err, errno.ErrInfeasibleTopology))
		assert.Equal(t, 0, buf.Len())
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("CSV")
	assert.Nil(t, err)
	assert.Equal(t, CSV, f)
	assert.Equal(t, "rustfs-erasure-code-results.csv", f.Filename())

	f, err = ParseFormat("svg")
	assert.Nil(t, err)
	assert.Equal(t, "image/svg+xml;charset=utf-8", f.ContentType())

	_, err = ParseFormat("pdf")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	assert.True(t, errors.Is(Write(&bytes.Buffer{}, Format("pdf"), defaultPlan()), ErrUnknownFormat))
}

func TestSummaryRoundsTiesUp(t *testing.T) {
	plan := ec.Calculate(ec.Input{
		Topology:   ec.Topology{Servers: 16, DrivesPerServer: 10, DriveCapacityTiB: 16},
		StripeSize: 16,
		Parity:     8,
	})
	assert.True(t, plan.Valid())

	for _, p := range Summary(plan) {
		if p.Label == "Usable capacity" {
			assert.Equal(t, "1.3 PiB", p.Value)
			return
		}
	}
	t.Fatal("no usable capacity row")
}
