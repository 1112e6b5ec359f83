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
	"encoding/csv"
	"io"

	"github.com/zaibyte/eccalc/ec"
)

// WriteCSV writes the summary as metric/value rows with a header.
func WriteCSV(w io.Writer, plan ec.Plan) error {
	if err := checkPlan(plan); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Metric", "Value"}); err != nil {
		return err
	}
	for _, p := range Summary(plan) {
		if err := cw.Write([]string{p.Label, p.Value}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
