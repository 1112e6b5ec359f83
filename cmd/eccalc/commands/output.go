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
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
)

func outputFormat(cmd *cobra.Command) (string, error) {
	f, _ := cmd.Flags().GetString("output")
	switch strings.ToLower(strings.TrimSpace(f)) {
	case formatTable, "":
		return formatTable, nil
	case formatJSON:
		return formatJSON, nil
	}
	return "", fmt.Errorf("invalid output format: %q (valid: table, json)", f)
}

// printResult writes v as JSON, or pairs as a key-value table.
func printResult(cmd *cobra.Command, v interface{}, pairs [][2]string) error {
	f, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	if f == formatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	simpleTable(cmd.OutOrStdout(), pairs)
	return nil
}

// simpleTable prints a key-value table.
func simpleTable(w io.Writer, pairs [][2]string) {
	table := tablewriter.NewWriter(w)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator(":")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, p := range pairs {
		table.Append([]string{p[0], p[1]})
	}
	table.Render()
}

func joinInts(s []int) string {
	if len(s) == 0 {
		return "-"
	}
	b := make([]string, len(s))
	for i, v := range s {
		b[i] = fmt.Sprint(v)
	}
	return strings.Join(b, ", ")
}
