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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zaibyte/eccalc/ec"
	"github.com/zaibyte/eccalc/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the calculation as CSV or SVG",
	Long: `Export the calculation summary as CSV or SVG.

Output goes to stdout unless --out is set,
"--out ." writes to the default file name in current directory.

Examples:
  eccalc export --format csv > results.csv
  eccalc export --format svg --servers 16 --out .`,
	RunE: runExport,
}

func init() {
	addInputFlags(exportCmd)
	exportCmd.Flags().String("format", "csv", "Export format (csv|svg)")
	exportCmd.Flags().String("out", "", "Output file, '.' for the default file name")
}

func runExport(cmd *cobra.Command, args []string) error {
	fs, _ := cmd.Flags().GetString("format")
	f, err := export.ParseFormat(fs)
	if err != nil {
		return err
	}
	in, err := inputFromFlags(cmd)
	if err != nil {
		return err
	}
	plan := ec.Calculate(in)
	if !plan.Valid() {
		return plan.Err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return export.Write(cmd.OutOrStdout(), f, plan)
	}
	if out == "." {
		out = f.Filename()
	}

	file, err := os.Create(out)
	if err != nil {
		return err
	}
	if err = export.Write(file, f, plan); err != nil {
		_ = file.Close()
		return err
	}
	if err = file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", out)
	return nil
}
