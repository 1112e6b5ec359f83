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
	"github.com/zaibyte/eccalc/config/settings"
	"github.com/zaibyte/eccalc/ec"
	"github.com/zaibyte/eccalc/share"
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Make a share link of the calculation",
	Long: `Make a share link carrying the effective input of the calculation.

Examples:
  eccalc share --servers 12 --stripe 12 --parity 4`,
	RunE: runShare,
}

func init() {
	addInputFlags(shareCmd)
	shareCmd.Flags().String("base", settings.DefaultShareBase, "Page which the link points to")
}

func runShare(cmd *cobra.Command, args []string) error {
	in, err := inputFromFlags(cmd)
	if err != nil {
		return err
	}
	base, _ := cmd.Flags().GetString("base")
	link, err := share.Link(base, ec.Calculate(in).Input)
	if err != nil {
		return err
	}
	return printResult(cmd, map[string]string{"url": link}, [][2]string{{"URL", link}})
}
