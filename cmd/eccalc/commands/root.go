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

// Package commands implements the CLI commands of eccalc.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/zaibyte/eccalc/xlog"
)

var rootCmd = &cobra.Command{
	Use:   "eccalc",
	Short: "Erasure code calculator for RustFS clusters",
	Long: `eccalc computes usable capacity and failure tolerance of a RustFS cluster
from its topology (servers, drives per server, drive capacity),
and the erasure code settings (stripe size, parity).

Use "eccalc [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, _ := cmd.Flags().GetString("log-level")
		l, err := xlog.NewStderrLogger(lvl)
		if err != nil {
			return err
		}
		xlog.InitGlobalLogger(l)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level of stderr logger")

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(parityCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
