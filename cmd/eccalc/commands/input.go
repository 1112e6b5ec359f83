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
	"net/url"

	"github.com/spf13/cobra"
	"github.com/zaibyte/eccalc/config/settings"
	"github.com/zaibyte/eccalc/ec"
	"github.com/zaibyte/eccalc/share"
	"github.com/zaibyte/eccalc/xbytes"
)

func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("servers", settings.DefaultServers, "Number of servers")
	f.Int("drives", settings.DefaultDrivesPerServer, "Drives per server")
	f.String("capacity", fmt.Sprint(settings.DefaultDriveCapacityTiB), "Drive capacity, TiB if no unit (e.g. 8, 7.68TiB, 16T)")
	f.Int("stripe", 0, "Stripe size (K + M), 0 picks the biggest feasible one")
	f.Int("parity", 0, "Parity (M), 0 picks the default one")
	f.String("share-url", "", "Take input from a share link, flags set explicitly override it")
}

// inputFromFlags builds calculator input from flags.
func inputFromFlags(cmd *cobra.Command) (ec.Input, error) {
	f := cmd.Flags()

	in := ec.DefaultInput()
	if link, _ := f.GetString("share-url"); link != "" {
		u, err := url.Parse(link)
		if err != nil {
			return in, fmt.Errorf("illegal share link: %w", err)
		}
		decoded, ok := share.Decode(u.Query())
		if !ok {
			return in, fmt.Errorf("incomplete share link: %s", link)
		}
		in = decoded
	}

	if f.Changed("servers") {
		in.Servers, _ = f.GetInt("servers")
	}
	if f.Changed("drives") {
		in.DrivesPerServer, _ = f.GetInt("drives")
	}
	if f.Changed("capacity") {
		s, _ := f.GetString("capacity")
		c, err := xbytes.ParseTiB(s)
		if err != nil {
			return in, err
		}
		in.DriveCapacityTiB = c
	}
	if f.Changed("stripe") {
		in.StripeSize, _ = f.GetInt("stripe")
	}
	if f.Changed("parity") {
		in.Parity, _ = f.GetInt("parity")
	}
	return in, nil
}
