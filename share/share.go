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

// Package share encodes calculator inputs in URL query strings,
// so a configuration could be shared as a link.
package share

import (
	"net/url"
	"strconv"

	"github.com/zaibyte/eccalc/ec"
	"github.com/zaibyte/eccalc/xerrors"
)

// Query keys.
const (
	KeyServers         = "number_of_servers"
	KeyDrivesPerServer = "drives_per_server"
	KeyDriveCapacity   = "drive_capacity"
	KeyStripeSize      = "stripe_size"
	KeyParity          = "parity_count"
)

var keys = [...]string{KeyServers, KeyDrivesPerServer, KeyDriveCapacity, KeyStripeSize, KeyParity}

// Encode encodes in into query values.
func Encode(in ec.Input) url.Values {
	q := make(url.Values, len(keys))
	q.Set(KeyServers, strconv.Itoa(in.Servers))
	q.Set(KeyDrivesPerServer, strconv.Itoa(in.DrivesPerServer))
	q.Set(KeyDriveCapacity, strconv.FormatFloat(in.DriveCapacityTiB, 'f', -1, 64))
	q.Set(KeyStripeSize, strconv.Itoa(in.StripeSize))
	q.Set(KeyParity, strconv.Itoa(in.Parity))
	return q
}

// Link returns base with in encoded as query string.
// Existing query in base is replaced.
func Link(base string, in ec.Input) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", xerrors.WithMsgf(err, "illegal share base %q", base)
	}
	u.RawQuery = Encode(in).Encode()
	return u.String(), nil
}

// Decode decodes query values into Input.
// ok is false unless all keys are present and numeric,
// caller should keep its current input then.
func Decode(q url.Values) (in ec.Input, ok bool) {
	for _, k := range keys {
		if _, has := q[k]; !has {
			return
		}
	}

	var err error
	if in.Servers, err = strconv.Atoi(q.Get(KeyServers)); err != nil {
		return ec.Input{}, false
	}
	if in.DrivesPerServer, err = strconv.Atoi(q.Get(KeyDrivesPerServer)); err != nil {
		return ec.Input{}, false
	}
	if in.DriveCapacityTiB, err = strconv.ParseFloat(q.Get(KeyDriveCapacity), 64); err != nil {
		return ec.Input{}, false
	}
	if in.StripeSize, err = strconv.Atoi(q.Get(KeyStripeSize)); err != nil {
		return ec.Input{}, false
	}
	if in.Parity, err = strconv.Atoi(q.Get(KeyParity)); err != nil {
		return ec.Input{}, false
	}
	return in, true
}

// DecodePartial decodes the keys present in q over def.
// It's used by API callers which only care about some fields.
// Any present but non-numeric value is an error.
func DecodePartial(q url.Values, def ec.Input) (ec.Input, error) {
	in := def
	for _, f := range []struct {
		key string
		i   *int
	}{
		{KeyServers, &in.Servers},
		{KeyDrivesPerServer, &in.DrivesPerServer},
		{KeyStripeSize, &in.StripeSize},
		{KeyParity, &in.Parity},
	} {
		if _, has := q[f.key]; !has {
			continue
		}
		v, err := strconv.Atoi(q.Get(f.key))
		if err != nil {
			return def, xerrors.WithMsgf(err, "illegal %s", f.key)
		}
		*f.i = v
	}

	if _, has := q[KeyDriveCapacity]; has {
		v, err := strconv.ParseFloat(q.Get(KeyDriveCapacity), 64)
		if err != nil {
			return def, xerrors.WithMsgf(err, "illegal %s", KeyDriveCapacity)
		}
		in.DriveCapacityTiB = v
	}
	return in, nil
}
