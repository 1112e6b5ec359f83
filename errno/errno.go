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

// Package errno defines the error codes of eccalc.
//
// Calculator validation errors are non-fatal: they are returned as values,
// carried in the calculation plan and rendered as a single message.
package errno

import "errors"

type Errno uint16

func (e Errno) Error() string {

	if e == 0 {
		return ""
	}

	if int(e) < len(errnoStr) {
		s := errnoStr[e]
		if s != "" {
			return s
		}
	}
	return "unknown error"
}

// ErrToErrno finds the Errno in err's chain.
// Any error without an Errno in chain is an InternalServerError.
func ErrToErrno(err error) Errno {
	if err == nil {
		return 0
	}

	var e Errno
	if errors.As(err, &e) {
		return e
	}

	return Errno(InternalServerError)
}

// IsValidation returns true if err is caused by an illegal calculator input.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	e := ErrToErrno(err)
	return e >= InfeasibleTopology && e <= NoParity
}

const (
	BadRequest          = 1
	NotFound            = 2
	NotImplemented      = 3
	Timeout             = 4
	TooManyRequests     = 5
	InternalServerError = 6
	ConnectionError     = 7
	Canceled            = 8

	// Calculator validation.
	InfeasibleTopology = 32
	DrivesOutOfRange   = 33
	CapacityTooSmall   = 34
	InsufficientDrives = 35
	NoParity           = 36
)

var errnoStr = [...]string{
	BadRequest:          "bad message",
	NotFound:            "not found",
	NotImplemented:      "not implemented",
	Timeout:             "timeout",
	TooManyRequests:     "too many requests",
	InternalServerError: "internal server error",
	ConnectionError:     "connection error",
	Canceled:            "canceled",

	InfeasibleTopology: "at least 4 servers are recommended for higher availability",
	DrivesOutOfRange:   "drives per server must be between 1 and 256",
	CapacityTooSmall:   "drive capacity must be at least 1 TiB",
	InsufficientDrives: "please configure at least 4 drives",
	NoParity:           "erasure coding is not supported by this configuration, try another combination",
}

var (
	ErrBadRequest          = Errno(BadRequest)
	ErrNotFound            = Errno(NotFound)
	ErrNotImplemented      = Errno(NotImplemented)
	ErrTimeout             = Errno(Timeout)
	ErrTooManyRequests     = Errno(TooManyRequests)
	ErrInternalServerError = Errno(InternalServerError)
	ErrConnectionError     = Errno(ConnectionError)
	ErrCanceled            = Errno(Canceled)

	ErrInfeasibleTopology = Errno(InfeasibleTopology)
	ErrDrivesOutOfRange   = Errno(DrivesOutOfRange)
	ErrCapacityTooSmall   = Errno(CapacityTooSmall)
	ErrInsufficientDrives = Errno(InsufficientDrives)
	ErrNoParity           = Errno(NoParity)
)
