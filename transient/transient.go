// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"syscall"
)

// A Category is the transience category of a particular error, as
// reported by function Categorize().
//
// The category Not means the error is not transient from the
// perspective of completing an HTTP request successfully, or in other
// words that repeating the request after encountering this error is
// very unlikely to succeed. All other categories indicate some
// prospect of success on a repeat.
type Category int

const (
	// Not indicates any non-transient error.
	Not Category = iota
	// Timeout indicates a client-side timeout. The server may be going
	// through a temporary period of slowness, or the client may
	// succeed on a future attempt waiting longer.
	//
	// Function Categorize() will return Timeout if the error or any of
	// its wrapped causes has a Timeout() function that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection,
	// and corresponds to the POSIX error code ECONNREFUSED.
	//
	// Although connection refusal may be a permanent condition, it is
	// classified as transient because it can happen while the service
	// on the remote host is starting or restarting and not yet
	// listening on the target port.
	ConnRefused
	// ConnReset indicates the remote host returned an RST packet on a
	// previously active TCP connection, and corresponds to the POSIX
	// error code ECONNRESET.
	//
	// Connection reset is common when a service behind a load balancer
	// is redeployed mid-request, so it tends to indicate a high
	// probability of success on a repeat.
	ConnReset
)

// Categorize returns the transience category of the given error. A nil
// error, and an error that is not transient from the perspective of
// completing an HTTP request, both produce the return value Not.
//
// In assessing transience, Categorize looks at wrapped cause errors
// contained within err, not just err itself, so it sees through the
// reqx error envelope down to the transport error it wraps. Categorize
// never checks whether an error has a Temporary() function, as the
// semantics of Temporary() aren't entirely clear.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var timeout hasTimeout
	if errors.As(err, &timeout) && timeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
