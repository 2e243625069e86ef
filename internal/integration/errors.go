// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

package integration

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/samber/oops"
)

// ErrorKind classifies an integration failure.
type ErrorKind uint8

// Error kinds.
const (
	KindNetwork ErrorKind = iota
	KindTimeout
	KindOffline
	KindAuthFailed
	KindServerError
	KindSerialization
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindOffline:
		return "offline"
	case KindAuthFailed:
		return "auth_failed"
	case KindServerError:
		return "server_error"
	case KindSerialization:
		return "serialization"
	default:
		return "unknown"
	}
}

// Code returns the error code for the kind.
func (k ErrorKind) Code() string {
	switch k {
	case KindTimeout:
		return "INTEGRATION_TIMEOUT"
	case KindOffline:
		return "INTEGRATION_OFFLINE"
	case KindAuthFailed:
		return "INTEGRATION_AUTH_FAILED"
	case KindServerError:
		return "INTEGRATION_SERVER_ERROR"
	case KindSerialization:
		return "INTEGRATION_SERIALIZATION"
	default:
		return "INTEGRATION_NETWORK"
	}
}

// Error is a failed integration request. Status is set for KindServerError
// and, when the server answered, KindAuthFailed.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindServerError:
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	case KindOffline:
		return "server is offline or unreachable"
	case KindTimeout:
		return "request timed out"
	case KindAuthFailed:
		return "authentication failed: " + e.Message
	case KindSerialization:
		return "serialization error: " + e.Message
	default:
		return "network error: " + e.Message
	}
}

// Code returns the error code for the kind.
func (e *Error) Code() string { return e.Kind.Code() }

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// failure wraps e with its code so both errors.As and oops see it.
func failure(op string, e *Error) error {
	return oops.Code(e.Code()).
		With("op", op).
		With("kind", e.Kind.String()).
		Wrap(e)
}

// KindOf extracts the kind of an integration error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsOffline reports whether err is the explicit offline failure.
func IsOffline(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindOffline
}

// classify maps a transport error onto a kind.
func classify(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, err.Error())
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newError(KindTimeout, err.Error())
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return newError(KindOffline, err.Error())
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return newError(KindOffline, err.Error())
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return newError(KindOffline, err.Error())
	}
	return newError(KindNetwork, err.Error())
}
