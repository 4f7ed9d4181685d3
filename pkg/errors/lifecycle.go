// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"
)

// Coder is implemented by every error in the taxonomy.
type Coder interface {
	error
	ErrorCode() ErrorCode
}

// PreconditionError reports invalid local input detected before any
// request was issued, e.g. a missing artifact file.
type PreconditionError struct {
	// Entity is the application or server name.
	Entity string
	// Op is the attempted operation (deploy, update, ...).
	Op string
	// Field names the offending input.
	Field string
	// Message describes what is wrong with Field.
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s %q: %s %s", e.Op, e.Entity, e.Field, e.Message)
}

// ErrorCode returns ErrCodePrecondition.
func (e *PreconditionError) ErrorCode() ErrorCode { return ErrCodePrecondition }

// TransportError reports a failed management API request. Network is set
// when no HTTP response was received; otherwise Status and Body carry the
// non-2xx response.
type TransportError struct {
	Op      string
	URL     string
	Status  int
	Body    string
	Network bool
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Network {
		return fmt.Sprintf("%s %s: network error: %v", e.Op, e.URL, e.Cause)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Op, e.URL, e.Status, e.Body)
	}
	return fmt.Sprintf("%s %s: status %d", e.Op, e.URL, e.Status)
}

// Unwrap returns the underlying network error, if any.
func (e *TransportError) Unwrap() error { return e.Cause }

// ErrorCode returns ErrCodeTransport.
func (e *TransportError) ErrorCode() ErrorCode { return ErrCodeTransport }

// TimeoutError reports that a server never reached the awaited state within
// the poll ceiling.
type TimeoutError struct {
	Server   string
	Awaiting string
	Timeout  time.Duration
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("server %q did not reach %s within %s (%d attempts)",
		e.Server, e.Awaiting, e.Timeout, e.Attempts)
}

// ErrorCode returns ErrCodeTimeout.
func (e *TimeoutError) ErrorCode() ErrorCode { return ErrCodeTimeout }

// CancelledError reports that the caller aborted the operation.
type CancelledError struct {
	Entity string
	Op     string
	Cause  error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("%s %q cancelled: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the context error.
func (e *CancelledError) Unwrap() error { return e.Cause }

// ErrorCode returns ErrCodeCancelled.
func (e *CancelledError) ErrorCode() ErrorCode { return ErrCodeCancelled }

// CodeOf classifies err. Context cancellation and deadline errors that were
// not already wrapped map to ErrCodeCancelled; anything unknown is internal.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var c Coder
	if stderrors.As(err, &c) {
		return c.ErrorCode()
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return ErrCodeCancelled
	}
	return ErrCodeInternal
}
