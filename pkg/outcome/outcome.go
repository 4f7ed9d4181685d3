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

package outcome

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
)

// StateFailed is the State label of every failed Outcome.
const StateFailed = "failed"

// Outcome is the caller-facing result of one lifecycle operation. It is
// either a success (Changed true, Error nil) or a failure (Changed false,
// Error set); Report never produces anything in between.
type Outcome struct {
	Changed bool         `json:"changed" yaml:"changed"`
	Entity  string       `json:"entity" yaml:"entity"`
	Kind    string       `json:"kind,omitempty" yaml:"kind,omitempty"`
	State   string       `json:"state" yaml:"state"`
	Error   *ErrorDetail `json:"error,omitempty" yaml:"error,omitempty"`

	cause error
}

// ErrorDetail is the structured, render-ready form of a taxonomy error.
type ErrorDetail struct {
	Code      apperrors.ErrorCode `json:"code" yaml:"code"`
	Message   string              `json:"message" yaml:"message"`
	Operation string              `json:"operation,omitempty" yaml:"operation,omitempty"`
	Status    int                 `json:"status,omitempty" yaml:"status,omitempty"`
	Body      string              `json:"body,omitempty" yaml:"body,omitempty"`
	Attempts  int                 `json:"attempts,omitempty" yaml:"attempts,omitempty"`
	Timeout   string              `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// Report maps an operation result to an Outcome. kind is "application" or
// "server"; state is the label reported on success.
func Report(kind, entity, state string, err error) Outcome {
	if err == nil {
		return Outcome{
			Changed: true,
			Entity:  entity,
			Kind:    kind,
			State:   state,
		}
	}
	return Outcome{
		Changed: false,
		Entity:  entity,
		Kind:    kind,
		State:   StateFailed,
		Error:   Detail(err),
		cause:   err,
	}
}

// Detail converts err into an ErrorDetail, pulling the taxonomy fields out
// of whichever error type is in the chain.
func Detail(err error) *ErrorDetail {
	if err == nil {
		return nil
	}

	d := &ErrorDetail{
		Code:    apperrors.CodeOf(err),
		Message: err.Error(),
	}

	var (
		pe *apperrors.PreconditionError
		te *apperrors.TransportError
		to *apperrors.TimeoutError
		ce *apperrors.CancelledError
	)
	switch {
	case errors.As(err, &pe):
		d.Operation = pe.Op
	case errors.As(err, &te):
		d.Operation = te.Op
		d.Status = te.Status
		d.Body = te.Body
	case errors.As(err, &to):
		d.Operation = "await-" + to.Awaiting
		d.Attempts = to.Attempts
		d.Timeout = to.Timeout.String()
	case errors.As(err, &ce):
		d.Operation = ce.Op
	}

	return d
}

// Err returns the error the Outcome was built from, or nil on success.
func (o Outcome) Err() error {
	if o.Error == nil {
		return nil
	}
	if o.cause != nil {
		return o.cause
	}
	return apperrors.New(o.Error.Code, o.Error.Message)
}

// Failed reports whether the Outcome carries an error.
func (o Outcome) Failed() bool {
	return o.Error != nil
}

var titleCaser = cases.Title(language.English)

// Summary renders a one-line description, e.g. "Restarted server ManagedServer1".
func (o Outcome) Summary() string {
	if o.Failed() {
		return fmt.Sprintf("Failed %s %s: %s", o.Kind, o.Entity, o.Error.Message)
	}
	return fmt.Sprintf("%s %s %s", titleCaser.String(o.State), o.Kind, o.Entity)
}
