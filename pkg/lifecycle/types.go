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

package lifecycle

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
)

// Kind is the outcome kind reported for server transitions.
const Kind = "server"

// Runtime states reported by the status endpoint.
const (
	RuntimeShutdown = "SHUTDOWN"
	RuntimeRunning  = "RUNNING"
)

// State is a desired server state.
type State string

const (
	StateStarted   State = "started"
	StateStopped   State = "stopped"
	StateRestarted State = "restarted"
)

// String returns the string representation of the State.
func (s State) String() string {
	return string(s)
}

// IsValid checks if the State is one of the recognized states.
func (s State) IsValid() bool {
	switch s {
	case StateStarted, StateStopped, StateRestarted:
		return true
	default:
		return false
	}
}

// ParseState parses a state name, case-insensitively.
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "started", "running":
		return StateStarted, nil
	case "stopped", "shutdown":
		return StateStopped, nil
	case "restarted":
		return StateRestarted, nil
	default:
		return "", apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid server state %q: must be one of started, stopped, restarted", s))
	}
}

// Target is one process-lifecycle request subject.
type Target struct {
	// Name is the managed server name.
	Name string `json:"name" yaml:"name"`
}

// Request pairs a Target with the State it should reach.
type Request struct {
	Target Target
	State  State
}

// NewRequest validates the inputs of a process-lifecycle request.
func NewRequest(name string, state State) (Request, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Request{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "server name is required")
	}
	if !state.IsValid() {
		return Request{}, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid server state %q", state))
	}
	return Request{Target: Target{Name: name}, State: state}, nil
}

// Phase is a step of the restart state machine.
type Phase string

const (
	PhaseStopping           Phase = "Stopping"
	PhaseWaitingForShutdown Phase = "WaitingForShutdown"
	PhaseStarting           Phase = "Starting"
	PhaseCompleted          Phase = "Completed"
	PhaseFailed             Phase = "Failed"
)

// PollOutcome is how a wait for a runtime state ended.
type PollOutcome string

const (
	PollObserved  PollOutcome = "Observed"
	PollTimedOut  PollOutcome = "TimedOut"
	PollCancelled PollOutcome = "Cancelled"
)

// PollAttempt records one status poll.
type PollAttempt struct {
	// Attempt is 1-based.
	Attempt int
	// Elapsed is the clock time since the wait began.
	Elapsed time.Duration
	// Status is the HTTP status of a successful response, 0 otherwise.
	Status int
	// State is the reported runtime state, empty when unknown.
	State string
	// Err is the transport or decode error of a failed poll.
	Err error
}

// PollResult is the sequence of polls of one wait and how it ended.
type PollResult struct {
	Awaiting string
	Attempts []PollAttempt
	Outcome  PollOutcome
	// Cause is set when Outcome is PollCancelled.
	Cause error
}

// LastState returns the state reported by the most recent successful poll.
func (r *PollResult) LastState() string {
	for i := len(r.Attempts) - 1; i >= 0; i-- {
		if r.Attempts[i].State != "" {
			return r.Attempts[i].State
		}
	}
	return ""
}
