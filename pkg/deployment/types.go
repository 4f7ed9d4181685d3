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

package deployment

import (
	"fmt"
	"strings"

	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
)

// Kind is the outcome kind reported for application transitions.
const Kind = "application"

// State is a desired application state.
type State string

const (
	StateDeployed   State = "deployed"
	StateUndeployed State = "undeployed"
	StateUpdated    State = "updated"
)

// String returns the string representation of the State.
func (s State) String() string {
	return string(s)
}

// IsValid checks if the State is one of the recognized states.
func (s State) IsValid() bool {
	switch s {
	case StateDeployed, StateUndeployed, StateUpdated:
		return true
	default:
		return false
	}
}

// RequiresArtifact reports whether reaching s uploads an archive.
func (s State) RequiresArtifact() bool {
	return s == StateDeployed || s == StateUpdated
}

// Action is the management API action that reaches s.
func (s State) Action() string {
	switch s {
	case StateDeployed:
		return "deploy"
	case StateUndeployed:
		return "undeploy"
	case StateUpdated:
		return "redeploy"
	default:
		return ""
	}
}

// ParseState parses a state name, case-insensitively. "present" and
// "absent" are accepted as aliases of deployed and undeployed.
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deployed", "present":
		return StateDeployed, nil
	case "undeployed", "absent":
		return StateUndeployed, nil
	case "updated":
		return StateUpdated, nil
	default:
		return "", apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid deployment state %q: must be one of deployed, undeployed, updated", s))
	}
}

// Target is one artifact-lifecycle request subject.
type Target struct {
	// Name is the application name.
	Name string `json:"name" yaml:"name"`
	// ArtifactPath is the local archive uploaded by Deploy and Update.
	ArtifactPath string `json:"artifact,omitempty" yaml:"artifact,omitempty"`
}

// Request pairs a Target with the State it should reach.
type Request struct {
	Target Target
	State  State
}

// NewRequest validates the inputs of an artifact-lifecycle request. The
// artifact file itself is checked when the request runs, right before the
// upload.
func NewRequest(name string, state State, artifactPath string) (Request, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Request{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "application name is required")
	}
	if !state.IsValid() {
		return Request{}, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid deployment state %q", state))
	}
	if state.RequiresArtifact() && strings.TrimSpace(artifactPath) == "" {
		return Request{}, &apperrors.PreconditionError{
			Entity:  name,
			Op:      state.Action(),
			Field:   "artifact",
			Message: "is required",
		}
	}
	return Request{
		Target: Target{Name: name, ArtifactPath: artifactPath},
		State:  state,
	}, nil
}
