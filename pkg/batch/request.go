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

package batch

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/wlsctl/pkg/deployment"
	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
	"github.com/NVIDIA/wlsctl/pkg/lifecycle"
)

// Kind selects the controller a request is sent to.
type Kind string

const (
	KindDeployment Kind = "deployment"
	KindServer     Kind = "server"
)

// ParseKind parses a request kind. "application" and "app" are accepted
// for deployments.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deployment", "application", "app":
		return KindDeployment, nil
	case "server":
		return KindServer, nil
	default:
		return "", apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid request kind %q: must be deployment or server", s))
	}
}

// Request is one untyped batch entry as read from a file.
type Request struct {
	Kind     string `json:"kind" yaml:"kind"`
	Name     string `json:"name" yaml:"name"`
	State    string `json:"state" yaml:"state"`
	Artifact string `json:"artifact,omitempty" yaml:"artifact,omitempty"`
}

// Item is a validated batch entry.
type Item struct {
	Kind       Kind
	Deployment deployment.Request
	Server     lifecycle.Request
}

// Name returns the entity name.
func (i Item) Name() string {
	if i.Kind == KindDeployment {
		return i.Deployment.Target.Name
	}
	return i.Server.Target.Name
}

// State returns the desired state label.
func (i Item) State() string {
	if i.Kind == KindDeployment {
		return i.Deployment.State.String()
	}
	return i.Server.State.String()
}

func (i Item) key() string {
	return string(i.Kind) + "/" + i.Name()
}

// Validate converts requests into items. Artifact files are not checked
// here; OCI and http(s) artifacts are only resolved when the item runs.
func Validate(reqs []Request) ([]Item, error) {
	if len(reqs) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "batch contains no requests")
	}

	items := make([]Item, 0, len(reqs))
	seen := make(map[string]int, len(reqs))

	for idx, req := range reqs {
		item, err := validateOne(req)
		if err != nil {
			return nil, apperrors.WrapWithContext(apperrors.CodeOf(err),
				fmt.Sprintf("invalid request %d", idx), err,
				map[string]any{"index": idx, "name": req.Name})
		}

		if first, dup := seen[item.key()]; dup {
			return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("%s %q appears more than once", item.Kind, item.Name()),
				map[string]any{"first": first, "duplicate": idx})
		}
		seen[item.key()] = idx
		items = append(items, item)
	}
	return items, nil
}

func validateOne(req Request) (Item, error) {
	kind, err := ParseKind(req.Kind)
	if err != nil {
		return Item{}, err
	}

	switch kind {
	case KindDeployment:
		state, err := deployment.ParseState(req.State)
		if err != nil {
			return Item{}, err
		}
		dr, err := deployment.NewRequest(req.Name, state, req.Artifact)
		if err != nil {
			return Item{}, err
		}
		return Item{Kind: kind, Deployment: dr}, nil

	default:
		state, err := lifecycle.ParseState(req.State)
		if err != nil {
			return Item{}, err
		}
		sr, err := lifecycle.NewRequest(req.Name, state)
		if err != nil {
			return Item{}, err
		}
		return Item{Kind: kind, Server: sr}, nil
	}
}
