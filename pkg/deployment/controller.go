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
	"context"
	"fmt"
	"log/slog"
	"os"

	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
	"github.com/NVIDIA/wlsctl/pkg/outcome"
	"github.com/NVIDIA/wlsctl/pkg/transport"
)

// Controller issues deploymentManager requests against one endpoint.
type Controller struct {
	endpoint  *transport.Endpoint
	transport transport.Transport
}

// NewController returns a Controller bound to ep that sends through tr.
func NewController(ep *transport.Endpoint, tr transport.Transport) *Controller {
	return &Controller{endpoint: ep, transport: tr}
}

// Deploy uploads the artifact and deploys it under t.Name.
func (c *Controller) Deploy(ctx context.Context, t Target) outcome.Outcome {
	return c.run(ctx, StateDeployed, t)
}

// Undeploy removes the application t.Name. No artifact is required.
func (c *Controller) Undeploy(ctx context.Context, t Target) outcome.Outcome {
	return c.run(ctx, StateUndeployed, t)
}

// Update uploads the artifact and redeploys t.Name.
func (c *Controller) Update(ctx context.Context, t Target) outcome.Outcome {
	return c.run(ctx, StateUpdated, t)
}

// Apply drives r.Target to r.State.
func (c *Controller) Apply(ctx context.Context, r Request) outcome.Outcome {
	return c.run(ctx, r.State, r.Target)
}

func (c *Controller) run(ctx context.Context, state State, t Target) outcome.Outcome {
	op := state.Action()
	err := c.send(ctx, op, state, t)
	observeOperation(op, err)
	if err != nil {
		slog.Error("application transition failed",
			"application", t.Name,
			"operation", op,
			"error", err)
	} else {
		slog.Info("application transition completed",
			"application", t.Name,
			"state", state)
	}
	return outcome.Report(Kind, t.Name, state.String(), err)
}

func (c *Controller) send(ctx context.Context, op string, state State, t Target) error {
	if op == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid deployment state %q", state))
	}
	if t.Name == "" {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "application name is required")
	}

	req := &transport.Request{
		Op:          op,
		URL:         c.endpoint.DomainRuntimeURL("deploymentManager", "appDeployments", t.Name, op),
		Credentials: c.endpoint.Credentials(),
	}

	if state.RequiresArtifact() {
		if err := checkArtifact(t.Name, op, t.ArtifactPath); err != nil {
			return err
		}
		req.Payload = &transport.FilePayload{Path: t.ArtifactPath}
	}

	slog.Debug("issuing application request",
		"application", t.Name,
		"operation", op,
		"artifact", t.ArtifactPath)

	_, err := c.transport.Send(ctx, req)
	return err
}

// checkArtifact verifies path names a regular file the process can read.
func checkArtifact(name, op, path string) error {
	precondition := func(msg string) error {
		return &apperrors.PreconditionError{Entity: name, Op: op, Field: "artifact", Message: msg}
	}

	if path == "" {
		return precondition("is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return precondition(fmt.Sprintf("%s does not exist", path))
		}
		return precondition(fmt.Sprintf("%s: %v", path, err))
	}
	if !info.Mode().IsRegular() {
		return precondition(fmt.Sprintf("%s is not a regular file", path))
	}

	f, err := os.Open(path)
	if err != nil {
		return precondition(fmt.Sprintf("%s is not readable: %v", path, err))
	}
	_ = f.Close()
	return nil
}
