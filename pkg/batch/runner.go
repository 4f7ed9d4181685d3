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
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/wlsctl/pkg/artifact"
	"github.com/NVIDIA/wlsctl/pkg/defaults"
	"github.com/NVIDIA/wlsctl/pkg/deployment"
	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
	"github.com/NVIDIA/wlsctl/pkg/lifecycle"
	"github.com/NVIDIA/wlsctl/pkg/outcome"
)

// DeploymentApplier drives an application to a desired state.
type DeploymentApplier interface {
	Apply(ctx context.Context, r deployment.Request) outcome.Outcome
}

// ServerApplier drives a managed server to a desired state.
type ServerApplier interface {
	Apply(ctx context.Context, r lifecycle.Request) outcome.Outcome
}

// ArtifactResolver turns an artifact source into a local file.
type ArtifactResolver interface {
	Resolve(ctx context.Context, src string) (*artifact.Artifact, error)
}

// Option is a functional option for configuring Runner instances.
type Option func(*Runner)

// WithConcurrency bounds how many items run at once. Values below 1 are
// ignored.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithResolver resolves deployment artifacts before upload.
func WithResolver(res ArtifactResolver) Option {
	return func(r *Runner) {
		r.resolver = res
	}
}

// Runner applies validated batches.
type Runner struct {
	deployments DeploymentApplier
	servers     ServerApplier
	resolver    ArtifactResolver
	concurrency int
}

// NewRunner returns a Runner sending deployments and servers to the given
// controllers.
func NewRunner(deployments DeploymentApplier, servers ServerApplier, options ...Option) *Runner {
	r := &Runner{
		deployments: deployments,
		servers:     servers,
		concurrency: defaults.BatchConcurrency,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Run validates reqs and applies them. A validation error is returned
// before any request is sent; after that every item yields an Outcome.
func (r *Runner) Run(ctx context.Context, reqs []Request) ([]outcome.Outcome, error) {
	items, err := Validate(reqs)
	if err != nil {
		return nil, err
	}
	return r.RunItems(ctx, items), nil
}

// RunItems applies already validated items.
func (r *Runner) RunItems(ctx context.Context, items []Item) []outcome.Outcome {
	start := time.Now()
	results := make([]outcome.Outcome, len(items))

	var g errgroup.Group
	g.SetLimit(r.concurrency)

	for i, item := range items {
		g.Go(func() error {
			results[i] = r.apply(ctx, item)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range results {
		if o.Failed() {
			failed++
		}
	}
	slog.Info("batch completed",
		"requests", len(items),
		"failed", failed,
		"duration", time.Since(start).Round(time.Millisecond))

	return results
}

func (r *Runner) apply(ctx context.Context, item Item) outcome.Outcome {
	if item.Kind == KindServer {
		return r.servers.Apply(ctx, item.Server)
	}

	req := item.Deployment
	if r.resolver == nil || !req.State.RequiresArtifact() {
		return r.deployments.Apply(ctx, req)
	}

	a, err := r.resolver.Resolve(ctx, req.Target.ArtifactPath)
	if err != nil {
		return outcome.Report(deployment.Kind, req.Target.Name, req.State.String(),
			&apperrors.PreconditionError{
				Entity:  req.Target.Name,
				Op:      req.State.Action(),
				Field:   "artifact",
				Message: err.Error(),
			})
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			slog.Warn("failed to remove artifact", "path", a.Path, "error", cerr)
		}
	}()

	req.Target.ArtifactPath = a.Path
	return r.deployments.Apply(ctx, req)
}
