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

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/wlsctl/pkg/artifact"
	"github.com/NVIDIA/wlsctl/pkg/batch"
	"github.com/NVIDIA/wlsctl/pkg/config"
	"github.com/NVIDIA/wlsctl/pkg/deployment"
	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
	"github.com/NVIDIA/wlsctl/pkg/lifecycle"
	"github.com/NVIDIA/wlsctl/pkg/outcome"
	"github.com/NVIDIA/wlsctl/pkg/serializer"
	"github.com/NVIDIA/wlsctl/pkg/transport"
)

// runFile applies the requests of f, with command line flags taking
// precedence over the file. The error is non-nil only when nothing was
// sent.
func runFile(ctx context.Context, cmd *cli.Command, f *config.File) ([]outcome.Outcome, error) {
	applyRestartFlags(cmd, f)
	if cmd.IsSet("concurrency") {
		n := cmd.Int("concurrency")
		f.Concurrency = &n
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	flags, err := endpointFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	settings := f.Endpoint.Override(flags)
	ep, err := settings.Build(nil)
	if err != nil {
		return nil, err
	}

	rps := cmd.Int("rate-limit")
	tr := transport.NewHTTPClient(
		transport.WithUserAgent(fmt.Sprintf("%s/%s", name, version)),
		transport.WithInsecureSkipVerify(settings.Insecure),
		transport.WithRateLimit(float64(rps), rps),
	)

	runner := batch.NewRunner(
		deployment.NewController(ep, tr),
		lifecycle.NewController(ep, tr, f.LifecycleOptions()...),
		batch.WithConcurrency(f.BatchConcurrency()),
		batch.WithResolver(artifact.NewResolver(
			artifact.WithInsecureTLS(settings.Insecure),
			artifact.WithPlainHTTP(cmd.Bool("plain-http")),
		)),
	)

	slog.Debug("applying requests",
		"endpoint", ep.BaseURL(),
		"apiVersion", ep.APIVersion().String(),
		"credentials", ep.Credentials(),
		"requests", len(f.Requests))

	return runner.Run(ctx, f.Requests)
}

// writeReport serializes v to --output, or to the command's writer when no
// output file is given. Output is written even after cancellation so the
// cancelled outcome is still reported.
func writeReport(ctx context.Context, cmd *cli.Command, format serializer.Format, v any) error {
	var w *serializer.Writer
	if path := cmd.String("output"); path != "" {
		fw, err := serializer.NewFileWriter(format, path)
		if err != nil {
			return err
		}
		w = fw
	} else {
		w = serializer.NewWriter(format, cmd.Root().Writer)
	}

	if err := w.Serialize(context.WithoutCancel(ctx), v); err != nil {
		if abortErr := w.Abort(); abortErr != nil {
			slog.Warn("failed to discard output", "error", abortErr)
		}
		return fmt.Errorf("failed to write output: %w", err)
	}
	return w.Close()
}

// runSingle applies one request and reports it as an Outcome document.
func runSingle(ctx context.Context, cmd *cli.Command, req batch.Request) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	outcomes, err := runFile(ctx, cmd, &config.File{Requests: []batch.Request{req}})
	if err != nil {
		return err
	}
	o := outcomes[0]
	if o.Failed() {
		slog.Error(o.Summary(), "code", o.Error.Code)
	} else {
		slog.Info(o.Summary(), "changed", o.Changed)
	}

	if err := writeReport(ctx, cmd, format, outcome.NewDocument(o, version)); err != nil {
		return err
	}
	return o.Err()
}

// batchError summarizes a report with failures. Cancellation of the whole
// run takes precedence over individual failures.
func batchError(ctx context.Context, r *outcome.BatchReport) error {
	if !r.HasErrors() {
		return nil
	}
	if ctx.Err() != nil {
		return &apperrors.CancelledError{Entity: "batch", Op: "apply", Cause: ctx.Err()}
	}
	failed := r.Failed()
	return fmt.Errorf("%d of %d requests failed: %w", len(failed), len(r.Outcomes), failed[0].Err())
}
