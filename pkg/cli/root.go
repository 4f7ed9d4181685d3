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
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
	"github.com/NVIDIA/wlsctl/pkg/logging"
)

const (
	name           = "wlsctl"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the root command with the process arguments and exits with
// the code ExitCode assigns to the returned error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().Run(ctx, os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	stop()
	os.Exit(ExitCode(err))
}

// ExitCode maps an error to the process exit code: 0 on success, 2 when the
// operation was cancelled or timed out, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeCancelled, apperrors.ErrCodeTimeout:
		return 2
	default:
		return 1
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Drive applications and managed servers to a desired state",
		Description: `wlsctl talks to an administration server's management REST API to
deploy, undeploy and update applications, and to start, stop and restart
managed servers. Each operation produces an Outcome document describing
whether anything changed and why it failed, if it did.`,
		Flags: []cli.Flag{
			urlFlag(),
			usernameFlag(),
			passwordFlag(),
			apiVersionFlag(),
			insecureFlag(),
			plainHTTPFlag(),
			rateLimitFlag(),
			metricsFileFlag(),
			outputFlag(),
			formatFlag(),
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvLogLevel),
				Value:   "info",
			},
		},
		Before: initLogger,
		After:  writeMetrics,
		Commands: []*cli.Command{
			deploymentCmd(),
			serverCmd(),
			applyCmd(),
		},
	}
}

// initLogger configures slog after flags are parsed so --log-level takes
// effect before any command executes.
func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logLevel := cmd.String("log-level")
	logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", logLevel)
	return ctx, nil
}

// writeMetrics exports the default registry for the node-exporter textfile
// collector.
func writeMetrics(_ context.Context, cmd *cli.Command) error {
	path := cmd.String("metrics-file")
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics to %q: %w", path, err)
	}
	slog.Debug("metrics written", "path", path)
	return nil
}
