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
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/wlsctl/pkg/config"
	"github.com/NVIDIA/wlsctl/pkg/defaults"
	"github.com/NVIDIA/wlsctl/pkg/outcome"
)

func applyCmd() *cli.Command {
	return &cli.Command{
		Name:                  "apply",
		EnableShellCompletion: true,
		Usage:                 "Apply a batch of deployment and server requests",
		Description: `Apply every request in a YAML or JSON batch file, local or http(s).
Requests run concurrently up to --concurrency, each entity at most once, and
the report lists one outcome per request in file order. A failing request
does not stop the others.

The file may also carry the endpoint and restart settings; command line
flags take precedence.

# Example

  wlsctl apply --file batch.yaml --format table`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path or http(s) URL of the batch file",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Maximum number of requests in flight",
				Value: defaults.BatchConcurrency,
			},
		}, restartFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			f, err := config.Load(ctx, cmd.String("file"))
			if err != nil {
				return err
			}

			start := time.Now()
			outcomes, err := runFile(ctx, cmd, f)
			if err != nil {
				return err
			}

			report := outcome.NewBatchReport(outcomes, time.Since(start), version)
			report.Set("source", cmd.String("file"))
			slog.Info(report.Summary(), "failed", report.FailureCount())

			if err := writeReport(ctx, cmd, format, report); err != nil {
				return err
			}
			return batchError(ctx, report)
		},
	}
}
