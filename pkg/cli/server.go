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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/wlsctl/pkg/batch"
	"github.com/NVIDIA/wlsctl/pkg/lifecycle"
)

func serverCmd() *cli.Command {
	return &cli.Command{
		Name:                  "server",
		EnableShellCompletion: true,
		Usage:                 "Start, stop or restart a managed server",
		Description: `Drive a managed server to the requested state:
  - started:   request start
  - stopped:   request shutdown
  - restarted: request shutdown, wait until the server reports SHUTDOWN,
               then request start

The restart wait polls the server status up to --max-polls times,
--poll-interval apart, and fails with a timeout if SHUTDOWN is never
observed. With --confirm-running, starts are followed by a wait for RUNNING.

# Examples

  wlsctl server --name ManagedServer1 --state restarted
  wlsctl server --name ManagedServer1 --state started --confirm-running`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Usage:    "Managed server name",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "state",
				Aliases: []string{"s"},
				Usage: fmt.Sprintf("Desired state (%s, %s, %s)",
					lifecycle.StateStarted, lifecycle.StateStopped, lifecycle.StateRestarted),
				Required: true,
			},
		}, restartFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSingle(ctx, cmd, batch.Request{
				Kind:  string(batch.KindServer),
				Name:  cmd.String("name"),
				State: cmd.String("state"),
			})
		},
	}
}
