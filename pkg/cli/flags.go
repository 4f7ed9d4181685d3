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
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/wlsctl/pkg/config"
	"github.com/NVIDIA/wlsctl/pkg/defaults"
	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
	"github.com/NVIDIA/wlsctl/pkg/serializer"
	ver "github.com/NVIDIA/wlsctl/pkg/version"
)

// Environment variables read by the endpoint flags.
const (
	EnvAdminURL = "WLS_ADMIN_URL"
	EnvUsername = "WLS_USERNAME"
	EnvPassword = "WLS_PASSWORD"
)

func urlFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "url",
		Usage:   "Administration server URL (e.g., https://admin.example.com:7002)",
		Sources: cli.EnvVars(EnvAdminURL),
	}
}

func usernameFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "username",
		Aliases: []string{"u"},
		Usage:   "Management API user",
		Sources: cli.EnvVars(EnvUsername),
	}
}

func passwordFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "password",
		Usage:   "Management API password",
		Sources: cli.EnvVars(EnvPassword),
	}
}

func apiVersionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "api-version",
		Usage: "Management API version segment (latest or a release such as 12.2.1.4.0)",
		Value: ver.Latest,
	}
}

func insecureFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "insecure",
		Usage: "Skip TLS certificate verification for the administration server and registries",
	}
}

func plainHTTPFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "plain-http",
		Usage: "Use plain HTTP when pulling oci:// artifacts",
	}
}

func rateLimitFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "rate-limit",
		Usage: "Maximum management API requests per second (0 disables the limit)",
	}
}

func metricsFileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "metrics-file",
		Usage: "Write Prometheus metrics in text exposition format to this file",
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func maxPollsFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "max-polls",
		Usage: "Status polls before a restart gives up waiting for SHUTDOWN",
		Value: defaults.MaxShutdownPolls,
	}
}

func pollIntervalFlag() cli.Flag {
	return &cli.DurationFlag{
		Name:  "poll-interval",
		Usage: "Wait between status polls during a restart",
		Value: defaults.ShutdownPollInterval,
	}
}

func confirmRunningFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "confirm-running",
		Usage: "After start, poll until the server reports RUNNING",
	}
}

func confirmTimeoutFlag() cli.Flag {
	return &cli.DurationFlag{
		Name:  "confirm-timeout",
		Usage: "Bound on the --confirm-running wait",
		Value: defaults.ConfirmRunningTimeout,
	}
}

func restartFlags() []cli.Flag {
	return []cli.Flag{maxPollsFlag(), pollIntervalFlag(), confirmRunningFlag(), confirmTimeoutFlag()}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f, err := serializer.ParseFormat(cmd.String("format"))
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid --format", err)
	}
	return f, nil
}

// endpointFromFlags collects the endpoint flags. Unset flags leave the
// corresponding fields empty so they do not override a batch file.
func endpointFromFlags(cmd *cli.Command) (config.Endpoint, error) {
	ep := config.Endpoint{
		URL:      cmd.String("url"),
		Username: cmd.String("username"),
		Password: cmd.String("password"),
		Insecure: cmd.Bool("insecure"),
	}
	v, err := ver.Parse(cmd.String("api-version"))
	if err != nil {
		return config.Endpoint{}, apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid --api-version %q", cmd.String("api-version")), err)
	}
	ep.APIVersion = v
	return ep, nil
}

// applyRestartFlags copies explicitly set restart flags onto f.
func applyRestartFlags(cmd *cli.Command, f *config.File) {
	if cmd.IsSet("max-polls") {
		n := cmd.Int("max-polls")
		f.Restart.MaxPolls = &n
	}
	if cmd.IsSet("poll-interval") {
		d := config.Duration(cmd.Duration("poll-interval"))
		f.Restart.PollInterval = &d
	}
	if cmd.IsSet("confirm-running") {
		f.Restart.ConfirmRunning = cmd.Bool("confirm-running")
	}
	if cmd.IsSet("confirm-timeout") {
		d := config.Duration(cmd.Duration("confirm-timeout"))
		f.Restart.ConfirmTimeout = &d
	}
}
