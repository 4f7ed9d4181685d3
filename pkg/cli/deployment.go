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
	"github.com/NVIDIA/wlsctl/pkg/deployment"
)

func deploymentCmd() *cli.Command {
	return &cli.Command{
		Name:                  "deployment",
		Aliases:               []string{"app"},
		EnableShellCompletion: true,
		Usage:                 "Deploy, undeploy or update an application",
		Description: `Drive an application deployment to the requested state:
  - deployed:   upload the artifact and deploy it under --name
  - undeployed: remove the application
  - updated:    upload the artifact and redeploy the existing application

The artifact can be a local file, an http(s) URL, or an OCI artifact
reference (oci://registry/repository:tag) holding a single file.

# Examples

  wlsctl deployment --name myApp --state deployed --artifact ./myApp.war
  wlsctl deployment --name myApp --state updated --artifact oci://ghcr.io/acme/myapp:1.4.0
  wlsctl deployment --name myApp --state undeployed --format json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Usage:    "Application name",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "state",
				Aliases: []string{"s"},
				Usage: fmt.Sprintf("Desired state (%s, %s, %s)",
					deployment.StateDeployed, deployment.StateUndeployed, deployment.StateUpdated),
				Required: true,
			},
			&cli.StringFlag{
				Name:    "artifact",
				Aliases: []string{"a"},
				Usage:   "Archive to upload: file path, http(s) URL or oci:// reference",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSingle(ctx, cmd, batch.Request{
				Kind:     string(batch.KindDeployment),
				Name:     cmd.String("name"),
				State:    cmd.String("state"),
				Artifact: cmd.String("artifact"),
			})
		},
	}
}
