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

// Package cli implements the wlsctl command-line interface.
//
// # Overview
//
// wlsctl drives applications and managed servers of an application server
// domain to a desired state through the administration server's management
// REST API, and reports the result as a structured Outcome.
//
// # Commands
//
// deployment - Deploy, undeploy or update an application:
//
//	wlsctl deployment --name myApp --state deployed --artifact ./myApp.war
//	wlsctl deployment --name myApp --state updated --artifact oci://ghcr.io/acme/myapp:1.4.0
//	wlsctl deployment --name myApp --state undeployed
//
// server - Start, stop or restart a managed server:
//
//	wlsctl server --name ManagedServer1 --state restarted [--max-polls 90] [--confirm-running]
//
// apply - Apply a batch file:
//
//	wlsctl apply --file batch.yaml [--concurrency 2]
//
// # Global Flags
//
//	--url           Administration server URL (env WLS_ADMIN_URL)
//	--username      Management user (env WLS_USERNAME)
//	--password      Management password (env WLS_PASSWORD)
//	--api-version   Management API version segment (default: latest)
//	--output, -o    Output file path (default: stdout)
//	--format, -t    Output format: yaml, json, table (default: yaml)
//	--metrics-file  Write Prometheus metrics in text format after the command
//	--insecure      Skip TLS verification of the administration server
//	--rate-limit    Maximum management API requests per second
//	--log-level     Logging verbosity (debug, info, warn, error)
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, precondition or transport failure)
//	2  Context canceled or timeout
package cli
