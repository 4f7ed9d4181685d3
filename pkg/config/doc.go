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

// Package config loads wlsctl batch files.
//
// A batch file is YAML or JSON, local or fetched over http(s), and carries
// the administration endpoint, restart tuning and the list of requests:
//
//	endpoint:
//	  url: https://admin.example.com:7002
//	  username: weblogic
//	  passwordEnv: WLS_PASSWORD
//	  apiVersion: 12.2.1.4.0
//	restart:
//	  maxPolls: 90
//	  pollInterval: 2s
//	  confirmRunning: true
//	concurrency: 2
//	requests:
//	  - kind: deployment
//	    name: myApp
//	    state: deployed
//	    artifact: oci://ghcr.io/acme/myapp:1.4.0
//	  - kind: server
//	    name: ManagedServer1
//	    state: restarted
//
// Unknown keys are rejected. Every section is optional; command line flags
// fill in or override the endpoint.
package config
