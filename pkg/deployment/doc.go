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

// Package deployment drives application artifact state transitions through
// the management API deploymentManager endpoints.
//
// A Controller is bound to one endpoint and one transport:
//
//	ctrl := deployment.NewController(ep, transport.NewHTTPClient())
//	o := ctrl.Deploy(ctx, deployment.Target{
//	    Name:         "myApp",
//	    ArtifactPath: "/builds/myApp.war",
//	})
//	if o.Failed() {
//	    return o.Err()
//	}
//
// Deploy and Update require ArtifactPath to name a regular, readable file
// and check it before any request is issued. Undeploy ignores the artifact.
// Each operation issues exactly one request; success is decided by the
// HTTP status alone and the response body is not inspected.
package deployment
