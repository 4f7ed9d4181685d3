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

// Package transport performs authenticated requests against an
// administration server's management REST API.
//
// Endpoint holds the base URL, basic-auth credentials and API version and
// builds domainRuntime URLs:
//
//	ep, err := transport.NewEndpoint("http://admin:7001",
//	    transport.Credentials{Username: "weblogic", Password: pw},
//	    version.APIVersion{})
//	url := ep.DomainRuntimeURL("serverLifeCycleRuntimes", "ManagedServer1", "start")
//
// Transport is the seam controllers depend on; HTTPClient is the net/http
// implementation:
//
//	client := transport.NewHTTPClient(
//	    transport.WithInsecureSkipVerify(true),
//	    transport.WithRateLimit(5, 1),
//	)
//	resp, err := client.Send(ctx, &transport.Request{
//	    Op:          "deploy",
//	    URL:         url,
//	    Credentials: ep.Credentials(),
//	    Payload:     &transport.FilePayload{Path: "/builds/myApp.war"},
//	})
//
// A payload is streamed as a single-part multipart body under the
// "deployment" field with the file's base name. Any non-2xx status is a
// *errors.TransportError with Status and Body set; connection, DNS and
// timeout failures are a *errors.TransportError with Network set. Caller
// cancellation is a *errors.CancelledError. Nothing is retried here.
package transport
