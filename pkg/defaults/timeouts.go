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

package defaults

import "time"

// Restart convergence settings.
const (
	// ShutdownPollInterval is the wait between server status polls while a
	// restart waits for SHUTDOWN.
	ShutdownPollInterval = 1 * time.Second

	// MaxShutdownPolls is the poll ceiling before a restart gives up.
	MaxShutdownPolls = 60

	// ConfirmRunningInterval is the poll interval for the optional
	// post-start RUNNING confirmation.
	ConfirmRunningInterval = 2 * time.Second

	// ConfirmRunningTimeout bounds the optional post-start confirmation.
	ConfirmRunningTimeout = 2 * time.Minute
)

// HTTP client timeouts for management API requests.
const (
	// HTTPClientTimeout is the default total timeout for non-upload requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPUploadTimeout is the total timeout for deploy and redeploy uploads.
	// Archives can be large and the server deploys synchronously.
	HTTPUploadTimeout = 10 * time.Minute

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// Batch and artifact settings.
const (
	// BatchConcurrency is the default number of entities transitioned at once.
	BatchConcurrency = 4

	// ArtifactPullTimeout bounds pulling an artifact from an OCI registry.
	ArtifactPullTimeout = 5 * time.Minute

	// MaxErrorBodyBytes caps how much of a non-2xx response body is kept on
	// a TransportError.
	MaxErrorBodyBytes = 4 << 10
)
