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

// Package lifecycle drives managed-server process state transitions through
// the management API serverLifeCycleRuntimes endpoints.
//
// Start and Stop issue a single request each. Restart is a small state
// machine:
//
//	Stopping -> WaitingForShutdown -> Starting -> Completed
//	    \               \                 \
//	     `---------------`-----------------`--> Failed
//
// WaitingForShutdown polls the server runtime once per interval, at most
// MaxPolls times, and leaves on the first successful response whose state
// is SHUTDOWN. Failed polls (non-2xx, network errors) do not abort the wait.
// Exhausting the ceiling is an *errors.TimeoutError; a failed shutdown or
// start request is the *errors.TransportError the transport returned; a
// cancelled context is an *errors.CancelledError. Start is never issued
// unless SHUTDOWN was observed.
//
// Waits between polls block on the controller's clock, so tests can drive
// the loop with k8s.io/utils/clock/testing:
//
//	fc := testingclock.NewFakeClock(time.Now())
//	ctrl := lifecycle.NewController(ep, tr,
//	    lifecycle.WithClock(fc),
//	    lifecycle.WithMaxPolls(10),
//	)
//
// WithConfirmRunning adds a bounded post-start poll for RUNNING after Start
// and Restart.
package lifecycle
