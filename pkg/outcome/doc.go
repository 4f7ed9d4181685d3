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

// Package outcome normalizes controller results into the record handed back
// to callers.
//
// Report is a pure function: it performs no I/O and inspects only the error
// value. A success yields
//
//	changed: true
//	entity: ManagedServer1
//	kind: server
//	state: restarted
//
// and a failure yields Changed false, State "failed" and an ErrorDetail whose
// Code identifies the taxonomy member (PRECONDITION_FAILED, TRANSPORT,
// TIMEOUT, CANCELLED) along with the attempted operation and, where known,
// the HTTP status or poll attempt count.
//
// Document and BatchReport wrap outcomes under a common header for
// serialization.
package outcome
