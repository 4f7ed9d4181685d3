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

// Package batch applies a list of application and server requests.
//
// The whole list is validated before any request is sent: every entry must
// name a known kind and state, and no entity may appear twice, so two
// transitions never race on the same application or server. Distinct
// entities then run concurrently, bounded by the configured concurrency.
//
// A failing entry does not stop the others. Run returns one Outcome per
// request in input order.
package batch
