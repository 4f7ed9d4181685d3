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

package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
)

// DeploymentField is the multipart form field the management API expects
// the uploaded archive under.
const DeploymentField = "deployment"

// FilePayload is a local file sent as a single-part multipart body.
type FilePayload struct {
	// Field is the multipart form field name. Defaults to DeploymentField.
	Field string
	// Path is the local file path. Only its base name is sent.
	Path string
}

// FieldName returns the form field, applying the default.
func (p *FilePayload) FieldName() string {
	if p.Field == "" {
		return DeploymentField
	}
	return p.Field
}

// FileName returns the base name of Path; directory components are never sent.
func (p *FilePayload) FileName() string {
	return filepath.Base(p.Path)
}

// Request is one management API call.
type Request struct {
	// Op names the logical operation (deploy, shutdown, status, ...) for
	// errors, logs and metrics.
	Op string
	// Method defaults to POST.
	Method string
	// URL is the absolute request URL.
	URL string
	// Credentials are sent with basic authentication.
	Credentials Credentials
	// Payload is an optional file upload.
	Payload *FilePayload
}

// Response is a successful (2xx) management API response.
type Response struct {
	Status int
	Body   []byte
}

// DecodeJSON unmarshals the response body into v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// Transport sends management API requests. Implementations return a
// *errors.TransportError for non-2xx responses and network failures and a
// *errors.CancelledError when ctx ends first. They never retry.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

// Send calls f.
func (f TransportFunc) Send(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}
