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
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
	"github.com/NVIDIA/wlsctl/pkg/version"
)

// Credentials are the basic-auth user and password for the management API.
type Credentials struct {
	Username string
	Password string
}

// LogValue keeps the password out of structured logs.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", c.Username),
		slog.String("password", "REDACTED"),
	)
}

// String implements fmt.Stringer without exposing the password.
func (c Credentials) String() string {
	return c.Username + ":REDACTED"
}

// Endpoint identifies an administration server's management API.
// It is immutable once constructed and shared by reference between the
// deployment and lifecycle controllers.
type Endpoint struct {
	baseURL     string
	credentials Credentials
	apiVersion  version.APIVersion
}

// NewEndpoint validates and constructs an Endpoint. The base URL must be an
// absolute http or https URL; a trailing slash is ignored.
func NewEndpoint(baseURL string, creds Credentials, apiVersion version.APIVersion) (*Endpoint, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "admin URL is required")
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid admin URL %q", trimmed), err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("admin URL %q must use http or https", trimmed))
	}
	if u.Host == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("admin URL %q has no host", trimmed))
	}
	if u.User != nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			"admin URL must not embed credentials")
	}
	if creds.Username == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "username is required")
	}

	return &Endpoint{
		baseURL:     trimmed,
		credentials: creds,
		apiVersion:  apiVersion,
	}, nil
}

// BaseURL returns the administration server URL without trailing slash.
func (e *Endpoint) BaseURL() string { return e.baseURL }

// Credentials returns the basic-auth credentials.
func (e *Endpoint) Credentials() Credentials { return e.credentials }

// APIVersion returns the management API version segment.
func (e *Endpoint) APIVersion() version.APIVersion { return e.apiVersion }

// DomainRuntimeURL builds {base}/management/weblogic/{ver}/domainRuntime/{segments...}.
// Each segment is path-escaped so entity names cannot alter the path.
func (e *Endpoint) DomainRuntimeURL(segments ...string) string {
	var b strings.Builder
	b.WriteString(e.baseURL)
	b.WriteString("/management/weblogic/")
	b.WriteString(e.apiVersion.String())
	b.WriteString("/domainRuntime")
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
