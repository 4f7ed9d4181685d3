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
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
	"github.com/NVIDIA/wlsctl/pkg/version"
)

func TestNewEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		user    string
		wantErr bool
		wantURL string
	}{
		{name: "http", url: "http://admin-server:7001", user: "weblogic", wantURL: "http://admin-server:7001"},
		{name: "trailing slash", url: "https://admin:7002/", user: "weblogic", wantURL: "https://admin:7002"},
		{name: "empty", url: "", user: "weblogic", wantErr: true},
		{name: "no scheme", url: "admin:7001", user: "weblogic", wantErr: true},
		{name: "ftp", url: "ftp://admin", user: "weblogic", wantErr: true},
		{name: "embedded credentials", url: "http://u:p@admin:7001", user: "weblogic", wantErr: true},
		{name: "no user", url: "http://admin:7001", user: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, err := NewEndpoint(tt.url, Credentials{Username: tt.user, Password: "pw"}, version.APIVersion{})
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, ep.BaseURL())
		})
	}
}

func TestDomainRuntimeURL(t *testing.T) {
	ep, err := NewEndpoint("http://admin:7001", Credentials{Username: "weblogic"}, version.APIVersion{})
	require.NoError(t, err)

	assert.Equal(t,
		"http://admin:7001/management/weblogic/latest/domainRuntime/deploymentManager/appDeployments/myApp/deploy",
		ep.DomainRuntimeURL("deploymentManager", "appDeployments", "myApp", "deploy"))

	assert.Equal(t,
		"http://admin:7001/management/weblogic/latest/domainRuntime/serverLifeCycleRuntimes/Managed%20Server%2F1",
		ep.DomainRuntimeURL("serverLifeCycleRuntimes", "Managed Server/1"))

	pinned, err := NewEndpoint("http://admin:7001", Credentials{Username: "weblogic"}, version.MustParse("12.2.1.4.0"))
	require.NoError(t, err)
	assert.Equal(t,
		"http://admin:7001/management/weblogic/12.2.1.4.0/domainRuntime/serverLifeCycleRuntimes/ms1/start",
		pinned.DomainRuntimeURL("serverLifeCycleRuntimes", "ms1", "start"))
}

func TestCredentialsAreRedacted(t *testing.T) {
	creds := Credentials{Username: "weblogic", Password: "s3cret"}

	assert.NotContains(t, fmt.Sprint(creds), "s3cret")

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("endpoint", "credentials", creds)
	assert.NotContains(t, buf.String(), "s3cret")
	assert.Contains(t, buf.String(), "weblogic")
}
