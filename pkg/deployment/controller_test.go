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

package deployment

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
	"github.com/NVIDIA/wlsctl/pkg/outcome"
	"github.com/NVIDIA/wlsctl/pkg/transport"
	"github.com/NVIDIA/wlsctl/pkg/version"
)

// recorder is a Transport double that records every request.
type recorder struct {
	mu       sync.Mutex
	requests []*transport.Request
	err      error
}

func (r *recorder) Send(_ context.Context, req *transport.Request) (*transport.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	if r.err != nil {
		return nil, r.err
	}
	return &transport.Response{Status: http.StatusOK}, nil
}

func (r *recorder) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

func testEndpoint(t *testing.T, baseURL string) *transport.Endpoint {
	t.Helper()
	ep, err := transport.NewEndpoint(baseURL,
		transport.Credentials{Username: "weblogic", Password: "welcome1"},
		version.APIVersion{})
	require.NoError(t, err)
	return ep
}

func writeArtifact(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "build", name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("PK\x03\x04"), 0o600))
	return path
}

func TestController_Success(t *testing.T) {
	artifact := writeArtifact(t, "myApp.war")

	tests := []struct {
		name        string
		call        func(*Controller, context.Context, Target) outcome.Outcome
		wantState   string
		wantAction  string
		wantPayload bool
	}{
		{"deploy", (*Controller).Deploy, "deployed", "deploy", true},
		{"undeploy", (*Controller).Undeploy, "undeployed", "undeploy", false},
		{"update", (*Controller).Update, "updated", "redeploy", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			ctrl := NewController(testEndpoint(t, "http://admin:7001"), rec)

			out := tt.call(ctrl, context.Background(), Target{Name: "myApp", ArtifactPath: artifact})

			assert.True(t, out.Changed)
			assert.Equal(t, "myApp", out.Entity)
			assert.Equal(t, Kind, out.Kind)
			assert.Equal(t, tt.wantState, out.State)
			assert.Nil(t, out.Error)

			require.Equal(t, 1, rec.calls())
			req := rec.requests[0]
			assert.Equal(t,
				"http://admin:7001/management/weblogic/latest/domainRuntime/deploymentManager/appDeployments/myApp/"+tt.wantAction,
				req.URL)
			assert.Equal(t, tt.wantAction, req.Op)
			assert.Equal(t, "weblogic", req.Credentials.Username)
			if tt.wantPayload {
				require.NotNil(t, req.Payload)
				assert.Equal(t, artifact, req.Payload.Path)
			} else {
				assert.Nil(t, req.Payload)
			}
		})
	}
}

func TestController_MissingArtifactMakesNoCalls(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		call func(*Controller, context.Context, Target) outcome.Outcome
		path string
	}{
		{"deploy nonexistent", (*Controller).Deploy, filepath.Join(dir, "missing.war")},
		{"update nonexistent", (*Controller).Update, filepath.Join(dir, "missing.war")},
		{"deploy empty path", (*Controller).Deploy, ""},
		{"update directory", (*Controller).Update, dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			ctrl := NewController(testEndpoint(t, "http://admin:7001"), rec)

			out := tt.call(ctrl, context.Background(), Target{Name: "myApp", ArtifactPath: tt.path})

			assert.False(t, out.Changed)
			assert.Equal(t, outcome.StateFailed, out.State)
			require.NotNil(t, out.Error)
			assert.Equal(t, apperrors.ErrCodePrecondition, out.Error.Code)

			var pe *apperrors.PreconditionError
			require.True(t, errors.As(out.Err(), &pe))
			assert.Equal(t, "myApp", pe.Entity)
			assert.Equal(t, "artifact", pe.Field)

			assert.Zero(t, rec.calls(), "no request may be issued on a precondition failure")
		})
	}
}

func TestController_UndeployIgnoresArtifact(t *testing.T) {
	rec := &recorder{}
	ctrl := NewController(testEndpoint(t, "http://admin:7001"), rec)

	out := ctrl.Undeploy(context.Background(), Target{Name: "myApp", ArtifactPath: "/does/not/exist.war"})

	assert.True(t, out.Changed)
	assert.Equal(t, 1, rec.calls())
}

func TestController_UndeployTwiceIsChangedBothTimes(t *testing.T) {
	rec := &recorder{}
	ctrl := NewController(testEndpoint(t, "http://admin:7001"), rec)

	first := ctrl.Undeploy(context.Background(), Target{Name: "myApp"})
	second := ctrl.Undeploy(context.Background(), Target{Name: "myApp"})

	assert.True(t, first.Changed)
	assert.True(t, second.Changed)
	assert.Equal(t, "undeployed", second.State)
	assert.Equal(t, 2, rec.calls())
}

func TestController_TransportErrorSurfacedUnmodified(t *testing.T) {
	terr := &apperrors.TransportError{
		Op:     "undeploy",
		URL:    "http://admin:7001/x",
		Status: http.StatusNotFound,
		Body:   `{"detail":"no such application"}`,
	}
	rec := &recorder{err: terr}
	ctrl := NewController(testEndpoint(t, "http://admin:7001"), rec)

	out := ctrl.Undeploy(context.Background(), Target{Name: "myApp"})

	assert.False(t, out.Changed)
	assert.Same(t, terr, out.Err())
	require.NotNil(t, out.Error)
	assert.Equal(t, http.StatusNotFound, out.Error.Status)
	assert.Equal(t, "undeploy", out.Error.Operation)
	assert.Equal(t, 1, rec.calls())
}

func TestController_EmptyNameRejected(t *testing.T) {
	rec := &recorder{}
	ctrl := NewController(testEndpoint(t, "http://admin:7001"), rec)

	out := ctrl.Undeploy(context.Background(), Target{})

	assert.False(t, out.Changed)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, out.Error.Code)
	assert.Zero(t, rec.calls())
}

func TestController_UploadUsesBaseFilename(t *testing.T) {
	artifact := writeArtifact(t, "inventory.ear")

	var (
		mu    sync.Mutex
		seen  []string
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mr, err := r.MultipartReader()
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		part, err := mr.NextPart()
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = io.Copy(io.Discard, part)

		mu.Lock()
		seen = append(seen, part.FormName()+"="+part.FileName())
		paths = append(paths, r.URL.Path)
		mu.Unlock()

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	ctrl := NewController(testEndpoint(t, srv.URL), transport.NewHTTPClient())
	target := Target{Name: "inventory", ArtifactPath: artifact}

	require.True(t, ctrl.Deploy(context.Background(), target).Changed)
	require.True(t, ctrl.Update(context.Background(), target).Changed)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"deployment=inventory.ear", "deployment=inventory.ear"}, seen)
	assert.Equal(t, []string{
		"/management/weblogic/latest/domainRuntime/deploymentManager/appDeployments/inventory/deploy",
		"/management/weblogic/latest/domainRuntime/deploymentManager/appDeployments/inventory/redeploy",
	}, paths)
}

func TestController_CancelledContext(t *testing.T) {
	rec := &recorder{err: &apperrors.CancelledError{Op: "undeploy", Cause: context.Canceled}}
	ctrl := NewController(testEndpoint(t, "http://admin:7001"), rec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := ctrl.Undeploy(ctx, Target{Name: "myApp"})
	assert.Equal(t, apperrors.ErrCodeCancelled, out.Error.Code)
}
