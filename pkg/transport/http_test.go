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
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
)

var testCreds = Credentials{Username: "weblogic", Password: "welcome1"}

func TestNewHTTPClient_Defaults(t *testing.T) {
	c := NewHTTPClient()

	assert.Equal(t, DefaultUserAgent, c.UserAgent)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, 10*time.Minute, c.UploadTimeout)
	assert.False(t, c.InsecureSkipVerify)
	require.NotNil(t, c.Client)
	assert.Nil(t, c.limiter)

	tr, ok := c.Client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, uint16(0x0303), tr.TLSClientConfig.MinVersion)
}

func TestNewHTTPClient_WithOptions(t *testing.T) {
	c := NewHTTPClient(
		WithUserAgent("custom/2.0"),
		WithRequestTimeout(5*time.Second),
		WithUploadTimeout(time.Minute),
		WithInsecureSkipVerify(true),
		WithRateLimit(10, 0),
	)

	assert.Equal(t, "custom/2.0", c.UserAgent)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
	assert.Equal(t, time.Minute, c.UploadTimeout)
	require.NotNil(t, c.limiter)
	assert.Equal(t, 1, c.limiter.Burst())

	tr, ok := c.Client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.True(t, tr.TLSClientConfig.InsecureSkipVerify)
}

func TestNewHTTPClient_WithCustomClient(t *testing.T) {
	custom := &http.Client{Timeout: time.Second}
	c := NewHTTPClient(WithClient(custom))
	assert.Same(t, custom, c.Client)
}

func TestSend_PostWithBasicAuthAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "weblogic", user)
		assert.Equal(t, "welcome1", pass)

		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "wlsctl", r.Header.Get(RequestedByHeader))
		_, err := uuid.Parse(r.Header.Get(RequestIDHeader))
		assert.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"state":"RUNNING"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient()
	resp, err := c.Send(context.Background(), &Request{Op: "status", URL: srv.URL, Credentials: testCreds})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)

	var body struct {
		State string `json:"state"`
	}
	require.NoError(t, resp.DecodeJSON(&body))
	assert.Equal(t, "RUNNING", body.State)
}

func TestSend_MultipartUsesBaseFilename(t *testing.T) {
	dir := t.TempDir()
	artifact := filepath.Join(dir, "nested", "myApp.war")
	require.NoError(t, os.MkdirAll(filepath.Dir(artifact), 0o755))
	require.NoError(t, os.WriteFile(artifact, []byte("archive-bytes"), 0o600))

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
		assert.Equal(t, "deployment", part.FormName())
		assert.Equal(t, "myApp.war", part.FileName())

		data, err := io.ReadAll(part)
		assert.NoError(t, err)
		assert.Equal(t, "archive-bytes", string(data))

		_, err = mr.NextPart()
		assert.ErrorIs(t, err, io.EOF, "expected exactly one part")

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewHTTPClient()
	resp, err := c.Send(context.Background(), &Request{
		Op:          "deploy",
		URL:         srv.URL,
		Credentials: testCreds,
		Payload:     &FilePayload{Path: artifact},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
}

func TestSend_NonSuccessStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"not found", http.StatusNotFound, `{"detail":"no such app"}`},
		{"unauthorized", http.StatusUnauthorized, ""},
		{"server error", http.StatusInternalServerError, "boom"},
		{"redirect not followed as success", http.StatusNotModified, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewHTTPClient()
			_, err := c.Send(context.Background(), &Request{Op: "undeploy", URL: srv.URL, Credentials: testCreds})
			require.Error(t, err)

			var te *apperrors.TransportError
			require.True(t, errors.As(err, &te), "expected TransportError, got %T", err)
			assert.False(t, te.Network)
			assert.Equal(t, tt.status, te.Status)
			assert.Equal(t, tt.body, te.Body)
			assert.Equal(t, "undeploy", te.Op)
		})
	}
}

func TestSend_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewHTTPClient()
	_, err := c.Send(context.Background(), &Request{Op: "start", URL: url, Credentials: testCreds})

	var te *apperrors.TransportError
	require.True(t, errors.As(err, &te), "expected TransportError, got %T", err)
	assert.True(t, te.Network)
	assert.Equal(t, apperrors.ErrCodeTransport, apperrors.CodeOf(err))
}

func TestSend_RequestTimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewHTTPClient(WithRequestTimeout(50 * time.Millisecond))
	_, err := c.Send(context.Background(), &Request{Op: "status", URL: srv.URL, Credentials: testCreds})

	var te *apperrors.TransportError
	require.True(t, errors.As(err, &te), "expected TransportError, got %T", err)
	assert.True(t, te.Network)
}

func TestSend_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewHTTPClient()
	_, err := c.Send(ctx, &Request{Op: "status", URL: srv.URL, Credentials: testCreds})

	var ce *apperrors.CancelledError
	require.True(t, errors.As(err, &ce), "expected CancelledError, got %T", err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSend_RateLimitWaitCancelled(t *testing.T) {
	c := NewHTTPClient(WithRateLimit(0.001, 1))
	// Drain the single token.
	require.True(t, c.limiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Send(ctx, &Request{Op: "status", URL: "http://127.0.0.1:1", Credentials: testCreds})
	assert.Equal(t, apperrors.ErrCodeCancelled, apperrors.CodeOf(err))
}

func TestSend_MissingPayloadFile(t *testing.T) {
	c := NewHTTPClient()
	_, err := c.Send(context.Background(), &Request{
		Op:          "deploy",
		URL:         "http://127.0.0.1:1",
		Credentials: testCreds,
		Payload:     &FilePayload{Path: filepath.Join(t.TempDir(), "missing.war")},
	})
	assert.Equal(t, apperrors.ErrCodePrecondition, apperrors.CodeOf(err))
}

func TestSend_EmptyURL(t *testing.T) {
	c := NewHTTPClient()
	_, err := c.Send(context.Background(), &Request{Op: "status"})
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestTransportFunc(t *testing.T) {
	var called bool
	var tr Transport = TransportFunc(func(_ context.Context, req *Request) (*Response, error) {
		called = true
		return &Response{Status: http.StatusOK}, nil
	})

	resp, err := tr.Send(context.Background(), &Request{Op: "start"})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, resp.Status)
}
