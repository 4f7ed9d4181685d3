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
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/wlsctl/pkg/defaults"
	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
)

const (
	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "wlsctl/1.0"

	// RequestedByHeader is required by the management API on modifying
	// requests to guard against cross-site request forgery.
	RequestedByHeader = "X-Requested-By"

	// RequestIDHeader carries a per-request UUID for correlating client logs
	// with the administration server's access log.
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 1 << 20
)

// Option defines a configuration option for HTTPClient.
type Option func(*HTTPClient)

// HTTPClient is the net/http implementation of Transport.
type HTTPClient struct {
	UserAgent           string
	RequestTimeout      time.Duration
	UploadTimeout       time.Duration
	ConnectTimeout      time.Duration
	TLSHandshakeTimeout time.Duration
	InsecureSkipVerify  bool
	Client              *http.Client

	limiter *rate.Limiter
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *HTTPClient) {
		c.UserAgent = userAgent
	}
}

// WithRequestTimeout bounds each request without a payload.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		c.RequestTimeout = timeout
	}
}

// WithUploadTimeout bounds each request that uploads a file.
func WithUploadTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		c.UploadTimeout = timeout
	}
}

// WithConnectTimeout sets the dial timeout.
func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		c.ConnectTimeout = timeout
	}
}

// WithTLSHandshakeTimeout sets the TLS handshake timeout.
func WithTLSHandshakeTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		c.TLSHandshakeTimeout = timeout
	}
}

// WithInsecureSkipVerify disables certificate verification, for
// administration servers with self-signed certificates.
func WithInsecureSkipVerify(skip bool) Option {
	return func(c *HTTPClient) {
		c.InsecureSkipVerify = skip
	}
}

// WithClient replaces the underlying *http.Client. Transport-level options
// are ignored for a supplied client.
func WithClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		c.Client = client
	}
}

// WithRateLimit paces requests client-side. A non-positive rps disables the
// limiter.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewHTTPClient creates an HTTPClient with the specified options.
func NewHTTPClient(options ...Option) *HTTPClient {
	c := &HTTPClient{
		UserAgent:           DefaultUserAgent,
		RequestTimeout:      defaults.HTTPClientTimeout,
		UploadTimeout:       defaults.HTTPUploadTimeout,
		ConnectTimeout:      defaults.HTTPConnectTimeout,
		TLSHandshakeTimeout: defaults.HTTPTLSHandshakeTimeout,
	}

	for _, opt := range options {
		opt(c)
	}

	if c.Client == nil {
		// Per-request deadlines come from the request context so uploads
		// and status calls can use different budgets.
		c.Client = &http.Client{Transport: c.newHTTPTransport()}
	}

	return c
}

func (c *HTTPClient) newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   c.ConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   c.TLSHandshakeTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		MaxIdleConnsPerHost:   2,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: c.InsecureSkipVerify, //nolint:gosec // opt-in for self-signed admin servers
		},
	}
}

// Send performs the request. Non-2xx responses become a TransportError
// carrying the status and a bounded copy of the body.
func (c *HTTPClient) Send(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.URL == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "request URL is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &apperrors.CancelledError{Entity: req.URL, Op: req.Op, Cause: err}
		}
	}

	timeout := c.RequestTimeout
	if req.Payload != nil {
		timeout = c.UploadTimeout
	}
	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	httpReq, err := c.newRequest(reqCtx, req)
	if err != nil {
		return nil, err
	}

	requestID := uuid.New().String()
	httpReq.Header.Set(RequestIDHeader, requestID)

	slog.Debug("sending management request",
		"op", req.Op,
		"method", httpReq.Method,
		"url", req.URL,
		"request_id", requestID,
		"upload", req.Payload != nil)

	start := time.Now()
	resp, err := c.Client.Do(httpReq)
	if err != nil {
		observeRequest(req.Op, "error", start)
		if ctx.Err() != nil {
			return nil, &apperrors.CancelledError{Entity: req.URL, Op: req.Op, Cause: ctx.Err()}
		}
		return nil, &apperrors.TransportError{Op: req.Op, URL: req.URL, Network: true, Cause: err}
	}
	defer resp.Body.Close()

	observeRequest(req.Op, strconv.Itoa(resp.StatusCode), start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, defaults.MaxErrorBodyBytes))
		slog.Debug("management request failed",
			"op", req.Op,
			"status", resp.StatusCode,
			"request_id", requestID)
		return nil, &apperrors.TransportError{
			Op:     req.Op,
			URL:    req.URL,
			Status: resp.StatusCode,
			Body:   string(body),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctx.Err() != nil {
			return nil, &apperrors.CancelledError{Entity: req.URL, Op: req.Op, Cause: ctx.Err()}
		}
		return nil, &apperrors.TransportError{Op: req.Op, URL: req.URL, Network: true, Cause: err}
	}

	return &Response{Status: resp.StatusCode, Body: body}, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, req *Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	var (
		body        io.Reader
		contentType string
	)
	if req.Payload != nil {
		file, err := os.Open(req.Payload.Path)
		if err != nil {
			return nil, &apperrors.PreconditionError{
				Entity:  req.URL,
				Op:      req.Op,
				Field:   "artifact",
				Message: fmt.Sprintf("cannot be opened: %v", err),
			}
		}
		body, contentType = multipartBody(file, req.Payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		if rc, ok := body.(io.Closer); ok {
			_ = rc.Close()
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to create request for url %s", req.URL), err)
	}

	httpReq.SetBasicAuth(req.Credentials.Username, req.Credentials.Password)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestedByHeader, "wlsctl")
	if c.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.UserAgent)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	return httpReq, nil
}

// multipartBody streams file as the single part of a multipart body, so
// large archives are never held in memory. The file is closed when the
// stream ends or the reader side is closed by the HTTP client.
func multipartBody(file *os.File, payload *FilePayload) (io.Reader, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		defer file.Close()

		part, err := mw.CreateFormFile(payload.FieldName(), payload.FileName())
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	return pr, mw.FormDataContentType()
}
