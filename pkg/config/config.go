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

package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"k8s.io/utils/ptr"

	"github.com/NVIDIA/wlsctl/pkg/batch"
	"github.com/NVIDIA/wlsctl/pkg/defaults"
	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
	"github.com/NVIDIA/wlsctl/pkg/lifecycle"
	"github.com/NVIDIA/wlsctl/pkg/serializer"
	"github.com/NVIDIA/wlsctl/pkg/transport"
	"github.com/NVIDIA/wlsctl/pkg/version"
)

// Duration is a time.Duration read from strings such as "1s" or "2m30s".
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	parsed, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(b), err)
	}
	*d = Duration(parsed)
	return nil
}

// Endpoint describes the administration server.
type Endpoint struct {
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	// PasswordEnv names an environment variable holding the password. It
	// is used only when Password is empty.
	PasswordEnv string             `json:"passwordEnv,omitempty" yaml:"passwordEnv,omitempty"`
	APIVersion  version.APIVersion `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Insecure    bool               `json:"insecure,omitempty" yaml:"insecure,omitempty"`
}

// Restart tunes the restart convergence wait. Unset fields keep the
// lifecycle controller defaults.
type Restart struct {
	MaxPolls       *int      `json:"maxPolls,omitempty" yaml:"maxPolls,omitempty"`
	PollInterval   *Duration `json:"pollInterval,omitempty" yaml:"pollInterval,omitempty"`
	ConfirmRunning bool      `json:"confirmRunning,omitempty" yaml:"confirmRunning,omitempty"`
	ConfirmTimeout *Duration `json:"confirmTimeout,omitempty" yaml:"confirmTimeout,omitempty"`
}

// File is a parsed batch file.
type File struct {
	Endpoint    Endpoint        `json:"endpoint" yaml:"endpoint"`
	Restart     Restart         `json:"restart" yaml:"restart"`
	Concurrency *int            `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	Requests    []batch.Request `json:"requests" yaml:"requests"`
}

// Load reads and validates a batch file from a local path or http(s) URL.
func Load(ctx context.Context, path string) (*File, error) {
	f, err := serializer.FromFile[File](ctx, path, serializer.WithStrict(true))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to load batch file %q", path), err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks the tuning values and every request.
func (f *File) Validate() error {
	if f.Restart.MaxPolls != nil && *f.Restart.MaxPolls < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "restart.maxPolls must be at least 1")
	}
	if f.Restart.PollInterval != nil && *f.Restart.PollInterval <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "restart.pollInterval must be positive")
	}
	if f.Restart.ConfirmTimeout != nil && *f.Restart.ConfirmTimeout <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "restart.confirmTimeout must be positive")
	}
	if f.Concurrency != nil && *f.Concurrency < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "concurrency must be at least 1")
	}
	_, err := batch.Validate(f.Requests)
	return err
}

// Items returns the validated requests.
func (f *File) Items() ([]batch.Item, error) {
	return batch.Validate(f.Requests)
}

// LifecycleOptions converts the restart section into controller options.
func (f *File) LifecycleOptions() []lifecycle.Option {
	opts := []lifecycle.Option{
		lifecycle.WithMaxPolls(ptr.Deref(f.Restart.MaxPolls, defaults.MaxShutdownPolls)),
		lifecycle.WithPollInterval(time.Duration(
			ptr.Deref(f.Restart.PollInterval, Duration(defaults.ShutdownPollInterval)))),
	}
	if f.Restart.ConfirmRunning {
		opts = append(opts, lifecycle.WithConfirmRunning(time.Duration(
			ptr.Deref(f.Restart.ConfirmTimeout, Duration(defaults.ConfirmRunningTimeout)))))
	}
	return opts
}

// BatchConcurrency returns the configured concurrency or the default.
func (f *File) BatchConcurrency() int {
	return ptr.Deref(f.Concurrency, defaults.BatchConcurrency)
}

// Override replaces endpoint fields with the non-empty fields of o.
func (e Endpoint) Override(o Endpoint) Endpoint {
	if o.URL != "" {
		e.URL = o.URL
	}
	if o.Username != "" {
		e.Username = o.Username
	}
	if o.Password != "" {
		e.Password = o.Password
	}
	if o.PasswordEnv != "" {
		e.PasswordEnv = o.PasswordEnv
	}
	if !o.APIVersion.IsLatest() {
		e.APIVersion = o.APIVersion
	}
	e.Insecure = e.Insecure || o.Insecure
	return e
}

// Build resolves the password and returns a transport endpoint. lookup
// defaults to os.Getenv.
func (e Endpoint) Build(lookup func(string) string) (*transport.Endpoint, error) {
	if lookup == nil {
		lookup = os.Getenv
	}
	password := e.Password
	if password == "" && e.PasswordEnv != "" {
		password = lookup(e.PasswordEnv)
	}
	return transport.NewEndpoint(e.URL, transport.Credentials{
		Username: e.Username,
		Password: password,
	}, e.APIVersion)
}
