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

package artifact

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	"github.com/NVIDIA/wlsctl/pkg/defaults"
	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
	"github.com/NVIDIA/wlsctl/pkg/serializer"
)

// ArtifactType is the artifact type for deployable archives pushed for
// wlsctl. Pulls accept any artifact type.
const ArtifactType = "application/vnd.nvidia.wlsctl.deployment"

// TargetFunc opens the source repository of a reference.
type TargetFunc func(ref *Reference) (oras.ReadOnlyTarget, error)

// Option is a functional option for configuring Resolver instances.
type Option func(*Resolver)

// Resolver turns artifact sources into local files.
type Resolver struct {
	PlainHTTP   bool
	InsecureTLS bool
	TempDir     string
	Timeout     time.Duration

	target TargetFunc
}

// WithPlainHTTP uses HTTP instead of HTTPS for registry connections.
func WithPlainHTTP(plain bool) Option {
	return func(r *Resolver) {
		r.PlainHTTP = plain
	}
}

// WithInsecureTLS skips registry TLS certificate verification.
func WithInsecureTLS(insecure bool) Option {
	return func(r *Resolver) {
		r.InsecureTLS = insecure
	}
}

// WithTempDir sets the parent of per-pull temporary directories.
func WithTempDir(dir string) Option {
	return func(r *Resolver) {
		r.TempDir = dir
	}
}

// WithTimeout bounds each pull.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		r.Timeout = timeout
	}
}

// WithTargetFunc replaces the remote repository, e.g. with an in-memory
// store.
func WithTargetFunc(fn TargetFunc) Option {
	return func(r *Resolver) {
		r.target = fn
	}
}

// NewResolver creates a Resolver pulling from remote registries.
func NewResolver(options ...Option) *Resolver {
	r := &Resolver{Timeout: defaults.ArtifactPullTimeout}
	for _, opt := range options {
		opt(r)
	}
	if r.target == nil {
		r.target = r.remoteTarget
	}
	return r
}

// Artifact is a resolved local file. Close removes anything the pull created.
type Artifact struct {
	// Path is the local file to upload.
	Path string
	// Source is the reference the file was resolved from.
	Source string
	// Digest is the pulled manifest digest, empty for local paths.
	Digest string

	cleanup func() error
}

// Close releases the artifact's temporary files. It is safe to call more
// than once.
func (a *Artifact) Close() error {
	if a == nil || a.cleanup == nil {
		return nil
	}
	err := a.cleanup()
	a.cleanup = nil
	return err
}

// Resolve returns the local file for src, pulling OCI references.
func (r *Resolver) Resolve(ctx context.Context, src string) (*Artifact, error) {
	ref, err := ParseReference(src)
	if err != nil {
		return nil, err
	}
	switch {
	case ref.IsOCI:
		return r.pull(ctx, ref)
	case isHTTP(src):
		return r.download(ctx, src)
	default:
		return &Artifact{Path: ref.LocalPath, Source: src}, nil
	}
}

func isHTTP(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// download fetches an http(s) artifact into a temporary directory, keeping
// the last path segment as the file name.
func (r *Resolver) download(ctx context.Context, src string) (*Artifact, error) {
	u, err := url.Parse(src)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid artifact URL", err)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("artifact URL %q has no file name", src))
	}

	dir, err := os.MkdirTemp(r.TempDir, "wlsctl-artifact-*")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create temp directory", err)
	}
	cleanup := func() error { return os.RemoveAll(dir) }

	reader := serializer.NewHttpReader(
		serializer.WithTotalTimeout(r.Timeout),
		serializer.WithInsecureSkipVerify(r.InsecureTLS),
	)
	target := filepath.Join(dir, name)
	if err := reader.DownloadWithContext(ctx, src, target); err != nil {
		_ = cleanup()
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to download artifact", err)
	}

	slog.Info("artifact downloaded", "url", u.Redacted(), "file", name)
	return &Artifact{Path: target, Source: src, cleanup: cleanup}, nil
}

func (r *Resolver) pull(ctx context.Context, ref *Reference) (*Artifact, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	repo, err := r.target(ref)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to initialize remote repository", err)
	}

	dir, err := os.MkdirTemp(r.TempDir, "wlsctl-artifact-*")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create temp directory", err)
	}
	cleanup := func() error { return os.RemoveAll(dir) }

	local, digest, err := pullInto(ctx, repo, ref.Selector(), dir)
	if err != nil {
		_ = cleanup()
		return nil, err
	}

	slog.Info("artifact pulled",
		"reference", ref.String(),
		"digest", digest,
		"file", filepath.Base(local))

	return &Artifact{Path: local, Source: ref.String(), Digest: digest, cleanup: cleanup}, nil
}

// pullInto copies the graph selected by sel into a file store rooted at dir
// and returns the single titled file and the root digest.
func pullInto(ctx context.Context, src oras.ReadOnlyTarget, sel, dir string) (string, string, error) {
	fs, err := file.New(dir)
	if err != nil {
		return "", "", apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create file store", err)
	}
	defer func() { _ = fs.Close() }()

	var (
		mu     sync.Mutex
		titles []string
	)
	root, err := src.Resolve(ctx, sel)
	if err != nil {
		return "", "", apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to resolve artifact %q", sel), err)
	}

	opts := oras.DefaultCopyGraphOptions
	opts.PostCopy = func(_ context.Context, desc ociv1.Descriptor) error {
		if title := desc.Annotations[ociv1.AnnotationTitle]; title != "" {
			mu.Lock()
			titles = append(titles, title)
			mu.Unlock()
		}
		return nil
	}

	if err := oras.CopyGraph(ctx, src, fs, root, opts); err != nil {
		return "", "", apperrors.Wrap(apperrors.ErrCodeInternal,
			fmt.Sprintf("failed to pull artifact %q", sel), err)
	}

	if len(titles) != 1 {
		return "", "", apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("artifact must contain exactly one file, found %d", len(titles)),
			map[string]any{"digest": root.Digest.String(), "files": titles})
	}

	local := filepath.Join(dir, titles[0])
	info, err := os.Stat(local)
	if err != nil {
		return "", "", apperrors.Wrap(apperrors.ErrCodeInternal, "pulled artifact file missing", err)
	}
	if !info.Mode().IsRegular() {
		return "", "", apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("artifact entry %q is not a regular file", titles[0]))
	}

	return local, root.Digest.String(), nil
}

func (r *Resolver) remoteTarget(ref *Reference) (oras.ReadOnlyTarget, error) {
	repo, err := remote.NewRepository(ref.Repo())
	if err != nil {
		return nil, err
	}
	repo.PlainHTTP = r.PlainHTTP
	repo.Client = createAuthClient(r.PlainHTTP, r.InsecureTLS)
	return repo, nil
}

// createAuthClient creates an HTTP client with optional TLS configuration
// and Docker credential support.
func createAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credential store unavailable", "error", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	client := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		client.Credential = credentials.Credential(credStore)
	}
	return client
}
