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
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content"
	"oras.land/oras-go/v2/content/memory"

	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
)

// publish stores an artifact with one layer per file under tag.
func publish(t *testing.T, store *memory.Store, tag string, files map[string]string) ociv1.Descriptor {
	t.Helper()
	ctx := context.Background()

	var layers []ociv1.Descriptor
	for name, data := range files {
		layer := content.NewDescriptorFromBytes("application/zip", []byte(data))
		layer.Annotations = map[string]string{ociv1.AnnotationTitle: name}
		require.NoError(t, store.Push(ctx, layer, bytes.NewReader([]byte(data))))
		layers = append(layers, layer)
	}

	manifest, err := oras.PackManifest(ctx, store, oras.PackManifestVersion1_1, ArtifactType,
		oras.PackManifestOptions{Layers: layers})
	require.NoError(t, err)
	require.NoError(t, store.Tag(ctx, manifest, tag))
	return manifest
}

func memoryResolver(t *testing.T, store *memory.Store) *Resolver {
	return NewResolver(
		WithTempDir(t.TempDir()),
		WithTargetFunc(func(*Reference) (oras.ReadOnlyTarget, error) { return store, nil }),
	)
}

func TestResolve_LocalPathPassesThrough(t *testing.T) {
	r := NewResolver()
	a, err := r.Resolve(context.Background(), "/builds/myApp.war")
	require.NoError(t, err)
	assert.Equal(t, "/builds/myApp.war", a.Path)
	assert.Empty(t, a.Digest)
	assert.NoError(t, a.Close())
}

func TestResolve_PullsSingleFile(t *testing.T) {
	store := memory.New()
	manifest := publish(t, store, "1.4.2", map[string]string{"inventory.war": "PK-archive"})

	r := memoryResolver(t, store)
	a, err := r.Resolve(context.Background(), "oci://registry.example.com/apps/inventory:1.4.2")
	require.NoError(t, err)

	assert.Equal(t, "inventory.war", filepath.Base(a.Path))
	assert.Equal(t, manifest.Digest.String(), a.Digest)
	assert.Equal(t, "oci://registry.example.com/apps/inventory:1.4.2", a.Source)

	data, err := os.ReadFile(a.Path)
	require.NoError(t, err)
	assert.Equal(t, "PK-archive", string(data))

	dir := filepath.Dir(a.Path)
	require.NoError(t, a.Close())
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "temp directory should be removed")
	assert.NoError(t, a.Close())
}

func TestResolve_RejectsMultipleFiles(t *testing.T) {
	store := memory.New()
	publish(t, store, "2.0", map[string]string{"a.war": "a", "b.war": "b"})

	parent := t.TempDir()
	r := NewResolver(
		WithTempDir(parent),
		WithTargetFunc(func(*Reference) (oras.ReadOnlyTarget, error) { return store, nil }),
	)
	_, err := r.Resolve(context.Background(), "oci://registry.example.com/apps/inventory:2.0")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))

	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed pulls must not leave temp directories")
}

func TestResolve_UnknownTag(t *testing.T) {
	store := memory.New()
	r := memoryResolver(t, store)

	_, err := r.Resolve(context.Background(), "oci://registry.example.com/apps/inventory:missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestResolve_TargetError(t *testing.T) {
	r := NewResolver(WithTargetFunc(func(*Reference) (oras.ReadOnlyTarget, error) {
		return nil, errors.New("no route to registry")
	}))

	_, err := r.Resolve(context.Background(), "oci://registry.example.com/apps/inventory:1.0")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.CodeOf(err))
}

func TestResolve_InvalidReference(t *testing.T) {
	_, err := NewResolver().Resolve(context.Background(), "oci://Bad Ref")
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestNewResolver_Options(t *testing.T) {
	r := NewResolver(WithPlainHTTP(true), WithInsecureTLS(true), WithTimeout(0))
	assert.True(t, r.PlainHTTP)
	assert.True(t, r.InsecureTLS)
	assert.Zero(t, r.Timeout)
	assert.NotNil(t, r.target)

	target, err := r.target(&Reference{IsOCI: true, Registry: "localhost:5000", Repository: "apps/inventory"})
	require.NoError(t, err)
	assert.NotNil(t, target)
}

func TestResolve_DownloadsHTTPArtifact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/releases/inventory.war" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("PK-archive"))
	}))
	defer srv.Close()

	r := NewResolver(WithTempDir(t.TempDir()))

	a, err := r.Resolve(context.Background(), srv.URL+"/releases/inventory.war")
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "inventory.war", filepath.Base(a.Path))
	data, err := os.ReadFile(a.Path)
	require.NoError(t, err)
	assert.Equal(t, "PK-archive", string(data))

	_, err = r.Resolve(context.Background(), srv.URL+"/releases/missing.war")
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.CodeOf(err))

	_, err = r.Resolve(context.Background(), srv.URL+"/")
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}
