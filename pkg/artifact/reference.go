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
	"fmt"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/NVIDIA/wlsctl/pkg/errors"
)

// URIScheme is the URI scheme for OCI registry artifacts.
const URIScheme = "oci://"

// DefaultTag is pulled when a reference names neither a tag nor a digest.
const DefaultTag = "latest"

// Reference is a parsed artifact source, either an OCI registry reference
// or a local file path.
type Reference struct {
	// IsOCI indicates whether this is an OCI registry reference.
	IsOCI bool
	// Registry is the OCI registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the repository path (e.g., "apps/inventory").
	Repository string
	// Tag is the tag, empty when Digest is set.
	Tag string
	// Digest pins the manifest (e.g., "sha256:...").
	Digest string
	// LocalPath is the local file path for non-OCI sources.
	LocalPath string
}

// IsOCIReference reports whether s uses the oci:// scheme.
func IsOCIReference(s string) bool {
	return strings.HasPrefix(s, URIScheme)
}

// ParseReference parses an artifact source. Anything without the oci://
// prefix is a local path.
func ParseReference(s string) (*Reference, error) {
	if !IsOCIReference(s) {
		return &Reference{LocalPath: s}, nil
	}

	ref, err := reference.ParseNormalizedNamed(strings.TrimPrefix(s, URIScheme))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid OCI reference", err)
	}

	r := &Reference{
		IsOCI:      true,
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
	}
	if digested, ok := ref.(reference.Digested); ok {
		r.Digest = digested.Digest().String()
	} else if tagged, ok := ref.(reference.Tagged); ok {
		r.Tag = tagged.Tag()
	}

	if err := ValidateRegistryReference(r.Registry, r.Repository); err != nil {
		return nil, err
	}
	return r, nil
}

// ValidateRegistryReference checks that registry and repository form a
// valid image name. A leading http:// or https:// on registry is ignored.
func ValidateRegistryReference(registry, repository string) error {
	name := fmt.Sprintf("%s/%s", stripProtocol(registry), repository)
	named, err := reference.ParseNormalizedNamed(name)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid registry reference %q", name), err)
	}
	if _, ok := named.(reference.Tagged); ok {
		return apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("repository %q must not include a tag", repository))
	}
	if _, ok := named.(reference.Digested); ok {
		return apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("repository %q must not include a digest", repository))
	}
	return nil
}

// Selector returns the tag or digest to resolve, applying DefaultTag.
func (r *Reference) Selector() string {
	switch {
	case r.Digest != "":
		return r.Digest
	case r.Tag != "":
		return r.Tag
	default:
		return DefaultTag
	}
}

// Repo returns "registry/repository".
func (r *Reference) Repo() string {
	return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
}

// String returns the full reference string, or the local path.
func (r *Reference) String() string {
	if !r.IsOCI {
		return r.LocalPath
	}
	switch {
	case r.Digest != "":
		return fmt.Sprintf("%s%s@%s", URIScheme, r.Repo(), r.Digest)
	case r.Tag != "":
		return fmt.Sprintf("%s%s:%s", URIScheme, r.Repo(), r.Tag)
	default:
		return URIScheme + r.Repo()
	}
}

// stripProtocol removes http:// or https:// prefix from a registry URL.
func stripProtocol(registry string) string {
	registry = strings.TrimPrefix(registry, "https://")
	registry = strings.TrimPrefix(registry, "http://")
	return registry
}
