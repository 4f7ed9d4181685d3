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

// Package version parses management REST API version path segments.
//
// The management API is addressed as /management/weblogic/{version}/...,
// where version is either the alias "latest" or a dotted release number
// such as "12.2.1.4.0".
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Latest is the alias the management API resolves to its newest version.
const Latest = "latest"

// maxComponents allows release numbers like 14.1.1.0.0.
const maxComponents = 5

// Error types for version parsing failures
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 5 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
	ErrNegativeComponent = errors.New("version component cannot be negative")
)

// APIVersion is a parsed management API version. The zero value is Latest.
type APIVersion struct {
	components []int
}

// String returns the path segment for the version.
func (v APIVersion) String() string {
	if v.IsLatest() {
		return Latest
	}
	parts := make([]string, len(v.components))
	for i, c := range v.components {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ".")
}

// IsLatest reports whether v is the "latest" alias.
func (v APIVersion) IsLatest() bool {
	return len(v.components) == 0
}

// Major returns the first release component, or 0 for Latest.
func (v APIVersion) Major() int {
	if v.IsLatest() {
		return 0
	}
	return v.components[0]
}

// MarshalText implements encoding.TextMarshaler.
func (v APIVersion) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so versions can be read
// directly from YAML and JSON configuration.
func (v *APIVersion) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Parse parses "latest" (case-insensitive, also the empty string) or a
// dotted release number of up to five numeric components. A leading "v" is
// accepted and stripped.
func Parse(s string) (APIVersion, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, Latest) {
		return APIVersion{}, nil
	}

	s = strings.TrimPrefix(s, "v")
	if s == "" {
		return APIVersion{}, ErrEmptyVersion
	}

	parts := strings.Split(s, ".")
	if len(parts) > maxComponents {
		return APIVersion{}, ErrTooManyComponents
	}

	components := make([]int, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return APIVersion{}, fmt.Errorf("%w: empty component", ErrNonNumeric)
		}
		num, err := strconv.Atoi(part)
		if err != nil {
			return APIVersion{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		if num < 0 {
			return APIVersion{}, fmt.Errorf("%w: %d", ErrNegativeComponent, num)
		}
		components = append(components, num)
	}

	return APIVersion{components: components}, nil
}

// MustParse parses a version string and panics if parsing fails.
// Only use this for hardcoded strings or in tests.
func MustParse(s string) APIVersion {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse: %v", err))
	}
	return v
}
