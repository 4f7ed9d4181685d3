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

package version

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		latest  bool
		wantErr error
	}{
		{in: "", want: "latest", latest: true},
		{in: "latest", want: "latest", latest: true},
		{in: "LATEST", want: "latest", latest: true},
		{in: "12.2.1.4.0", want: "12.2.1.4.0"},
		{in: "v14.1.1", want: "14.1.1"},
		{in: "12", want: "12"},
		{in: "v", wantErr: ErrEmptyVersion},
		{in: "1.2.3.4.5.6", wantErr: ErrTooManyComponents},
		{in: "12..1", wantErr: ErrNonNumeric},
		{in: "twelve", wantErr: ErrNonNumeric},
		{in: "12.-1", wantErr: ErrNegativeComponent},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.in, got.String(), tt.want)
			}
			if got.IsLatest() != tt.latest {
				t.Errorf("Parse(%q).IsLatest() = %v, want %v", tt.in, got.IsLatest(), tt.latest)
			}
		})
	}
}

func TestZeroValueIsLatest(t *testing.T) {
	var v APIVersion
	if !v.IsLatest() || v.String() != Latest || v.Major() != 0 {
		t.Errorf("zero value should be latest, got %q", v.String())
	}
}

func TestMajor(t *testing.T) {
	if got := MustParse("12.2.1.4.0").Major(); got != 12 {
		t.Errorf("Major() = %d, want 12", got)
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustParse("not-a-version")
}

func TestYAMLRoundTrip(t *testing.T) {
	var cfg struct {
		APIVersion APIVersion `yaml:"apiVersion"`
	}
	if err := yaml.Unmarshal([]byte("apiVersion: 12.2.1.4.0\n"), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.APIVersion.String() != "12.2.1.4.0" {
		t.Errorf("got %q", cfg.APIVersion.String())
	}

	if err := yaml.Unmarshal([]byte("apiVersion: x.y\n"), &cfg); err == nil {
		t.Error("expected error for invalid version")
	}
}

// FuzzParse checks that Parse never panics and that successful parses
// round-trip through String.
func FuzzParse(f *testing.F) {
	for _, s := range []string{"", "latest", "12.2.1.4.0", "v1", "1..2", "-1", "1.2.3.4.5.6", "a.b"} {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, s string) {
		v, err := Parse(s)
		if err != nil {
			return
		}
		again, err := Parse(v.String())
		if err != nil {
			t.Fatalf("re-parse of %q failed: %v", v.String(), err)
		}
		if again.String() != v.String() {
			t.Fatalf("round trip mismatch: %q != %q", again.String(), v.String())
		}
	})
}
