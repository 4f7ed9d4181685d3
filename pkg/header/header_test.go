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

package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindIsValid(t *testing.T) {
	assert.True(t, KindOutcome.IsValid())
	assert.True(t, KindBatchReport.IsValid())
	assert.False(t, Kind("Recipe").IsValid())
	assert.False(t, Kind("").IsValid())
}

func TestInitAt(t *testing.T) {
	at := time.Date(2025, 1, 15, 10, 30, 0, 0, time.FixedZone("X", 3600))

	var h Header
	h.InitAt(KindOutcome, "v1.0.0", at)

	assert.Equal(t, KindOutcome, h.Kind)
	assert.Equal(t, APIVersion, h.APIVersion)
	assert.Equal(t, "2025-01-15T09:30:00Z", h.Metadata["timestamp"])
	assert.Equal(t, "v1.0.0", h.Metadata["version"])
}

func TestInitWithoutVersion(t *testing.T) {
	var h Header
	h.Init(KindBatchReport, "")

	assert.NotContains(t, h.Metadata, "version")
	assert.Contains(t, h.Metadata, "timestamp")
}

func TestSetInitializesMetadata(t *testing.T) {
	var h Header
	h.Set("endpoint", "http://admin:7001")
	assert.Equal(t, "http://admin:7001", h.Metadata["endpoint"])
}
