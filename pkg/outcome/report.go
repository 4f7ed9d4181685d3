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

package outcome

import (
	"fmt"
	"strconv"
	"time"

	"github.com/NVIDIA/wlsctl/pkg/header"
)

// Document is the serialized form of a single outcome.
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	Outcome Outcome `json:"outcome" yaml:"outcome"`
}

// NewDocument wraps o with an Outcome header.
func NewDocument(o Outcome, version string) *Document {
	d := &Document{Outcome: o}
	d.Init(header.KindOutcome, version)
	return d
}

// BatchReport aggregates the outcomes of a batch run in request order.
type BatchReport struct {
	header.Header `json:",inline" yaml:",inline"`

	// Outcomes contains one entry per request, in input order.
	Outcomes []Outcome `json:"outcomes" yaml:"outcomes"`

	// TotalDuration is the wall time of the whole batch.
	TotalDuration time.Duration `json:"total_duration" yaml:"total_duration"`
}

// NewBatchReport wraps outcomes with a BatchReport header.
func NewBatchReport(outcomes []Outcome, elapsed time.Duration, version string) *BatchReport {
	r := &BatchReport{Outcomes: outcomes, TotalDuration: elapsed}
	r.Init(header.KindBatchReport, version)
	return r
}

// HasErrors returns true if any outcome failed.
func (r *BatchReport) HasErrors() bool {
	return r.FailureCount() > 0
}

// SuccessCount returns the number of successful outcomes.
func (r *BatchReport) SuccessCount() int {
	count := 0
	for _, o := range r.Outcomes {
		if !o.Failed() {
			count++
		}
	}
	return count
}

// FailureCount returns the number of failed outcomes.
func (r *BatchReport) FailureCount() int {
	return len(r.Outcomes) - r.SuccessCount()
}

// Failed returns the failed outcomes.
func (r *BatchReport) Failed() []Outcome {
	failed := make([]Outcome, 0, r.FailureCount())
	for _, o := range r.Outcomes {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Summary returns a human-readable summary of the batch.
func (r *BatchReport) Summary() string {
	return fmt.Sprintf("Applied %d requests in %v. Success: %d/%d.",
		len(r.Outcomes),
		r.TotalDuration.Round(time.Millisecond),
		r.SuccessCount(),
		len(r.Outcomes),
	)
}

var tableHeader = []string{"KIND", "ENTITY", "CHANGED", "STATE", "ERROR"}

func (o Outcome) row() []string {
	msg := ""
	if o.Error != nil {
		msg = string(o.Error.Code) + ": " + o.Error.Message
	}
	return []string{o.Kind, o.Entity, strconv.FormatBool(o.Changed), o.State, msg}
}

// TableHeader returns the column names for table output.
func (d *Document) TableHeader() []string { return tableHeader }

// TableRows returns the outcome as a single row.
func (d *Document) TableRows() [][]string { return [][]string{d.Outcome.row()} }

// TableHeader returns the column names for table output.
func (r *BatchReport) TableHeader() []string { return tableHeader }

// TableRows returns one row per outcome in request order.
func (r *BatchReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		rows = append(rows, o.row())
	}
	return rows
}
