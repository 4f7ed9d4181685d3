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

// Package serializer reads and writes wlsctl documents in JSON, YAML and
// table form.
//
// Writing:
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//	if err := w.Serialize(ctx, report); err != nil {
//		return err
//	}
//
// File output is staged in a temporary file in the target directory and
// renamed over the target on Close, so readers never observe a partially
// written report. Values implementing Tabular render as columns in table
// format; anything else is flattened into FIELD/VALUE rows.
//
// Reading:
//
//	cfg, err := serializer.FromFile[config.File](ctx, "batch.yaml")
//
// FromFile accepts local paths and http(s) URLs; remote files are fetched
// with HttpReader. The format follows the file extension.
package serializer
