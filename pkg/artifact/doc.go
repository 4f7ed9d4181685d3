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

// Package artifact resolves the artifact argument of deploy and update
// requests to a local file.
//
// A plain path is returned unchanged; the deployment controller checks it.
// An http(s) URL is downloaded into a temporary directory under its last
// path segment.
// An OCI reference of the form
//
//	oci://registry.example.com/apps/inventory:1.4.2
//	oci://registry.example.com/apps/inventory@sha256:...
//
// is pulled with ORAS into a private temporary directory. The artifact must
// contain exactly one file layer carrying an org.opencontainers.image.title
// annotation; that file becomes the upload, so the multipart filename is
// the title.
//
//	r := artifact.NewResolver(artifact.WithPlainHTTP(true))
//	a, err := r.Resolve(ctx, "oci://localhost:5000/apps/inventory:1.4.2")
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//	ctrl.Deploy(ctx, deployment.Target{Name: "inventory", ArtifactPath: a.Path})
//
// # Authentication
//
// Registry credentials are loaded from the Docker configuration
// (~/.docker/config.json) through the ORAS credentials package.
package artifact
