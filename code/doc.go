/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package code defines the machine-readable classification carried by
// failure.Error and the table that projects it onto transport statuses.
//
// A code is short, lowercased and underscore-separated, e.g. "not_found".
// The empty code is allowed on an error and means "unclassified"; Parse and
// Validate reject it.
//
// Every code resolves to a Status (HTTP + gRPC) through a Table. The
// DefaultTable follows common REST and gRPC conventions and can be
// extended per service with Table.With or from YAML through package config.
package code
