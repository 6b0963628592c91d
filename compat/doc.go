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

// Package compat adapts arbitrary error values to the minimal error
// surface that generic host code understands.
//
// Compat[E] owns exactly one value of E and adds no behavior of its own:
// it renders exactly as E renders, hands E back through Into, exposes it
// without copying through Ref, and, when E is *failure.Error, reports the
// same backtrace the wrapped error captured.
//
// # Build flag
//
// The conformance to the built-in error interface and apis.StdError
// (Error, Description, Unwrap) and the boxing conversions Box and BoxAny
// are compiled in by default. Building with
//
//	go build -tags failure_nostd
//
// drops them, leaving only construction, Into, Ref, rendering and
// Backtrace. Recognised values:
//
//	(default)      conformance and conversions available
//	failure_nostd  base operations only
package compat
