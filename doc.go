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

// Package failure provides a rich error type that records a backtrace, and
// helpers to walk cause chains.
//
// *Error renders like any other error but also carries a code, structured
// details, a cause and the call stack captured at construction. Code that
// only speaks the built-in error interface can still consume it; package
// compat adapts failure errors (and any other value) to the minimal error
// surface described by apis.StdError.
//
// Backtrace capture is on by default. Set FAILURE_BACKTRACE=0 or call
// SetBacktrace to disable it.
package failure
