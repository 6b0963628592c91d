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

package apis

// StdError is the minimal error surface generic host code relies on.
//
// It is what a boxed compat value promises to frameworks that know nothing
// about *failure.Error:
//
//   - Error renders the wrapped value verbatim, with no prefix or suffix;
//   - Description returns a fixed, content-independent summary.
//
// Description exists for consumers that read a static summary field, such
// as legacy reporting hooks. It never carries diagnostic detail; the
// rendering does. Callers that need the immediate cause use errors.Unwrap,
// and callers that need the stack use failure.BacktraceOf.
//
// Implementations MUST be safe to call on values shared between
// goroutines, and MUST NOT panic.
type StdError interface {
	error

	// Description returns a generic summary that does not depend on the
	// error's content.
	Description() string
}

// CodedError is implemented by errors classified with a machine-readable
// code (see package code).
//
// Transport adapters and loggers type-assert against this interface
// instead of importing the concrete error type, so any error that
// exposes a code can take part in status mapping. The code is returned as a
// plain string to keep this package free of dependencies; callers that
// need the typed value use code.Parse.
type CodedError interface {
	error

	// ErrorCode returns the code. It MAY be empty for unclassified errors.
	ErrorCode() string
}

// CausedError exposes the immediate cause of an error.
//
// It mirrors errors.Unwrap for callers that prefer an explicit contract
// (the github.com/pkg/errors convention). Implementations return nil when
// there is no cause.
type CausedError interface {
	error

	// Cause returns the underlying error, or nil.
	Cause() error
}
