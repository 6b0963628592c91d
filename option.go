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

package failure

import "dirpx.dev/failure/code"

// Option transforms an Error during construction with E.
type Option func(*Error) *Error

// WithCodeOption sets the code.
func WithCodeOption(c code.Code) Option {
	return func(e *Error) *Error { return e.WithCode(c) }
}

// WithDetailOption adds a single detail key/value.
func WithDetailOption(k string, v any) Option {
	return func(e *Error) *Error { return e.WithDetail(k, v) }
}

// WithDetailsOption merges multiple detail key/values.
func WithDetailsOption(kv map[string]any) Option {
	return func(e *Error) *Error { return e.WithDetails(kv) }
}

// WithCauseOption attaches a cause.
func WithCauseOption(err error) Option {
	return func(e *Error) *Error { return e.WithCause(err) }
}
