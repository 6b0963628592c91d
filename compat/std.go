//go:build !failure_nostd

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

package compat

import (
	"dirpx.dev/failure"
	"dirpx.dev/failure/apis"
)

// Description is the fixed summary every Compat reports. Detail is only
// available through the rendering.
const Description = "An error has occurred."

var (
	_ apis.StdError = Compat[*failure.Error]{}
	_ apis.StdError = Compat[error]{}
)

// Error renders the wrapped value; it is identical to String.
func (c Compat[E]) Error() string {
	return c.String()
}

// Description implements apis.StdError. It never depends on E.
func (c Compat[E]) Description() string {
	return Description
}

// Unwrap returns the wrapped value when E is an error, so errors.Is and
// errors.As reach the original through a boxed Compat. It returns nil for
// any other E.
func (c Compat[E]) Unwrap() error {
	if err, ok := any(c.err).(error); ok {
		return err
	}
	return nil
}

// Box converts a rich error into a plain error value backed by
// Compat[*failure.Error]. Every non-nil err converts; a nil err yields a
// nil error so Box can sit directly on a return path.
func Box(err *failure.Error) error {
	return BoxAny(err)
}

// BoxAny is Box for any error type. A nil interface value and a nil
// *failure.Error yield nil. Typed nil pointers of other error types are
// boxed as they are; telling them apart would need reflection on E.
func BoxAny[E error](err E) error {
	if isNil(err) {
		return nil
	}
	return New(err)
}

func isNil[E error](err E) bool {
	switch v := any(err).(type) {
	case nil:
		return true
	case *failure.Error:
		return v == nil
	}
	return false
}
