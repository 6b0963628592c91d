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
	"cmp"
	"fmt"

	"dirpx.dev/failure"
)

// Compat wraps a single error value of type E.
//
// Compat is comparable whenever E is, and two Compat values are equal iff
// their wrapped values are. Thread-safety is exactly that of E.
type Compat[E any] struct {
	err E
}

var (
	_ fmt.Stringer       = Compat[*failure.Error]{}
	_ fmt.Formatter      = Compat[*failure.Error]{}
	_ failure.Backtracer = Compat[*failure.Error]{}
)

// New wraps err. There are no constraints on E.
func New[E any](err E) Compat[E] {
	return Compat[E]{err: err}
}

// Into returns the wrapped value.
func (c Compat[E]) Into() E {
	return c.err
}

// Ref returns a view of the wrapped value without copying it out.
func (c *Compat[E]) Ref() *E {
	return &c.err
}

// String renders the wrapped value exactly as fmt renders E.
func (c Compat[E]) String() string {
	return fmt.Sprint(any(c.err))
}

// Format forwards the verb and its flags to the wrapped value, so every
// fmt rendering of a Compat matches that of E, debug forms included.
func (c Compat[E]) Format(s fmt.State, verb rune) {
	_, _ = fmt.Fprintf(s, fmt.FormatString(s, verb), any(c.err))
}

// Backtrace returns the call stack captured by the wrapped value when E is
// *failure.Error; it is the very snapshot the wrapped error reports. For
// any other E there is no backtrace and the result is nil. The check is on
// E itself: a Compat[error] holding a *failure.Error reports nil.
func (c Compat[E]) Backtrace() *failure.Backtrace {
	if p, ok := any(&c.err).(**failure.Error); ok {
		return (*p).Backtrace()
	}
	return nil
}

// Equal reports whether a and b wrap equal values.
func Equal[E comparable](a, b Compat[E]) bool {
	return a.err == b.err
}

// Compare orders a and b by their wrapped values.
func Compare[E cmp.Ordered](a, b Compat[E]) int {
	return cmp.Compare(a.err, b.err)
}
