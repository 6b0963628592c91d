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

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Backtracer is implemented by errors that can report the call stack
// captured when they were created.
type Backtracer interface {
	Backtrace() *Backtrace
}

// Fail is the full capability set of a rich error: a rendering, an
// immediate cause and a backtrace.
type Fail interface {
	error
	Cause() error
	Backtracer
}

// stackTracer is the github.com/pkg/errors stack contract.
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// causer is the github.com/pkg/errors cause contract.
type causer interface {
	Cause() error
}

// next returns the immediate cause of err, preferring Unwrap and falling
// back to Cause.
func next(err error) error {
	if u := errors.Unwrap(err); u != nil {
		return u
	}
	if c, ok := err.(causer); ok {
		return c.Cause()
	}
	return nil
}

// Causes returns err followed by each successive cause down to the root.
// It follows Unwrap, and Cause for errors that only implement the
// github.com/pkg/errors convention. Multi-errors (Unwrap() []error) end
// the walk. A nil err returns nil.
func Causes(err error) []error {
	var out []error
	for err != nil {
		out = append(out, err)
		err = next(err)
	}
	return out
}

// RootCause returns the last error in the chain of err.
func RootCause(err error) error {
	for {
		n := next(err)
		if n == nil {
			return err
		}
		err = n
	}
}

// BacktraceOf returns the first non-empty backtrace found in the chain of
// err. Errors from github.com/pkg/errors are recognised through their
// StackTrace method. It returns nil when no error in the chain has one.
func BacktraceOf(err error) *Backtrace {
	for _, e := range Causes(err) {
		switch v := e.(type) {
		case Backtracer:
			if bt := v.Backtrace(); !bt.IsEmpty() {
				return bt
			}
		case stackTracer:
			if st := v.StackTrace(); len(st) > 0 {
				return FromStackTrace(st)
			}
		}
	}
	return nil
}

// As returns the first *Error in the chain of err.
func As(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
