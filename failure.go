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
	"fmt"
	"io"

	"dirpx.dev/failure/apis"
	"dirpx.dev/failure/code"
)

// Error is the rich error type of this module.
//
// On top of what the built-in error interface offers it carries:
//   - Code: machine-readable classification (may be empty);
//   - Message: human-oriented description;
//   - Details: arbitrary key/value payload for logs and API bodies;
//   - a cause: the wrapped underlying error, reached through Cause/Unwrap;
//   - a Backtrace captured when the error was constructed.
//
// All WithX helpers return a shallow copy that shares the original
// backtrace, so an Error can be shared and refined in a functional style.
type Error struct {
	// Code classifies the error, e.g. "not_found". Empty means
	// unclassified and renders without a prefix.
	Code code.Code

	// Message is the human-readable explanation.
	Message string

	// Details is treated as immutable: WithDetail/WithDetails copy it.
	Details map[string]any

	// cause is set by Wrap, Errorf, WithCause and WithCauseOption.
	cause error

	backtrace *Backtrace
}

var (
	_ Fail             = (*Error)(nil)
	_ apis.CodedError  = (*Error)(nil)
	_ apis.CausedError = (*Error)(nil)
	_ fmt.Formatter    = (*Error)(nil)
)

// E builds an Error with a code and message and applies opts in order.
//
//	return failure.E(code.Unavailable, "storage is down",
//	    failure.WithDetailOption("host", "db:5432"),
//	    failure.WithCauseOption(err),
//	)
func E(c code.Code, msg string, opts ...Option) *Error {
	return build(c, msg, nil, opts)
}

// New builds an unclassified Error. Its rendering is exactly msg.
func New(msg string) *Error {
	return build(code.Empty, msg, nil, nil)
}

// Errorf formats the message like fmt.Errorf.
//
// A single %w operand becomes the cause. With several %w operands the
// formatted error itself is kept as the cause, so errors.Is and errors.As
// still reach every operand through its Unwrap() []error.
func Errorf(format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)
	var cause error
	switch w := err.(type) {
	case interface{ Unwrap() error }:
		cause = w.Unwrap()
	case interface{ Unwrap() []error }:
		cause = err
	}
	return build(code.Empty, err.Error(), cause, nil)
}

// Wrap attaches err as the cause of a new Error. Wrap returns nil when err
// is nil, so it can be used directly on a return path.
func Wrap(err error, c code.Code, msg string) *Error {
	if err == nil {
		return nil
	}
	return build(c, msg, err, nil)
}

// build must be called directly from an exported constructor so that the
// backtrace starts at the constructor's caller.
func build(c code.Code, msg string, cause error, opts []Option) *Error {
	e := &Error{
		Code:      c,
		Message:   msg,
		cause:     cause,
		backtrace: captureBacktrace(2),
	}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error implements the built-in error interface.
//
// The format is "<message>" for unclassified errors and
// "<code>: <message>" otherwise.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Code == code.Empty {
		return e.Message
	}
	return string(e.Code) + ": " + e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Cause returns the underlying cause (pkg/errors convention).
func (e *Error) Cause() error { return e.Unwrap() }

// ErrorCode implements apis.CodedError.
func (e *Error) ErrorCode() string { return string(e.Code) }

// Backtrace returns the stack captured at construction. It is never nil
// for a non-nil Error; it is empty when capture was disabled.
func (e *Error) Backtrace() *Backtrace {
	if e == nil {
		return nil
	}
	if e.backtrace == nil {
		return noBacktrace
	}
	return e.backtrace
}

// Format implements fmt.Formatter.
//
//	%s, %v  the rendering
//	%q      the quoted rendering
//	%+v     the rendering, the cause chain and the backtrace
//	%#v     a Go-syntax summary
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		switch {
		case s.Flag('+'):
			_, _ = io.WriteString(s, e.Error())
			if e == nil {
				return
			}
			for _, c := range Causes(e.cause) {
				_, _ = fmt.Fprintf(s, "\ncaused by: %s", c.Error())
			}
			if bt := e.Backtrace(); !bt.IsEmpty() {
				_, _ = io.WriteString(s, "\n")
				_, _ = io.WriteString(s, bt.String())
			}
			return
		case s.Flag('#'):
			if e == nil {
				_, _ = io.WriteString(s, "(*failure.Error)(nil)")
				return
			}
			_, _ = fmt.Fprintf(s, "&failure.Error{Code:%q, Message:%q, Details:%#v, Cause:%#v}",
				string(e.Code), e.Message, e.Details, e.cause)
			return
		}
		_, _ = io.WriteString(s, e.Error())
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	default:
		_, _ = fmt.Fprintf(s, "%%!%c(*failure.Error=%s)", verb, e.Error())
	}
}

// WithCode returns a copy of e with the given Code.
func (e *Error) WithCode(c code.Code) *Error {
	cp := *e
	cp.Code = c
	return &cp
}

// WithMessage returns a copy of e with a replaced message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithDetail returns a copy of e with one extra key/value in Details.
func (e *Error) WithDetail(k string, v any) *Error {
	return e.WithDetails(map[string]any{k: v})
}

// WithDetails returns a copy of e with kv merged into Details; kv wins on
// conflicts. The original map is never written to.
func (e *Error) WithDetails(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	m := make(map[string]any, len(cp.Details)+len(kv))
	for k, v := range cp.Details {
		m[k] = v
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Details = m
	return &cp
}

// WithCause returns a copy of e with err attached as the cause. A nil err
// returns e unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.cause = err
	return &cp
}
