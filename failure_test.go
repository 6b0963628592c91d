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
	"fmt"
	"strings"
	"testing"

	"dirpx.dev/failure/code"
)

func TestError_Basics(t *testing.T) {
	e := E(code.Unavailable, "db is down",
		WithDetailOption("node", "pg-2"),
	)

	if e.Code != code.Unavailable {
		t.Fatal("code mismatch")
	}
	if e.Details["node"] != "pg-2" {
		t.Fatal("detail missing")
	}
	if got, want := e.Error(), "unavailable: db is down"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if e.ErrorCode() != "unavailable" {
		t.Fatalf("ErrorCode() = %q", e.ErrorCode())
	}
}

func TestError_UnclassifiedRendersMessageOnly(t *testing.T) {
	if got := New("file not found").Error(); got != "file not found" {
		t.Fatalf("Error() = %q, want %q", got, "file not found")
	}
}

func TestError_NilReceiver(t *testing.T) {
	var e *Error
	if got := e.Error(); got != "<nil>" {
		t.Fatalf("nil Error() = %q", got)
	}
	if e.Backtrace() != nil {
		t.Fatal("nil receiver must report no backtrace")
	}
	if got := fmt.Sprintf("%+v", e); got != "<nil>" {
		t.Fatalf("nil %%+v = %q", got)
	}
}

func TestError_Immutability_CopyOnWrite(t *testing.T) {
	e1 := E(code.Invalid, "bad").WithDetail("k1", 1)
	e2 := e1.WithDetail("k2", 2)

	if len(e1.Details) != 1 || len(e2.Details) != 2 {
		t.Fatal("details size mismatch")
	}
	if _, ok := e1.Details["k2"]; ok {
		t.Fatal("original mutated")
	}
	if e1.Backtrace() != e2.Backtrace() {
		t.Fatal("copies must share the original backtrace")
	}
}

func TestError_WithDetails_Merge(t *testing.T) {
	e := E(code.Invalid, "x").WithDetails(map[string]any{"a": 1})
	e2 := e.WithDetails(map[string]any{"b": 2, "a": 3})
	if e.Details["a"] != 1 {
		t.Fatal("original mutated")
	}
	if e2.Details["a"] != 3 || e2.Details["b"] != 2 {
		t.Fatal("merge failed")
	}
	if e.WithDetails(nil) != e {
		t.Fatal("empty merge must return the receiver")
	}
}

func TestError_WithCodeAndMessage(t *testing.T) {
	e := New("x")
	e2 := e.WithCode(code.NotFound).WithMessage("y")
	if e.Code != code.Empty || e.Message != "x" {
		t.Fatal("original mutated")
	}
	if e2.Error() != "not_found: y" {
		t.Fatalf("Error() = %q", e2.Error())
	}
}

func TestError_WithCause_Unwrap(t *testing.T) {
	root := errors.New("root")
	e := E(code.Internal, "x").WithCause(root)
	if !errors.Is(e, root) {
		t.Fatal("errors.Is failed")
	}
	if errors.Unwrap(e) != root || e.Cause() != root {
		t.Fatal("Unwrap failed")
	}
	if e.WithCause(nil) != e {
		t.Fatal("WithCause(nil) must return the receiver")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, code.Internal, "x") != nil {
		t.Fatal("Wrap(nil) must be nil")
	}
	root := errors.New("disk full")
	e := Wrap(root, code.Unavailable, "write failed")
	if !errors.Is(e, root) {
		t.Fatal("errors.Is failed")
	}
	if e.Error() != "unavailable: write failed" {
		t.Fatalf("Error() = %q", e.Error())
	}
}

func TestErrorf(t *testing.T) {
	root := errors.New("eof")
	e := Errorf("read %s: %w", "header", root)
	if e.Error() != "read header: eof" {
		t.Fatalf("Error() = %q", e.Error())
	}
	if e.Cause() != root {
		t.Fatal("wrapped operand must become the cause")
	}
	if Errorf("plain").Cause() != nil {
		t.Fatal("no wrapped operand means no cause")
	}
}

func TestErrorf_MultipleWrapped(t *testing.T) {
	a := errors.New("a")
	b := errors.New("b")
	e := Errorf("both: %w, %w", a, b)
	if e.Error() != "both: a, b" {
		t.Fatalf("Error() = %q", e.Error())
	}
	if e.Cause() == nil {
		t.Fatal("multiple wrapped operands must not drop the cause")
	}
	if !errors.Is(e, a) || !errors.Is(e, b) {
		t.Fatal("errors.Is must reach every wrapped operand")
	}
}

func TestWithCauseOption(t *testing.T) {
	root := errors.New("root")
	e := E(code.Internal, "x", WithCauseOption(root))
	if e.Cause() != root || errors.Unwrap(e) != root {
		t.Fatal("WithCauseOption must set the cause")
	}
}

func TestError_Format(t *testing.T) {
	root := errors.New("connection refused")
	e := Wrap(root, code.Unavailable, "dial")

	if got := fmt.Sprintf("%v", e); got != e.Error() {
		t.Fatalf("%%v = %q", got)
	}
	if got := fmt.Sprintf("%s", e); got != e.Error() {
		t.Fatalf("%%s = %q", got)
	}
	if got := fmt.Sprintf("%q", e); got != `"unavailable: dial"` {
		t.Fatalf("%%q = %q", got)
	}

	verbose := fmt.Sprintf("%+v", e)
	for _, sub := range []string{"unavailable: dial", "caused by: connection refused", "TestError_Format"} {
		if !strings.Contains(verbose, sub) {
			t.Fatalf("%%+v missing %q in %q", sub, verbose)
		}
	}

	gosyntax := fmt.Sprintf("%#v", e)
	if !strings.HasPrefix(gosyntax, `&failure.Error{Code:"unavailable", Message:"dial"`) {
		t.Fatalf("%%#v = %q", gosyntax)
	}
}
