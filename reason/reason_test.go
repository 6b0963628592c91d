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

package reason

import (
	"encoding"
	"strings"
	"testing"

	"dirpx.dev/failure/code"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim+upper", "  not_found  ", "NOT_FOUND"},
		{"dash to underscore", "dependency-failed", "DEPENDENCY_FAILED"},
		{"dot and slash", "quota.exceeded/hard", "QUOTA_EXCEEDED_HARD"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Reason
	}{
		{"canonical", "NOT_FOUND", Reason("NOT_FOUND")},
		{"lower", "rate_limited", Reason("RATE_LIMITED")},
		{"dashes", "already-exists", Reason("ALREADY_EXISTS")},
		{"empty is ok", "", Empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_InvalidFormat(t *testing.T) {
	tests := []string{
		"1BAD",
		"_LEADING",
		"NOT FOUND",
		"NÖT_FOUND",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := Parse(in)
			if err == nil {
				t.Fatalf("Parse(%q) = %q, want error", in, got)
			}
			if got != Empty {
				t.Fatalf("Parse(%q) on error must return Empty, got %q", in, got)
			}
			if err != ErrReasonInvalidFormat {
				t.Fatalf("Parse(%q) error = %v, want ErrReasonInvalidFormat", in, err)
			}
		})
	}
}

func TestParse_InvalidLength(t *testing.T) {
	for _, in := range []string{"AB", strings.Repeat("A", MaxLength+1)} {
		got, err := Parse(in)
		if err != ErrReasonInvalidLength {
			t.Fatalf("Parse(%d chars) = %q, %v, want ErrReasonInvalidLength", len(in), got, err)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Empty); err != nil {
		t.Fatalf("Validate(Empty) unexpected error: %v", err)
	}

	for _, r := range []Reason{"NOT_FOUND", "UNCLASSIFIED", "QUOTA_EXCEEDED"} {
		if err := Validate(r); err != nil {
			t.Fatalf("Validate(%q) unexpected error: %v", r, err)
		}
	}

	for _, r := range []Reason{"not_found", "Not_Found", "9LIVES"} {
		if err := Validate(r); err == nil {
			t.Fatalf("Validate(%q) expected error", r)
		}
	}
}

func TestFromCode(t *testing.T) {
	if got := FromCode(code.Empty); got != Unclassified {
		t.Fatalf("FromCode(Empty) = %q, want %q", got, Unclassified)
	}
	if got := FromCode(code.NotFound); got != "NOT_FOUND" {
		t.Fatalf("FromCode(NotFound) = %q", got)
	}
}

func TestCode_RoundTrip(t *testing.T) {
	for _, c := range []code.Code{code.Internal, code.NotFound, code.DependencyFailed, code.Empty} {
		got, ok := FromCode(c).Code()
		if !ok || got != c {
			t.Fatalf("FromCode(%q).Code() = %q, %v", c, got, ok)
		}
	}

	if c, ok := Empty.Code(); !ok || c != code.Empty {
		t.Fatalf("Empty.Code() = %q, %v", c, ok)
	}
	if _, ok := Reason("X").Code(); ok {
		t.Fatalf("Reason(X).Code() must not be ok")
	}
}

func TestMustParse_Success(t *testing.T) {
	if r := MustParse("timeout"); r != Reason("TIMEOUT") {
		t.Fatalf("MustParse = %q, want %q", r, "TIMEOUT")
	}
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustParse must panic on invalid reason")
		}
	}()
	_ = MustParse("1BAD")
}

func TestMustParse_PanicsOnEmpty(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustParse must panic on empty reason")
		}
	}()
	_ = MustParse("")
}

func TestReason_MarshalText(t *testing.T) {
	text, err := Reason("NOT_FOUND").MarshalText()
	if err != nil {
		t.Fatalf("MarshalText unexpected error: %v", err)
	}
	if string(text) != "NOT_FOUND" {
		t.Fatalf("MarshalText = %q, want %q", string(text), "NOT_FOUND")
	}

	text, err = Empty.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText on empty unexpected error: %v", err)
	}
	if len(text) != 0 {
		t.Fatalf("MarshalText on empty = %q, want empty", string(text))
	}

	if _, err := Reason("not_found").MarshalText(); err == nil {
		t.Fatalf("MarshalText on invalid reason must return error")
	}
}

func TestReason_UnmarshalText(t *testing.T) {
	var r Reason
	if err := r.UnmarshalText([]byte("  precondition-failed  ")); err != nil {
		t.Fatalf("UnmarshalText unexpected error: %v", err)
	}
	if r != Reason("PRECONDITION_FAILED") {
		t.Fatalf("UnmarshalText = %q, want %q", r, "PRECONDITION_FAILED")
	}

	var r2 Reason
	if err := r2.UnmarshalText([]byte("   ")); err != nil {
		t.Fatalf("UnmarshalText(empty) unexpected error: %v", err)
	}
	if r2 != Empty {
		t.Fatalf("UnmarshalText(empty) = %q, want Empty", r2)
	}

	var bad Reason
	if err := bad.UnmarshalText([]byte("bad reason")); err == nil {
		t.Fatalf("UnmarshalText expected error for invalid input")
	}
}

func TestReason_ImplementsTextInterfaces(t *testing.T) {
	var _ encoding.TextMarshaler = (*Reason)(nil)
	var _ encoding.TextUnmarshaler = (*Reason)(nil)
}
