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
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"

	"dirpx.dev/failure/code"
)

// Reason is the machine-readable reason carried by google.rpc.ErrorInfo.
//
// Reasons are UPPER_SNAKE_CASE renderings of a code.Code:
//
//   - "NOT_FOUND"
//   - "DEPENDENCY_FAILED"
//   - "UNCLASSIFIED" (the error carried no code)
//
// Every valid code has exactly one reason and the mapping is reversible,
// so a client can recover the code a server reported.
type Reason string

// MinLength and MaxLength bound the length of a canonical reason.
//
// They mirror code.MinLength / code.MaxLength on purpose: a reason is a
// code in another case, so every valid code must produce a valid reason.
const (
	// MinLength is the minimum length of a non-empty reason.
	// The empty string is still allowed and means "no reason provided".
	MinLength = 3

	// MaxLength is the maximum length of a valid reason. The Google error
	// model asks for at most 63 characters; 64 keeps parity with codes.
	MaxLength = 64
)

const (
	// reasonFmt is the pattern every canonical reason matches.
	//
	// Pattern breakdown:
	//
	//	^               start of string;
	//	[A-Z]           the first character is an uppercase ASCII letter;
	//	[A-Z0-9_]{2,63} the rest are uppercase letters, digits or underscore;
	//	$               end of string.
	//
	// Examples that match:
	//
	//	"NOT_FOUND"
	//	"RATE_LIMITED"
	//	"UNCLASSIFIED"
	//
	// Examples that DO NOT match:
	//
	//	"not_found"  (lowercase; Normalize fixes this one)
	//	"_INTERNAL"  (leading underscore)
	//	"404_ERROR"  (digit first)
	//
	// NOTE: the empty string is handled before the pattern is consulted.
	reasonFmt = `^[A-Z][A-Z0-9_]{2,63}$`
)

var (
	// reasonRe is reasonFmt compiled once at init.
	reasonRe = regexp.MustCompile(reasonFmt)
)

var (
	// ErrReasonInvalidFormat is returned when a reason is not UPPER_SNAKE_CASE.
	ErrReasonInvalidFormat = errors.New("failure: invalid reason format")
	// ErrReasonInvalidLength is returned when a reason is too short or too long.
	// Length is checked before format, so "AB" reports this error.
	ErrReasonInvalidLength = errors.New("failure: invalid reason length")
)

var (
	_ encoding.TextMarshaler   = (*Reason)(nil)
	_ encoding.TextUnmarshaler = (*Reason)(nil)
)

// Empty means "no reason provided". ErrorInfo producers should use
// Unclassified instead, since the reason field is required there.
var Empty Reason = ""

// Unclassified is reported for errors without a code.
const Unclassified Reason = "UNCLASSIFIED"

// Normalize takes arbitrary text and brings it closer to the canonical
// reason form.
//
// The transformations are deliberately conservative:
//
//   - trim spaces;
//   - upper-case;
//   - turn "-", "." and "/" into "_", so dotted or path-like names from
//     older producers still map onto one reason.
//
// It does NOT guarantee validity; callers should still call Parse/Validate.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s)
	return strings.NewReplacer("-", "_", ".", "_", "/", "_").Replace(s)
}

// Parse takes user-provided text, normalizes it and validates it.
//
// Parse accepts the empty string and returns Empty without error, which is
// what keeps a reason optional on the decoding side.
func Parse(s string) (Reason, error) {
	s = Normalize(s)
	if s == "" {
		return Empty, nil
	}
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Reason(s), nil
}

// MustParse is the panic-on-error variant of Parse, for package-level var
// blocks.
//
// NOTE: unlike Parse, MustParse rejects the empty string; an empty literal
// there is almost always a mistake.
func MustParse(s string) Reason {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	if r == Empty {
		panic("failure: empty reason in MustParse")
	}
	return r
}

// Validate checks whether r is in canonical form.
//
// Empty is valid here because the field is optional when reading. Producers
// that must fill ErrorInfo.reason should use FromCode, which never returns
// Empty.
func Validate(r Reason) error {
	if r == Empty {
		return nil
	}
	return validate(string(r))
}

// FromCode renders c as the reason sent on the wire.
//
// A valid code always yields a valid reason, since both share the same
// length bounds and character set modulo case. code.Empty maps to
// Unclassified because ErrorInfo.reason is required.
func FromCode(c code.Code) Reason {
	if c == code.Empty {
		return Unclassified
	}
	return Reason(strings.ToUpper(string(c)))
}

// Code maps r back to the code it was produced from.
//
// Empty and Unclassified give code.Empty with ok set. A reason that does not
// name a valid code, for example one written by a foreign service, gives
// ok == false; callers then fall back to the gRPC status code.
func (r Reason) Code() (c code.Code, ok bool) {
	if r == Empty || r == Unclassified {
		return code.Empty, true
	}
	c, err := code.Parse(strings.ToLower(string(r)))
	if err != nil {
		return code.Empty, false
	}
	return c, true
}

// String returns the reason as-is.
func (r Reason) String() string {
	return string(r)
}

// MarshalText implements encoding.TextMarshaler.
func (r Reason) MarshalText() ([]byte, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	if r == Empty {
		return []byte{}, nil
	}
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Whitespace-only input produces Empty.
func (r *Reason) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrReasonInvalidLength
	}
	if !reasonRe.MatchString(s) {
		return ErrReasonInvalidFormat
	}
	return nil
}
