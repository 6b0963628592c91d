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

package code

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Code is the canonical, validated classification of a failure.
//
// It is a named type rather than a bare string so that APIs can say they
// want a classification, and so that raw user input is not mixed up with
// values that went through Parse.
//
// Unlike a transport status, a Code is stable across protocols: the same
// "not_found" is projected to 404 over HTTP and NOT_FOUND over gRPC by a
// Table (see status.go), and to the ErrorInfo reason "NOT_FOUND" by
// package reason.
//
// The zero value, Empty, means "unclassified". It is legal on an error but
// it is not a valid code: Validate rejects it.
type Code string

// MinLength and MaxLength bound the length of a canonical code.
//
// They are exported so validation messages, tests and sibling packages
// (reason mirrors them) can refer to the same numbers.
const (
	// MinLength is the minimum length of a valid code.
	// Three characters keep throwaway identifiers like "e" or "x1" out.
	MinLength = 3

	// MaxLength is the maximum length of a valid code.
	// 64 characters fit descriptive codes such as "dependency_failed"
	// and keep log fields and metric labels bounded.
	MaxLength = 64
)

const (
	// codeFmt is the pattern every canonical code matches.
	//
	// Pattern breakdown:
	//
	//	^               start of string;
	//	[a-z]           the first character is a lowercase ASCII letter;
	//	[a-z0-9_]{2,63} the rest are lowercase letters, digits or underscore;
	//	                together with the first letter that is 3..64 characters;
	//	$               end of string.
	//
	// IMPORTANT: {2,63} encodes MinLength / MaxLength. Change them together.
	codeFmt = `^[a-z][a-z0-9_]{2,63}$`
)

var (
	// codeRe is codeFmt compiled once at init.
	//
	// Valid:
	//   - "internal"
	//   - "not_found"
	//   - "rate_limited"
	//
	// Invalid:
	//   - "NotFound"   (uppercase)
	//   - "not-found"  (dash; Normalize fixes this one)
	//   - "io"         (too short)
	//   - "5xx_error"  (starts with a digit)
	codeRe = regexp.MustCompile(codeFmt)
)

var (
	// ErrCodeInvalid is returned when a value cannot be parsed or validated
	// as a code.
	//
	// Callers can use errors.Is to tell a malformed code apart from other
	// failures, e.g. when loading code overrides from configuration.
	ErrCodeInvalid = errors.New("failure: invalid code")
)

// Code implements the text interfaces so it can appear directly in YAML
// and JSON documents.
var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Empty is the zero code. An error carrying it is unclassified and renders
// without a "code: " prefix. Callers that need a real classification
// should call Validate.
const Empty Code = ""

// Parse takes user-provided text, normalizes it and validates it.
// On success it returns a canonical Code.
func Parse(s string) (Code, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Code(s), nil
}

// MustParse is the panic-on-error variant of Parse, meant for package-level
// var blocks where an invalid literal is a programming error.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize brings arbitrary text closer to the canonical form.
//
// Only obvious, lossless rewrites are applied:
//
//   - surrounding spaces are trimmed;
//   - the value is lowercased;
//   - '-' becomes '_'.
//
// The result is not guaranteed to be valid; Parse validates it.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "-", "_")
}

// Validate reports whether c is canonical. Empty is invalid.
func Validate(c Code) error {
	return validate(string(c))
}

// String returns the code as-is.
func (c Code) String() string { return string(c) }

// MarshalText implements encoding.TextMarshaler.
//
// Only canonical codes marshal, so a document written by this package can
// always be read back.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// The text is trimmed and normalized before validation, so "Not-Found" in a
// config file reads as "not_found".
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func validate(s string) error {
	if !codeRe.MatchString(s) {
		return ErrCodeInvalid
	}
	return nil
}
