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
	"net/http"

	"google.golang.org/grpc/codes"
)

// Status is a resolved pair of transport statuses for a single code.
type Status struct {
	HTTP int        // net/http compatible status.
	GRPC codes.Code // gRPC status code.
}

// Fallback is returned for codes a Table knows nothing about, including
// Empty.
var Fallback = Status{HTTP: http.StatusInternalServerError, GRPC: codes.Internal}

var defaults = map[Code]Status{
	// 5xx.
	Internal:         {http.StatusInternalServerError, codes.Internal},
	Unavailable:      {http.StatusServiceUnavailable, codes.Unavailable},
	Overloaded:       {http.StatusServiceUnavailable, codes.Unavailable},
	DependencyFailed: {http.StatusBadGateway, codes.FailedPrecondition},
	Timeout:          {http.StatusGatewayTimeout, codes.DeadlineExceeded},
	// 499 is nginx-only; 408 is the portable choice for canceled.
	Canceled: {http.StatusRequestTimeout, codes.Canceled},

	// 4xx.
	Invalid:            {http.StatusBadRequest, codes.InvalidArgument},
	Missing:            {http.StatusBadRequest, codes.InvalidArgument},
	Unsupported:        {http.StatusBadRequest, codes.Unimplemented},
	NotFound:           {http.StatusNotFound, codes.NotFound},
	Gone:               {http.StatusGone, codes.NotFound},
	AlreadyExists:      {http.StatusConflict, codes.AlreadyExists},
	Conflict:           {http.StatusConflict, codes.Aborted},
	PreconditionFailed: {http.StatusPreconditionFailed, codes.FailedPrecondition},
	Unauthenticated:    {http.StatusUnauthorized, codes.Unauthenticated},
	PermissionDenied:   {http.StatusForbidden, codes.PermissionDenied},
	RateLimited:        {http.StatusTooManyRequests, codes.ResourceExhausted},
	QuotaExceeded:      {http.StatusTooManyRequests, codes.ResourceExhausted},
}

// reverse is the preferred Code for each gRPC code. Several codes share a
// gRPC code, so the canonical one is pinned here instead of derived.
var reverse = map[codes.Code]Code{
	codes.Internal:           Internal,
	codes.Unknown:            Internal,
	codes.InvalidArgument:    Invalid,
	codes.Unimplemented:      Unsupported,
	codes.NotFound:           NotFound,
	codes.AlreadyExists:      AlreadyExists,
	codes.Aborted:            Conflict,
	codes.FailedPrecondition: PreconditionFailed,
	codes.Unauthenticated:    Unauthenticated,
	codes.PermissionDenied:   PermissionDenied,
	codes.ResourceExhausted:  RateLimited,
	codes.Unavailable:        Unavailable,
	codes.DeadlineExceeded:   Timeout,
	codes.Canceled:           Canceled,
}

// Table is an immutable Code -> Status mapping. The zero Table resolves
// every code to Fallback. Tables are safe for concurrent use.
type Table struct {
	m map[Code]Status
}

// DefaultTable returns the built-in mapping.
func DefaultTable() Table {
	return Table{m: defaults}
}

// With returns a copy of t where c resolves to st. t is not modified.
func (t Table) With(c Code, st Status) Table {
	m := make(map[Code]Status, len(t.m)+1)
	for k, v := range t.m {
		m[k] = v
	}
	m[c] = st
	return Table{m: m}
}

// Lookup returns the status registered for c.
func (t Table) Lookup(c Code) (Status, bool) {
	st, ok := t.m[c]
	return st, ok
}

// Status resolves c, falling back to Fallback for unknown codes.
func (t Table) Status(c Code) Status {
	if st, ok := t.m[c]; ok {
		return st
	}
	return Fallback
}

// HTTP resolves the HTTP status for c. It is never zero.
func (t Table) HTTP(c Code) int { return t.Status(c).HTTP }

// GRPC resolves the gRPC status code for c.
func (t Table) GRPC(c Code) codes.Code { return t.Status(c).GRPC }

// FromGRPC maps a gRPC status code back to a Code. codes.OK maps to Empty.
func FromGRPC(gc codes.Code) Code {
	if gc == codes.OK {
		return Empty
	}
	if c, ok := reverse[gc]; ok {
		return c
	}
	return Internal
}
