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

// Generic domain codes.
const (
	// Internal is the fallback for failures no other code describes.
	Internal Code = "internal"
	// Invalid reports input that violates a structural or semantic rule.
	Invalid Code = "invalid"
	// Missing reports a required value that was not supplied.
	Missing Code = "missing"
	// Unsupported reports an operation or option the runtime does not offer.
	Unsupported Code = "unsupported"
)

// Runtime / operation control codes.
const (
	Unavailable      Code = "unavailable"
	Timeout          Code = "timeout"
	Canceled         Code = "canceled"
	DependencyFailed Code = "dependency_failed"
	Overloaded       Code = "overloaded"
)

// Resource / state codes.
const (
	NotFound           Code = "not_found"
	AlreadyExists      Code = "already_exists"
	Conflict           Code = "conflict"
	PreconditionFailed Code = "precondition_failed"
	Gone               Code = "gone"
)

// Authentication / authorization.
const (
	Unauthenticated  Code = "unauthenticated"
	PermissionDenied Code = "permission_denied"
)

// Rate and quota.
const (
	RateLimited   Code = "rate_limited"
	QuotaExceeded Code = "quota_exceeded"
)
