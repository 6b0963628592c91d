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

package grpcx

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"

	"dirpx.dev/failure"
	"dirpx.dev/failure/code"
	"dirpx.dev/failure/reason"
)

// ExtractInfo pulls google.rpc.ErrorInfo out of a gRPC error, if present.
func ExtractInfo(err error) (*errdetails.ErrorInfo, bool) {
	return extract[*errdetails.ErrorInfo](err)
}

// ExtractDebug pulls google.rpc.DebugInfo out of a gRPC error, if present.
func ExtractDebug(err error) (*errdetails.DebugInfo, bool) {
	return extract[*errdetails.DebugInfo](err)
}

// ExtractRetry pulls google.rpc.RetryInfo out of a gRPC error, if present.
func ExtractRetry(err error) (*errdetails.RetryInfo, bool) {
	return extract[*errdetails.RetryInfo](err)
}

func extract[T any](err error) (T, bool) {
	var zero T
	if err == nil {
		return zero, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return zero, false
	}
	for _, d := range st.Details() {
		if v, ok := d.(T); ok {
			return v, true
		}
	}
	return zero, false
}

// FromStatus rebuilds a rich error from a gRPC error produced by this
// package. The code comes from ErrorInfo.reason when it names a valid code,
// otherwise from the gRPC status code; ErrorInfo metadata becomes Details.
// err itself is kept as the cause. It returns nil for nil and OK statuses.
func FromStatus(err error) *failure.Error {
	if err == nil {
		return nil
	}
	st, _ := gstatus.FromError(err)
	if st.Code() == gcodes.OK {
		return nil
	}

	c := code.FromGRPC(st.Code())
	var details map[string]any
	if info, ok := ExtractInfo(err); ok {
		if parsed, ok := reason.Reason(info.GetReason()).Code(); ok {
			c = parsed
		}
		if md := info.GetMetadata(); len(md) > 0 {
			details = make(map[string]any, len(md))
			for k, v := range md {
				details[k] = v
			}
		}
	}

	return failure.Wrap(err, c, st.Message()).WithDetails(details)
}
