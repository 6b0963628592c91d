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
	"context"
	"fmt"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/durationpb"

	"dirpx.dev/failure"
	"dirpx.dev/failure/reason"
)

// MetaFn extracts Extras from the request context and the rich error.
type MetaFn func(ctx context.Context, e *failure.Error) Extras

// UnaryServerInterceptor returns an interceptor that converts rich handler
// errors into gRPC statuses.
func UnaryServerInterceptor(opts ...Option) grpc.UnaryServerInterceptor {
	o := newOptions(opts)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, toStatus(ctx, err, o)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor(opts ...Option) grpc.StreamServerInterceptor {
	o := newOptions(opts)
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err == nil {
			return nil
		}
		ctx := context.Background()
		if ss != nil {
			ctx = ss.Context()
		}
		return toStatus(ctx, err, o)
	}
}

// ToStatus converts err as the interceptors would. Errors without a
// *failure.Error in their chain are returned unchanged.
func ToStatus(ctx context.Context, err error, opts ...Option) error {
	if err == nil {
		return nil
	}
	return toStatus(ctx, err, newOptions(opts))
}

func toStatus(ctx context.Context, err error, o options) error {
	fe, ok := failure.As(err)
	if !ok {
		// Not ours.
		return err
	}

	var ex Extras
	if o.metaFn != nil {
		ex = o.metaFn(ctx, fe)
	}

	base := gstatus.New(o.table.GRPC(fe.Code), fe.Message)
	details := []protoadapt.MessageV1{&errdetails.ErrorInfo{
		Reason:   reason.FromCode(fe.Code).String(),
		Domain:   o.domain,
		Metadata: metadata(fe.Details, ex.Metadata),
	}}
	if ex.RetryDelay > 0 {
		details = append(details, &errdetails.RetryInfo{RetryDelay: durationpb.New(ex.RetryDelay)})
	}
	if o.debug {
		details = append(details, &errdetails.DebugInfo{
			StackEntries: failure.BacktraceOf(err).Lines(),
			Detail:       chain(err),
		})
	}

	// If the details cannot be attached, the bare status still carries
	// the code and message.
	if with, derr := base.WithDetails(details...); derr == nil {
		return with.Err()
	}
	return base.Err()
}

func metadata(details map[string]any, extra map[string]string) map[string]string {
	if len(details) == 0 && len(extra) == 0 {
		return nil
	}
	m := make(map[string]string, len(details)+len(extra))
	for k, v := range details {
		m[k] = fmt.Sprint(v)
	}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

func chain(err error) string {
	causes := failure.Causes(err)
	parts := make([]string, len(causes))
	for i, c := range causes {
		parts[i] = c.Error()
	}
	return strings.Join(parts, "\ncaused by: ")
}
