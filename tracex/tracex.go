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

// Package tracex records failure errors on OpenTelemetry spans.
package tracex

import (
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"dirpx.dev/failure"
)

// Attribute keys set by RecordError.
const (
	KeyCode       = attribute.Key("error.code")
	KeyStacktrace = attribute.Key("exception.stacktrace")
)

// RecordError adds an exception event for err to span and marks the span
// as failed with the error's rendering. The event carries error.code when
// the chain holds a *failure.Error and exception.stacktrace when it holds a
// backtrace. A nil err or a non-recording span is a no-op.
func RecordError(span trace.Span, err error, opts ...trace.EventOption) {
	if err == nil || !span.IsRecording() {
		return
	}

	var attrs []attribute.KeyValue
	if fe, ok := failure.As(err); ok && fe.Code != "" {
		attrs = append(attrs, KeyCode.String(string(fe.Code)))
	}
	if bt := failure.BacktraceOf(err); !bt.IsEmpty() {
		attrs = append(attrs, KeyStacktrace.String(bt.String()))
	}
	if len(attrs) > 0 {
		opts = append(opts, trace.WithAttributes(attrs...))
	}

	span.RecordError(err, opts...)
	span.SetStatus(otelcodes.Error, err.Error())
}
