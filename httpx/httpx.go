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

// Package httpx writes failure errors as HTTP responses.
//
// The body is the google.rpc.Status message in its canonical protobuf JSON
// form, with the same details grpcx attaches, so HTTP and gRPC clients see
// one error model.
package httpx

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"

	"dirpx.dev/failure"
	"dirpx.dev/failure/code"
	"dirpx.dev/failure/config"
	"dirpx.dev/failure/grpcx"
	"dirpx.dev/failure/report"
)

// HeaderCorrelationID carries the correlation id of an error response.
const HeaderCorrelationID = "X-Correlation-Id"

// Meta carries request-scoped extras for an error response. All fields are
// optional.
type Meta struct {
	// Correlation is echoed in HeaderCorrelationID and in the ErrorInfo
	// metadata. A random UUID is generated when empty.
	Correlation string

	// RetryAfterSeconds, when positive, sets Retry-After and RetryInfo.
	RetryAfterSeconds int32
}

// Writer turns errors into HTTP responses. The zero Writer uses the default
// code table, no domain, no debug info and no logging.
type Writer struct {
	Table  code.Table
	Domain string
	Debug  bool

	// Logger, when set, receives one entry per written error.
	Logger logrus.FieldLogger
}

// NewWriter builds a Writer from a loaded configuration.
func NewWriter(cfg *config.Config, logger logrus.FieldLogger) (Writer, error) {
	t, err := cfg.Table()
	if err != nil {
		return Writer{}, err
	}
	return Writer{Table: t, Domain: cfg.Domain, Debug: cfg.Debug, Logger: logger}, nil
}

func (w Writer) table() code.Table {
	if _, ok := w.Table.Lookup(code.Internal); !ok {
		return code.DefaultTable()
	}
	return w.Table
}

// Write renders err and returns the correlation id used. Errors without a
// *failure.Error in their chain are reported as an opaque 500 so their text
// never reaches the client. A nil err writes nothing.
//
// No redaction is applied to rich errors: Message and Details are exposed
// as-is.
func (w Writer) Write(ctx context.Context, rw http.ResponseWriter, err error, meta Meta) string {
	if err == nil {
		return ""
	}
	if meta.Correlation == "" {
		meta.Correlation = uuid.New().String()
	}

	tab := w.table()
	httpStatus := http.StatusInternalServerError
	var st *gstatus.Status
	if fe, ok := failure.As(err); ok {
		httpStatus = tab.HTTP(fe.Code)
		st = gstatus.Convert(grpcx.ToStatus(ctx, err,
			grpcx.WithTable(tab),
			grpcx.WithDomain(w.Domain),
			grpcx.WithDebug(w.Debug),
			grpcx.WithMeta(func(context.Context, *failure.Error) grpcx.Extras {
				return grpcx.Extras{
					Metadata:   map[string]string{"correlation_id": meta.Correlation},
					RetryDelay: secondsToDuration(meta.RetryAfterSeconds),
				}
			}),
		))
	} else {
		st = gstatus.New(gcodes.Internal, http.StatusText(http.StatusInternalServerError))
	}

	if w.Logger != nil {
		report.Log(w.Logger.WithField("correlation_id", meta.Correlation), err, "request failed")
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.Header().Set(HeaderCorrelationID, meta.Correlation)
	if meta.RetryAfterSeconds > 0 {
		rw.Header().Set("Retry-After", strconv.Itoa(int(meta.RetryAfterSeconds)))
	}
	rw.WriteHeader(httpStatus)

	// protojson, not encoding/json: details are Any messages and need the
	// @type resolution.
	b, _ := protojson.MarshalOptions{EmitUnpopulated: false}.Marshal(st.Proto())
	_, _ = rw.Write(b)
	return meta.Correlation
}

// HandlerFunc is an http.HandlerFunc that may fail.
type HandlerFunc func(rw http.ResponseWriter, r *http.Request) error

// Handle adapts fn to http.Handler, writing any returned error with w.
// The request's X-Correlation-Id header, if present, is reused.
func (w Writer) Handle(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if err := fn(rw, r); err != nil {
			w.Write(r.Context(), rw, err, Meta{Correlation: r.Header.Get(HeaderCorrelationID)})
		}
	})
}

func secondsToDuration(s int32) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s) * time.Second
}
