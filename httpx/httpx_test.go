//go:build !failure_nostd

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

package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	spb "google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc/codes"
	"google.golang.org/protobuf/encoding/protojson"

	"dirpx.dev/failure"
	"dirpx.dev/failure/code"
	"dirpx.dev/failure/compat"
	"dirpx.dev/failure/config"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) *spb.Status {
	t.Helper()
	var st spb.Status
	require.NoError(t, protojson.Unmarshal(rec.Body.Bytes(), &st))
	return &st
}

func errorInfo(t *testing.T, st *spb.Status) *errdetails.ErrorInfo {
	t.Helper()
	for _, d := range st.GetDetails() {
		var info errdetails.ErrorInfo
		if d.UnmarshalTo(&info) == nil {
			return &info
		}
	}
	t.Fatal("no ErrorInfo detail")
	return nil
}

func TestWrite_Nil(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Empty(t, Writer{}.Write(context.Background(), rec, nil, Meta{}))
	assert.Zero(t, rec.Body.Len())
}

func TestWrite_RichError(t *testing.T) {
	rec := httptest.NewRecorder()
	rich := failure.E(code.NotFound, "user 42", failure.WithDetailOption("user_id", 42))

	id := Writer{Domain: "users.example.com"}.Write(context.Background(), rec, compat.Box(rich), Meta{Correlation: "req-1"})

	assert.Equal(t, "req-1", id)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "req-1", rec.Header().Get(HeaderCorrelationID))
	assert.Empty(t, rec.Header().Get("Retry-After"))

	st := decode(t, rec)
	assert.Equal(t, int32(codes.NotFound), st.GetCode())
	assert.Equal(t, "user 42", st.GetMessage())

	info := errorInfo(t, st)
	assert.Equal(t, "NOT_FOUND", info.GetReason())
	assert.Equal(t, "users.example.com", info.GetDomain())
	assert.Equal(t, "42", info.GetMetadata()["user_id"])
	assert.Equal(t, "req-1", info.GetMetadata()["correlation_id"])
}

func TestWrite_GeneratesCorrelationAndRetry(t *testing.T) {
	rec := httptest.NewRecorder()
	id := Writer{}.Write(context.Background(), rec, failure.E(code.RateLimited, "slow down"), Meta{RetryAfterSeconds: 3})

	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.Header().Get(HeaderCorrelationID))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3", rec.Header().Get("Retry-After"))

	st := decode(t, rec)
	var found bool
	for _, d := range st.GetDetails() {
		var ri errdetails.RetryInfo
		if d.UnmarshalTo(&ri) == nil {
			found = true
			assert.Equal(t, 3*time.Second, ri.GetRetryDelay().AsDuration())
		}
	}
	assert.True(t, found, "RetryInfo detail missing")
}

func TestWrite_ForeignErrorIsOpaque(t *testing.T) {
	rec := httptest.NewRecorder()
	Writer{}.Write(context.Background(), rec, errors.New("pq: password authentication failed"), Meta{})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	st := decode(t, rec)
	assert.Equal(t, int32(codes.Internal), st.GetCode())
	assert.Equal(t, "Internal Server Error", st.GetMessage())
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestWrite_LogsWithReport(t *testing.T) {
	logger, hook := test.NewNullLogger()
	rec := httptest.NewRecorder()

	Writer{Logger: logger}.Write(context.Background(), rec, failure.E(code.Conflict, "stale"), Meta{Correlation: "c-9"})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "c-9", entry.Data["correlation_id"])
	assert.Equal(t, "conflict", entry.Data["error_code"])
}

func TestNewWriterAndHandle(t *testing.T) {
	cfg, err := config.Parse([]byte("domain: api.example.com\ncodes: {not_found: {http: 410}}"))
	require.NoError(t, err)
	w, err := NewWriter(cfg, nil)
	require.NoError(t, err)

	h := w.Handle(func(rw http.ResponseWriter, r *http.Request) error {
		if r.URL.Path == "/ok" {
			rw.WriteHeader(http.StatusNoContent)
			return nil
		}
		return failure.E(code.NotFound, "gone for good")
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(HeaderCorrelationID, "from-client")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, "from-client", rec.Header().Get(HeaderCorrelationID))
	assert.Equal(t, "api.example.com", errorInfo(t, decode(t, rec)).GetDomain())
}
