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

// Package grpcx converts failure errors at a gRPC boundary.
//
// On the server, the interceptors turn any handler error whose chain holds
// a *failure.Error (including one boxed by compat.Box) into a gRPC status
// with google.rpc.ErrorInfo details and, in debug mode, google.rpc.DebugInfo
// carrying the backtrace. Other errors pass through unchanged.
//
// On the client, FromStatus rebuilds a *failure.Error from such a status.
package grpcx

import (
	"time"

	"dirpx.dev/failure/code"
	"dirpx.dev/failure/config"
)

type options struct {
	table  code.Table
	domain string
	debug  bool
	metaFn MetaFn
}

// Option configures the interceptors and ToStatus.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{table: code.DefaultTable()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTable sets the code table used to pick the gRPC status code.
func WithTable(t code.Table) Option {
	return func(o *options) { o.table = t }
}

// WithDomain sets ErrorInfo.domain, typically the service's DNS name.
func WithDomain(domain string) Option {
	return func(o *options) { o.domain = domain }
}

// WithDebug attaches a DebugInfo detail with the backtrace and the cause
// chain. Do not enable it for untrusted clients.
func WithDebug(on bool) Option {
	return func(o *options) { o.debug = on }
}

// WithMeta registers a MetaFn that contributes per-request extras.
func WithMeta(fn MetaFn) Option {
	return func(o *options) { o.metaFn = fn }
}

// FromConfig derives options from a loaded configuration.
func FromConfig(cfg *config.Config) ([]Option, error) {
	t, err := cfg.Table()
	if err != nil {
		return nil, err
	}
	return []Option{WithTable(t), WithDomain(cfg.Domain), WithDebug(cfg.Debug)}, nil
}

// Extras holds optional, request-scoped metadata added to the status.
type Extras struct {
	// Metadata is merged into ErrorInfo.metadata; it wins over Details.
	Metadata map[string]string

	// RetryDelay, when positive, is attached as google.rpc.RetryInfo.
	RetryDelay time.Duration
}
