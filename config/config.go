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

// Package config loads failure settings from YAML.
//
// A configuration file looks like:
//
//	domain: billing.example.com
//	debug: false
//	backtrace:
//	  enabled: true
//	  depth: 48
//	codes:
//	  not_found: {http: 404, grpc: NOT_FOUND}
//	  card_declined: {http: 402, grpc: FAILED_PRECONDITION}
//
// The FAILURE_BACKTRACE environment variable, when set, overrides
// backtrace.enabled.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"google.golang.org/grpc/codes"
	"gopkg.in/yaml.v3"

	"dirpx.dev/failure"
	"dirpx.dev/failure/code"
)

// ErrInvalid is wrapped by every validation error returned from this
// package.
var ErrInvalid = errors.New("config: invalid")

// Config is the root of a failure configuration file.
type Config struct {
	// Domain is reported as ErrorInfo.domain by the transport adapters.
	Domain string `yaml:"domain,omitempty"`

	// Debug makes the transport adapters attach backtraces to responses.
	Debug bool `yaml:"debug,omitempty"`

	Backtrace Backtrace `yaml:"backtrace,omitempty"`

	// Codes overrides or extends the default code table. Keys are codes.
	Codes map[string]Status `yaml:"codes,omitempty"`
}

// Backtrace controls capture for newly created errors.
type Backtrace struct {
	// Enabled defaults to true when omitted.
	Enabled *bool `yaml:"enabled,omitempty"`
	// Depth is the maximum number of frames, at most failure.MaxDepth;
	// 0 keeps failure.DefaultDepth.
	Depth int `yaml:"depth,omitempty"`
}

// Status is one transport projection. A zero HTTP or empty GRPC keeps the
// value the default table has for the code.
type Status struct {
	HTTP int    `yaml:"http,omitempty"`
	GRPC string `yaml:"grpc,omitempty"`
}

// Default returns a configuration that matches the package defaults.
func Default() *Config {
	return &Config{}
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML, rejecting unknown fields, applies the environment
// override and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if v, ok := os.LookupEnv(failure.EnvBacktrace); ok {
		enabled := failure.ParseBacktraceEnv(v)
		cfg.Backtrace.Enabled = &enabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BacktraceEnabled reports the effective capture setting.
func (c *Config) BacktraceEnabled() bool {
	return c.Backtrace.Enabled == nil || *c.Backtrace.Enabled
}

// Validate checks depth, code names and statuses.
func (c *Config) Validate() error {
	if c.Backtrace.Depth < 0 || c.Backtrace.Depth > failure.MaxDepth {
		return fmt.Errorf("%w: backtrace.depth %d is outside [0, %d]", ErrInvalid, c.Backtrace.Depth, failure.MaxDepth)
	}
	for name, st := range c.Codes {
		if _, err := code.Parse(name); err != nil {
			return fmt.Errorf("%w: codes.%s: %v", ErrInvalid, name, err)
		}
		if st.HTTP != 0 && (st.HTTP < 100 || st.HTTP > 599) {
			return fmt.Errorf("%w: codes.%s.http %d out of range", ErrInvalid, name, st.HTTP)
		}
		if st.GRPC != "" {
			if _, err := parseGRPC(st.GRPC); err != nil {
				return fmt.Errorf("%w: codes.%s.grpc: %v", ErrInvalid, name, err)
			}
		}
	}
	return nil
}

// Table builds the code table: the defaults with Codes applied on top.
func (c *Config) Table() (code.Table, error) {
	if err := c.Validate(); err != nil {
		return code.Table{}, err
	}
	t := code.DefaultTable()
	for name, st := range c.Codes {
		cd := code.MustParse(name)
		resolved := t.Status(cd)
		if st.HTTP != 0 {
			resolved.HTTP = st.HTTP
		}
		if st.GRPC != "" {
			resolved.GRPC, _ = parseGRPC(st.GRPC)
		}
		t = t.With(cd, resolved)
	}
	return t, nil
}

// Apply pushes the backtrace settings into package failure. It affects
// errors created after the call.
func (c *Config) Apply() {
	failure.SetBacktrace(c.BacktraceEnabled(), c.Backtrace.Depth)
}

// parseGRPC accepts canonical names ("NOT_FOUND", case-insensitive) and
// numeric codes.
func parseGRPC(s string) (codes.Code, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	var gc codes.Code
	if _, err := strconv.ParseUint(s, 10, 32); err == nil {
		if err := gc.UnmarshalJSON([]byte(s)); err != nil {
			return 0, err
		}
		return gc, nil
	}
	if err := gc.UnmarshalJSON([]byte(strconv.Quote(s))); err != nil {
		return 0, err
	}
	return gc, nil
}
