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

package failure

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync/atomic"

	pkgerrors "github.com/pkg/errors"
)

// EnvBacktrace is the environment variable consulted at start-up to decide
// whether new errors capture a backtrace. "0", "false", "off" and "no"
// disable capture; anything else, including unset, enables it.
const EnvBacktrace = "FAILURE_BACKTRACE"

// DefaultDepth is the number of frames captured per backtrace unless
// SetBacktrace says otherwise.
const DefaultDepth = 32

// MaxDepth caps the depth accepted by SetBacktrace. Deeper stacks are
// truncated at the outermost frames.
const MaxDepth = 1024

var (
	captureEnabled atomic.Bool
	captureDepth   atomic.Int32
)

func init() {
	captureEnabled.Store(ParseBacktraceEnv(os.Getenv(EnvBacktrace)))
	captureDepth.Store(DefaultDepth)
}

// ParseBacktraceEnv interprets a value of EnvBacktrace.
func ParseBacktraceEnv(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "0", "false", "off", "no":
		return false
	}
	return true
}

// SetBacktrace turns backtrace capture on or off for errors created from
// now on. A depth <= 0 keeps the current depth; a depth above MaxDepth is
// clamped to MaxDepth.
func SetBacktrace(enabled bool, depth int) {
	captureEnabled.Store(enabled)
	if depth > 0 {
		captureDepth.Store(int32(min(depth, MaxDepth)))
	}
}

// BacktraceEnabled reports whether new errors capture a backtrace.
func BacktraceEnabled() bool { return captureEnabled.Load() }

// Backtrace is an opaque snapshot of the call stack taken when an error
// was created. It is meant for diagnostics only.
//
// A Backtrace is immutable and safe for concurrent use. The zero value is
// an empty backtrace.
type Backtrace struct {
	pcs []uintptr
}

var noBacktrace = &Backtrace{}

// captureBacktrace records the stack above its caller, skipping skip
// additional frames.
func captureBacktrace(skip int) *Backtrace {
	if !captureEnabled.Load() {
		return &Backtrace{}
	}
	pcs := make([]uintptr, captureDepth.Load())
	// +2 skips runtime.Callers and captureBacktrace itself.
	n := runtime.Callers(skip+2, pcs)
	return &Backtrace{pcs: pcs[:n:n]}
}

// FromStackTrace adopts a github.com/pkg/errors stack trace, so errors
// produced by that package report through the same type.
func FromStackTrace(st pkgerrors.StackTrace) *Backtrace {
	pcs := make([]uintptr, len(st))
	for i, f := range st {
		pcs[i] = uintptr(f)
	}
	return &Backtrace{pcs: pcs}
}

// Len returns the number of captured frames.
func (b *Backtrace) Len() int {
	if b == nil {
		return 0
	}
	return len(b.pcs)
}

// IsEmpty reports whether nothing was captured, either because capture
// was disabled or because b is nil.
func (b *Backtrace) IsEmpty() bool { return b.Len() == 0 }

// Frames resolves the captured program counters.
func (b *Backtrace) Frames() []runtime.Frame {
	if b.IsEmpty() {
		return nil
	}
	out := make([]runtime.Frame, 0, len(b.pcs))
	frames := runtime.CallersFrames(b.pcs)
	for {
		f, more := frames.Next()
		out = append(out, f)
		if !more {
			break
		}
	}
	return out
}

// StackTrace returns b in the github.com/pkg/errors representation, which
// error reporters such as Sentry understand.
func (b *Backtrace) StackTrace() pkgerrors.StackTrace {
	if b.IsEmpty() {
		return nil
	}
	st := make(pkgerrors.StackTrace, len(b.pcs))
	for i, pc := range b.pcs {
		st[i] = pkgerrors.Frame(pc)
	}
	return st
}

// Lines renders one "function file:line" entry per frame.
func (b *Backtrace) Lines() []string {
	frames := b.Frames()
	if len(frames) == 0 {
		return nil
	}
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = fmt.Sprintf("%s %s:%d", f.Function, f.File, f.Line)
	}
	return out
}

// String renders the backtrace as
//
//	function
//		file:line
//
// per frame. An empty backtrace renders as "".
func (b *Backtrace) String() string {
	var buf strings.Builder
	for _, f := range b.Frames() {
		fmt.Fprintf(&buf, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Format follows the github.com/pkg/errors StackTrace verbs.
func (b *Backtrace) Format(s fmt.State, verb rune) {
	b.StackTrace().Format(s, verb)
}
