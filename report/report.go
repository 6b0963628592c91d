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

// Package report turns errors into structured logrus fields.
//
// It works on any error: the rendering is always logged, and when the chain
// holds richer data (a code, a backtrace, a StdError description) that data
// is added as separate fields.
package report

import (
	"github.com/sirupsen/logrus"

	"dirpx.dev/failure"
	"dirpx.dev/failure/apis"
)

// Field names used by Fields and Hook.
const (
	FieldDescription = "error_description"
	FieldCode        = "error_code"
	FieldCause       = "error_cause"
	FieldBacktrace   = "error_backtrace"

	// DetailPrefix is prepended to a detail key that collides with one of
	// the fields above, so a detail never replaces them.
	DetailPrefix = "detail_"
)

func reserved(k string) bool {
	switch k {
	case logrus.ErrorKey, FieldDescription, FieldCode, FieldCause, FieldBacktrace:
		return true
	}
	return false
}

// Fields extracts log fields from err. The rendering goes under
// logrus.ErrorKey. A nil err yields nil.
func Fields(err error) logrus.Fields {
	if err == nil {
		return nil
	}
	f := logrus.Fields{logrus.ErrorKey: err.Error()}
	if d, ok := err.(apis.StdError); ok {
		f[FieldDescription] = d.Description()
	}
	if fe, ok := failure.As(err); ok {
		if fe.Code != "" {
			f[FieldCode] = string(fe.Code)
		}
		for k, v := range fe.Details {
			if reserved(k) {
				k = DetailPrefix + k
			}
			f[k] = v
		}
	}
	if causes := failure.Causes(err); len(causes) > 1 {
		f[FieldCause] = causes[len(causes)-1].Error()
	}
	if bt := failure.BacktraceOf(err); !bt.IsEmpty() {
		f[FieldBacktrace] = bt.String()
	}
	return f
}

// Log writes err at error level with its fields. A nil err is ignored.
func Log(logger logrus.FieldLogger, err error, msg string) {
	if err == nil {
		return
	}
	logger.WithFields(Fields(err)).Error(msg)
}

// Hook enriches every entry that carries an error under logrus.ErrorKey,
// so plain logger.WithError(err) calls get the same fields as Log.
type Hook struct {
	// LogLevels limits the hook; nil means all levels.
	LogLevels []logrus.Level
}

var _ logrus.Hook = Hook{}

// Levels implements logrus.Hook.
func (h Hook) Levels() []logrus.Level {
	if h.LogLevels == nil {
		return logrus.AllLevels
	}
	return h.LogLevels
}

// Fire implements logrus.Hook.
func (h Hook) Fire(entry *logrus.Entry) error {
	err, ok := entry.Data[logrus.ErrorKey].(error)
	if !ok || err == nil {
		return nil
	}
	for k, v := range Fields(err) {
		if k == logrus.ErrorKey {
			continue
		}
		if _, taken := entry.Data[k]; !taken {
			entry.Data[k] = v
		}
	}
	return nil
}
