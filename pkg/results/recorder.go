/*
Copyright 2026 Nscale.

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

package results

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Recorder is the single way results enter a log. Every record is echoed to
// the console as it happens.
type Recorder struct {
	log    *Log
	out    io.Writer
	styles *Styles
}

func NewRecorder(log *Log, out io.Writer, styles *Styles) *Recorder {
	return &Recorder{
		log:    log,
		out:    out,
		styles: styles,
	}
}

// Log returns the log being recorded into.
func (r *Recorder) Log() *Log {
	return r.log
}

// Record appends the result and prints its progress line. Failures that
// carry response data have it printed underneath.
func (r *Recorder) Record(result TestResult) {
	r.log.Append(result)

	status := r.styles.Pass.Render(GlyphPass + " PASS")
	if !result.Success {
		status = r.styles.Fail.Render(GlyphFail + " FAIL")
	}

	fmt.Fprintf(r.out, "%s: %s - %s\n", status, result.Name, result.Message)

	if !result.Success && result.ResponseData != nil && result.ResponseData != "" {
		fmt.Fprintf(r.out, "   Response: %s\n", r.styles.Dim.Render(indentJSON(result.ResponseData)))
	}
}

// indentJSON renders a value as indented JSON, aligned under the progress line.
func indentJSON(value any) string {
	data, err := json.MarshalIndent(value, "   ", "  ")
	if err != nil {
		return fmt.Sprintf("%v", value)
	}

	return strings.TrimSpace(string(data))
}
