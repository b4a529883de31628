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
	"slices"
	"time"
)

// TestResult is the outcome of a single test case. Results are values, once
// recorded they are never modified.
type TestResult struct {
	Name     string   `json:"name"`
	Category Category `json:"category,omitempty"`
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	// Timestamp is an ISO-8601 time in the local zone.
	Timestamp string `json:"timestamp"`
	// ResponseData is the decoded response body, or its raw text when
	// the body was not JSON, or nil when no response was received.
	ResponseData any `json:"response_data"`
}

// timestampFormat is ISO-8601 with microseconds, local time.
const timestampFormat = "2006-01-02T15:04:05.000000"

// New creates a result stamped with the current time.
func New(name string, category Category, success bool, message string, responseData any) TestResult {
	return TestResult{
		Name:         name,
		Category:     category,
		Success:      success,
		Message:      message,
		Timestamp:    time.Now().Format(timestampFormat),
		ResponseData: responseData,
	}
}

// Pass creates a passing result.
func Pass(name string, category Category, message string, responseData any) TestResult {
	return New(name, category, true, message, responseData)
}

// Fail creates a failing result.
func Fail(name string, category Category, message string, responseData any) TestResult {
	return New(name, category, false, message, responseData)
}

// Log is the ordered record of every result of a run. It is owned by a single
// runner and only ever appended to.
type Log struct {
	results []TestResult
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{
		results: []TestResult{},
	}
}

// Append adds a result to the end of the log.
func (l *Log) Append(result TestResult) {
	l.results = append(l.results, result)
}

// Len returns the number of results recorded.
func (l *Log) Len() int {
	return len(l.results)
}

// Results returns a copy of the results in execution order.
func (l *Log) Results() []TestResult {
	return slices.Clone(l.results)
}

// Failures returns the failing results in execution order.
func (l *Log) Failures() []TestResult {
	var failures []TestResult

	for _, result := range l.results {
		if !result.Success {
			failures = append(failures, result)
		}
	}

	return failures
}
