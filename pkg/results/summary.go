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
	"math"

	"k8s.io/utils/ptr"
)

// Summary is derived from a log and holds no state of its own.
type Summary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
	// SuccessRate is a percentage rounded to one decimal place, it is
	// undefined for an empty log.
	SuccessRate *float64 `json:"successRate,omitempty"`
}

// Summarize computes the summary of a log.
func Summarize(log *Log) Summary {
	var summary Summary

	for _, result := range log.Results() {
		summary.Total++

		if result.Success {
			summary.Passed++
		}
	}

	summary.Failed = summary.Total - summary.Passed

	if summary.Total > 0 {
		rate := float64(summary.Passed) / float64(summary.Total) * 100

		summary.SuccessRate = ptr.To(math.Round(rate*10) / 10)
	}

	return summary
}

// AllPassed is true when there was at least one result and none failed.
func (s Summary) AllPassed() bool {
	return s.Total > 0 && s.Failed == 0
}
