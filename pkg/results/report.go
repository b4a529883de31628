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
	"os"
	"path/filepath"
	"strings"
)

const ruleWidth = 80

// Rule returns the horizontal separator used around report sections.
func Rule() string {
	return strings.Repeat("=", ruleWidth)
}

// Report prints the summary, the failing tests and the per category
// breakdown of a log.
func Report(w io.Writer, log *Log, styles *Styles) Summary {
	summary := Summarize(log)

	fmt.Fprintf(w, "\n%s\n", Rule())
	fmt.Fprintln(w, styles.Header.Render(GlyphSummary+" TEST SUMMARY"))
	fmt.Fprintln(w, Rule())

	fmt.Fprintf(w, "Total Tests: %d\n", summary.Total)
	fmt.Fprintf(w, "%s Passed: %d\n", GlyphPass, summary.Passed)
	fmt.Fprintf(w, "%s Failed: %d\n", GlyphFail, summary.Failed)

	if summary.SuccessRate != nil {
		fmt.Fprintf(w, "Success Rate: %.1f%%\n", *summary.SuccessRate)
	} else {
		fmt.Fprintln(w, "Success Rate: n/a")
	}

	if failures := log.Failures(); len(failures) > 0 {
		fmt.Fprintf(w, "\n%s\n", styles.Fail.Render(GlyphFailed+" FAILED TESTS:"))

		for _, result := range failures {
			fmt.Fprintf(w, "  %s %s: %s\n", GlyphFail, result.Name, result.Message)
		}
	}

	fmt.Fprintf(w, "\n%s\n", styles.Header.Render(GlyphDetail+" DETAILED RESULTS:"))

	for _, group := range Group(log) {
		if group.Total() == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s: %d/%d passed\n", styles.Category.Render(string(group.Category)), group.Passed, group.Total())

		for _, result := range group.Results {
			glyph := GlyphPass
			if !result.Success {
				glyph = GlyphFail
			}

			fmt.Fprintf(w, "  %s %s\n", glyph, result.Name)
		}
	}

	return summary
}

// WriteFile persists the full log, in execution order, as a JSON array.
func WriteFile(path string, log *Log) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(log.Results()); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing report: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report: %w", err)
	}

	return nil
}
