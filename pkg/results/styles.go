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
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Status glyphs.
const (
	GlyphPass    = "✅"
	GlyphFail    = "❌"
	GlyphStart   = "🚀"
	GlyphTarget  = "📍"
	GlyphSummary = "📊"
	GlyphFailed  = "🔍"
	GlyphDetail  = "📋"
	GlyphSaved   = "💾"
)

//nolint:gochecknoglobals
var (
	colorGreen = lipgloss.Color("42")
	colorRed   = lipgloss.Color("196")
	colorCyan  = lipgloss.Color("51")
	colorDim   = lipgloss.Color("240")
)

// Styles renders console output. Colors are only emitted when the writer is a
// terminal that supports them.
type Styles struct {
	Pass     lipgloss.Style
	Fail     lipgloss.Style
	Header   lipgloss.Style
	Category lipgloss.Style
	Dim      lipgloss.Style
}

// NewStyles returns styles bound to the given writer.
func NewStyles(w io.Writer, noColor bool) *Styles {
	renderer := lipgloss.NewRenderer(w)

	if noColor {
		return &Styles{
			Pass:     renderer.NewStyle(),
			Fail:     renderer.NewStyle(),
			Header:   renderer.NewStyle(),
			Category: renderer.NewStyle(),
			Dim:      renderer.NewStyle(),
		}
	}

	return &Styles{
		Pass:     renderer.NewStyle().Foreground(colorGreen).Bold(true),
		Fail:     renderer.NewStyle().Foreground(colorRed).Bold(true),
		Header:   renderer.NewStyle().Foreground(colorCyan).Bold(true),
		Category: renderer.NewStyle().Bold(true),
		Dim:      renderer.NewStyle().Foreground(colorDim),
	}
}
