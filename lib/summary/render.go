// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package summary

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const ruleWidth = 60

// Render writes the report to w. Headings are styled for profile;
// termenv.Ascii produces plain text.
func (r *Report) Render(w io.Writer, profile termenv.Profile) error {
	// The profile must be set explicitly: the renderer otherwise
	// re-detects it from the environment.
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	titleStyle := renderer.NewStyle().Bold(true)
	headingStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	noneStyle := renderer.NewStyle().Faint(true)

	var b strings.Builder
	rule := strings.Repeat("=", ruleWidth)
	b.WriteString(rule + "\n")
	b.WriteString(titleStyle.Render(r.Title) + "\n")
	b.WriteString(rule + "\n")
	for index, section := range r.Sections {
		if index > 0 {
			b.WriteString("\n")
		}
		b.WriteString("\n" + headingStyle.Render("["+section.Title+"]") + "\n")
		if len(section.Lines) == 0 {
			b.WriteString("  " + noneStyle.Render("(None)") + "\n")
			continue
		}
		for _, line := range section.Lines {
			b.WriteString("  " + line + "\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// String renders the report as plain text.
func (r *Report) String() string {
	var b strings.Builder
	_ = r.Render(&b, termenv.Ascii)
	return b.String()
}
