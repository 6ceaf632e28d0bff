package ui

import (
	_ "embed"

	"statcalc/internal/report"
)

//go:embed help.md
var helpMarkdown string

// HelpMarkdown returns the concept primer as markdown
func HelpMarkdown() string {
	return helpMarkdown
}

// HelpHTML returns the primer rendered as an HTML fragment
func HelpHTML() string {
	return report.RenderHTML(helpMarkdown)
}
