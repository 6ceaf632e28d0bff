package report

import (
	"strings"
	"unicode/utf8"
)

type plainRenderer struct{}

func (plainRenderer) render(doc document) string {
	var b strings.Builder
	b.WriteString(doc.Title)
	for _, s := range doc.Sections {
		b.WriteString("\n\n")
		heading := s.Heading + ":"
		b.WriteString(heading)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", utf8.RuneCountInString(heading)))
		for _, l := range s.Lines {
			b.WriteString("\n")
			writeLine(&b, l, "")
		}
	}
	b.WriteString("\n")
	return b.String()
}

type decoratedRenderer struct{}

var sectionIcons = map[sectionKind]string{
	sectionDescriptive:    "📈",
	sectionCalculation:    "🧮",
	sectionHypotheses:     "❓",
	sectionResult:         "🎯",
	sectionInterpretation: "💡",
}

func (decoratedRenderer) render(doc document) string {
	var b strings.Builder
	b.WriteString("📊 ")
	b.WriteString(doc.Title)
	for _, s := range doc.Sections {
		icon := sectionIcons[s.Kind]
		if s.Kind == sectionDecision {
			icon = "❌"
			if doc.Rejected {
				icon = "✅"
			}
		}
		b.WriteString("\n\n")
		b.WriteString(icon + " " + s.Heading)
		for _, l := range s.Lines {
			b.WriteString("\n")
			writeLine(&b, l, "  • ")
		}
	}
	b.WriteString("\n")
	return b.String()
}

type markdownRenderer struct{}

func (markdownRenderer) render(doc document) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(doc.Title)
	for _, s := range doc.Sections {
		b.WriteString("\n\n## ")
		b.WriteString(s.Heading)
		b.WriteString("\n")
		for i, l := range s.Lines {
			b.WriteString("\n")
			if l.Label == "" {
				if i > 0 {
					b.WriteString("\n")
				}
				b.WriteString(l.Value)
				continue
			}
			b.WriteString("- **" + l.Label + ":** " + l.Value)
		}
	}
	b.WriteString("\n")
	return b.String()
}

func writeLine(b *strings.Builder, l line, prefix string) {
	b.WriteString(prefix)
	if l.Label != "" {
		b.WriteString(l.Label)
		b.WriteString(": ")
	}
	b.WriteString(l.Value)
}
