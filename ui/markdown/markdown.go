// Package markdown renders the small Markdown subset that model answers tend
// to use (headings, lists, fenced code, emphasis, links) with lipgloss styles.
package markdown

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	codeStyle   = lipgloss.NewStyle().Background(lipgloss.Color("236")).Padding(0, 1)
	boldStyle   = lipgloss.NewStyle().Bold(true)
	italicStyle = lipgloss.NewStyle().Italic(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	linkStyle   = lipgloss.NewStyle().Underline(true)
	listStyle   = lipgloss.NewStyle().MarginLeft(2)
	quoteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	orderedItemRe = regexp.MustCompile(`^(\d+)\.\s+(.*)`)
	paragraphRe   = regexp.MustCompile(`\n\s*\n`)
	inlineCodeRe  = regexp.MustCompile("``[^`]+``|`[^`]+`")
	linkRe        = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	boldRe        = regexp.MustCompile(`\*\*([^*]+)\*\*|__([^_]+)__`)
	italicRe      = regexp.MustCompile(`(^|[^*\w])[*_]([^*_]+)[*_]`)
)

// Render converts text to styled terminal output.
func Render(text string) string {
	var out []string
	inCode := false

	for _, line := range strings.Split(normalize(text), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			out = append(out, codeStyle.Render(line))
			continue
		}
		out = append(out, renderLine(line))
	}

	return strings.Join(out, "\n")
}

func renderLine(line string) string {
	for _, prefix := range []string{"### ", "## ", "# "} {
		if title, ok := strings.CutPrefix(line, prefix); ok {
			return titleStyle.Render(inline(title))
		}
	}
	for _, prefix := range []string{"- ", "* ", "+ "} {
		if item, ok := strings.CutPrefix(line, prefix); ok {
			return listStyle.Render("• " + inline(item))
		}
	}
	if m := orderedItemRe.FindStringSubmatch(line); m != nil {
		return listStyle.Render(m[1] + ". " + inline(m[2]))
	}
	if quote, ok := strings.CutPrefix(line, "> "); ok {
		return quoteStyle.Render("│ " + inline(quote))
	}
	return inline(line)
}

// inline styles code spans first so their content is left alone.
func inline(text string) string {
	parts := inlineCodeRe.Split(text, -1)
	codes := inlineCodeRe.FindAllString(text, -1)

	var b strings.Builder
	for i, part := range parts {
		b.WriteString(emphasis(part))
		if i < len(codes) {
			b.WriteString(codeStyle.Render(strings.Trim(codes[i], "`")))
		}
	}
	return b.String()
}

func emphasis(text string) string {
	text = linkRe.ReplaceAllStringFunc(text, func(match string) string {
		m := linkRe.FindStringSubmatch(match)
		return linkStyle.Render(m[1]) + " (" + m[2] + ")"
	})
	text = boldRe.ReplaceAllStringFunc(text, func(match string) string {
		return boldStyle.Render(strings.Trim(match, "*_"))
	})
	return italicRe.ReplaceAllStringFunc(text, func(match string) string {
		m := italicRe.FindStringSubmatch(match)
		return m[1] + italicStyle.Render(m[2])
	})
}

// normalize joins soft-wrapped lines within a paragraph and keeps structural
// lines (headings, list items, fences, quotes) on their own.
func normalize(text string) string {
	var paragraphs []string
	inCode := false
	for _, paragraph := range paragraphRe.Split(strings.TrimSpace(text), -1) {
		var lines []string
		for _, line := range strings.Split(paragraph, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "```") {
				inCode = !inCode
				lines = append(lines, trimmed)
				continue
			}
			if inCode {
				lines = append(lines, line)
				continue
			}
			if trimmed == "" {
				continue
			}
			if len(lines) > 0 && !structural(trimmed) && !structural(lines[len(lines)-1]) {
				lines[len(lines)-1] += " " + trimmed
				continue
			}
			lines = append(lines, trimmed)
		}
		if len(lines) > 0 {
			paragraphs = append(paragraphs, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(paragraphs, "\n")
}

func structural(line string) bool {
	switch {
	case strings.HasPrefix(line, "#"),
		strings.HasPrefix(line, "- "),
		strings.HasPrefix(line, "* "),
		strings.HasPrefix(line, "+ "),
		strings.HasPrefix(line, "> "),
		strings.HasPrefix(line, "```"):
		return true
	}
	return orderedItemRe.MatchString(line)
}
