package components

import (
	"strings"

	"github.com/Rorical/WolofBridge/internal/models"
	"github.com/Rorical/WolofBridge/ui/markdown"
	"github.com/Rorical/WolofBridge/ui/styles"
)

// RenderError draws the error region when it is visible.
func RenderError(state models.UIState, width int) string {
	if !state.ErrorVisible || state.ErrorMessage == "" {
		return ""
	}
	return styles.ErrorStyle(width).Render(state.ErrorMessage) + "\n\n"
}

// RenderResults draws the four response fields when the results region is visible.
func RenderResults(state models.UIState, width int) string {
	if !state.ResultsVisible {
		return ""
	}

	var b strings.Builder
	for _, f := range models.ResponseFields {
		wolof := f == models.OriginalQuery || f == models.WolofResponse
		b.WriteString(styles.ResultLabelStyle().Render(f.Label()) + "\n")
		b.WriteString(styles.ResultStyle(width, wolof).Render(markdown.Render(state.Fields[f])) + "\n\n")
	}
	return b.String()
}

// RenderNotices draws the banner lines.
func RenderNotices(notices []models.Notice) string {
	var b strings.Builder
	for _, n := range notices {
		switch n.Type {
		case models.Program:
			b.WriteString(styles.ProgramStyle().Render(n.Content) + "\n")
		case models.Hint:
			b.WriteString(styles.HintStyle().Render(n.Content) + "\n")
		}
	}
	if len(notices) > 0 {
		b.WriteString("\n")
	}
	return b.String()
}
