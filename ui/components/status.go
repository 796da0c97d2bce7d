package components

import (
	"strings"

	"github.com/Rorical/WolofBridge/ui/styles"
)

func RenderStatus(status string, loading bool, loadingDots int, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := status
	if loading {
		statusContent += strings.Repeat(".", loadingDots)
	}
	statusContent += "  ·  Enter/Ask to submit · Tab to switch · Esc to quit"

	return statusStyle.Render(statusContent)
}
