package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/WolofBridge/internal/models"
	"github.com/Rorical/WolofBridge/ui/styles"
)

const inputPlaceholder = "Bind sa laaj… (type your question in Wolof)"

// RenderInput draws the input box followed by the submit button and, while a
// query is running, the spinner.
func RenderInput(appModel models.AppModel) string {
	content := appModel.Input
	if content == "" {
		content = styles.PlaceholderStyle().Render(inputPlaceholder)
	} else if appModel.Focus == models.FocusInput {
		content += "▏"
	}
	box := styles.InputStyle(appModel.Width, appModel.Focus == models.FocusInput).Render(content)

	enabled := appModel.Query.SubmitEnabled || appModel.Resubmit
	button := styles.ButtonStyle(appModel.Focus == models.FocusSubmit, enabled).Render("Ask")

	row := button
	if appModel.Query.Loading {
		row = lipgloss.JoinHorizontal(lipgloss.Center, button,
			styles.SpinnerStyle().Render(spinnerFrame(appModel.LoadingDots)))
	}

	return box + "\n" + row + "\n"
}

func spinnerFrame(dots int) string {
	return "Translating" + strings.Repeat(".", dots)
}
