package update

import (
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/WolofBridge/internal/eventbus"
	"github.com/Rorical/WolofBridge/internal/models"
)

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return tea.Quit
	case "tab", "shift+tab":
		if appModel.Focus == models.FocusInput {
			appModel.Focus = models.FocusSubmit
		} else {
			appModel.Focus = models.FocusInput
		}
	case "enter":
		// Enter submits from either widget; alt+enter arrives as a different key
		submit(appModel, eb)
	case " ":
		if appModel.Focus == models.FocusSubmit {
			submit(appModel, eb)
		} else {
			appModel.Input += " "
		}
	case "backspace":
		if appModel.Focus == models.FocusInput && len(appModel.Input) > 0 {
			_, size := utf8.DecodeLastRuneInString(appModel.Input)
			appModel.Input = appModel.Input[:len(appModel.Input)-size]
		}
	case "ctrl+u":
		if appModel.Focus == models.FocusInput {
			appModel.Input = ""
		}
	default:
		if keyMsg.Type == tea.KeyRunes && !keyMsg.Alt && appModel.Focus == models.FocusInput {
			appModel.Input += string(keyMsg.Runes)
		}
	}
	return nil
}

// submit forwards the input to the core. The trigger is inert while it is
// disabled, unless the profile lets a new query replace one in flight.
func submit(appModel *models.AppModel, eb *eventbus.EventBus) {
	if !appModel.Query.SubmitEnabled && !appModel.Resubmit {
		return
	}
	if !appModel.Ready {
		showLocalError(appModel, "Query service not available")
		return
	}
	if err := eb.SendToCore(eventbus.SubmitQueryEvent{Input: appModel.Input}); err != nil {
		showLocalError(appModel, "Error sending query: "+err.Error())
	}
}

// showLocalError mirrors the controller's error display for failures that
// happen before the core sees the submission.
func showLocalError(appModel *models.AppModel, message string) {
	appModel.Query.ErrorMessage = message
	appModel.Query.ErrorVisible = true
	appModel.Query.ResultsVisible = false
	appModel.Query.Loading = false
	appModel.Status = "Error"
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		appModel.Query = event.State

		switch {
		case event.State.Loading:
			appModel.Status = "Processing"
		case event.State.ErrorVisible:
			appModel.Status = "Error"
		default:
			appModel.Status = "Ready"
		}
	}

	return nil
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	// Only handle UI animations - loading dots
	if appModel.Query.Loading {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}
