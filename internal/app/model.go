package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/WolofBridge/internal/update"
	"github.com/Rorical/WolofBridge/ui/components"
)

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	eventBus := m.dispatcher.GetEventBus()
	cmd := update.HandleUpdateWithEventBus(&m.appModel, msg, eventBus)

	return m, cmd
}

func (m *AppModel) View() string {
	var b strings.Builder

	b.WriteString(components.RenderNotices(m.appModel.Notices))
	b.WriteString(components.RenderInput(m.appModel))
	b.WriteString("\n")
	b.WriteString(components.RenderError(m.appModel.Query, m.appModel.Width))
	b.WriteString(components.RenderResults(m.appModel.Query, m.appModel.Width))
	b.WriteString(components.RenderStatus(m.appModel.Status, m.appModel.Query.Loading, m.appModel.LoadingDots, m.appModel.Width))

	return b.String()
}
