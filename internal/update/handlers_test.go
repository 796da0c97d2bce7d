package update

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/WolofBridge/internal/eventbus"
	"github.com/Rorical/WolofBridge/internal/models"
)

func newModel() *models.AppModel {
	return &models.AppModel{
		Query: models.InitialUIState(),
		Ready: true,
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func pending(eb *eventbus.EventBus) []eventbus.UIEvent {
	var events []eventbus.UIEvent
	for {
		select {
		case e := <-eb.UIToCore():
			events = append(events, e)
		default:
			return events
		}
	}
}

func TestTypingAndEditing(t *testing.T) {
	m := newModel()
	eb := eventbus.NewEventBus()
	defer eb.Close()

	HandleKeyMsgWithEventBus(m, runes("Nanga"), eb)
	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, eb)
	HandleKeyMsgWithEventBus(m, runes("deëf"), eb)
	assert.Equal(t, "Nanga deëf", m.Input)

	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyBackspace}, eb)
	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyBackspace}, eb)
	assert.Equal(t, "Nanga de", m.Input)

	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, eb)
	assert.Equal(t, "Nanga de", m.Input)

	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyCtrlU}, eb)
	assert.Empty(t, m.Input)
}

func TestEnterSubmitsInput(t *testing.T) {
	m := newModel()
	m.Input = "Nanga def?"
	eb := eventbus.NewEventBus()
	defer eb.Close()

	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyEnter}, eb)

	events := pending(eb)
	require.Len(t, events, 1)
	assert.Equal(t, eventbus.SubmitQueryEvent{Input: "Nanga def?"}, events[0])
	assert.Equal(t, "Nanga def?", m.Input)
}

func TestAltEnterNeitherSubmitsNorInserts(t *testing.T) {
	for _, focus := range []models.Focus{models.FocusInput, models.FocusSubmit} {
		m := newModel()
		m.Input = "Nanga def?"
		m.Focus = focus
		eb := eventbus.NewEventBus()

		cmd := HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyEnter, Alt: true}, eb)

		assert.Nil(t, cmd)
		assert.Empty(t, pending(eb))
		assert.Equal(t, "Nanga def?", m.Input)
		assert.False(t, m.Query.ErrorVisible)
		eb.Close()
	}
}

func TestSpaceOnButtonSubmits(t *testing.T) {
	m := newModel()
	m.Input = "Nanga def?"
	eb := eventbus.NewEventBus()
	defer eb.Close()

	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyTab}, eb)
	assert.Equal(t, models.FocusSubmit, m.Focus)

	HandleKeyMsgWithEventBus(m, runes("q"), eb)
	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, eb)

	assert.Equal(t, "Nanga def?", m.Input)
	assert.Len(t, pending(eb), 1)

	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyShiftTab}, eb)
	assert.Equal(t, models.FocusInput, m.Focus)
}

func TestDisabledTriggerIsInert(t *testing.T) {
	m := newModel()
	m.Input = "Nanga def?"
	m.Query.Loading = true
	m.Query.SubmitEnabled = false
	eb := eventbus.NewEventBus()
	defer eb.Close()

	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyEnter}, eb)
	assert.Empty(t, pending(eb))

	m.Resubmit = true
	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyEnter}, eb)
	assert.Len(t, pending(eb), 1)
}

func TestSubmitWithoutServiceShowsError(t *testing.T) {
	m := newModel()
	m.Ready = false
	m.Query.ResultsVisible = true
	eb := eventbus.NewEventBus()
	defer eb.Close()

	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyEnter}, eb)

	assert.Empty(t, pending(eb))
	assert.True(t, m.Query.ErrorVisible)
	assert.False(t, m.Query.ResultsVisible)
	assert.Equal(t, "Query service not available", m.Query.ErrorMessage)
	assert.Equal(t, "Error", m.Status)
}

func TestSubmitOnClosedBusShowsError(t *testing.T) {
	m := newModel()
	eb := eventbus.NewEventBus()
	eb.Close()

	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyEnter}, eb)

	assert.Contains(t, m.Query.ErrorMessage, "event bus is closed")
}

func TestQuitKeys(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()

	for _, key := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		cmd := HandleKeyMsgWithEventBus(newModel(), key, eb)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestHandleCoreEventSetsStatus(t *testing.T) {
	tests := []struct {
		name  string
		state models.UIState
		want  string
	}{
		{"loading", models.UIState{Loading: true}, "Processing"},
		{"error", models.UIState{SubmitEnabled: true, ErrorVisible: true, ErrorMessage: "boom"}, "Error"},
		{"results", models.UIState{SubmitEnabled: true, ResultsVisible: true}, "Ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel()
			HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{State: tt.state}})
			assert.Equal(t, tt.state, m.Query)
			assert.Equal(t, tt.want, m.Status)
		})
	}
}

func TestHandleUpdateRoutesMessages(t *testing.T) {
	m := newModel()
	eb := eventbus.NewEventBus()
	defer eb.Close()

	HandleUpdateWithEventBus(m, tea.WindowSizeMsg{Width: 120, Height: 40}, eb)
	assert.Equal(t, 120, m.Width)
	assert.Equal(t, 40, m.Height)

	m.Query.Loading = true
	cmd := HandleUpdateWithEventBus(m, TickMsg{}, eb)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.LoadingDots)

	assert.Nil(t, HandleUpdateWithEventBus(m, "unknown", eb))
}
