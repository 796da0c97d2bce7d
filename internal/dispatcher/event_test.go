package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/WolofBridge/internal/eventbus"
	"github.com/Rorical/WolofBridge/internal/models"
	"github.com/Rorical/WolofBridge/internal/update"
)

func TestListenForCoreEvents_CoalescesToNewest(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	ed := NewEventDispatcher(eb)
	defer ed.Stop()

	loading := models.UIState{Loading: true}
	done := models.UIState{SubmitEnabled: true, ResultsVisible: true}
	require.NoError(t, eb.SendToUI(eventbus.StateUpdateEvent{State: loading}))
	require.NoError(t, eb.SendToUI(eventbus.StateUpdateEvent{State: done}))

	msg := ed.ListenForCoreEvents()()

	coreMsg, ok := msg.(update.CoreEventMsg)
	require.True(t, ok)
	assert.Equal(t, eventbus.StateUpdateEvent{State: done}, coreMsg.Event)
	assert.Same(t, eb, ed.GetEventBus())
}

func TestListenForCoreEvents_StopsOnShutdown(t *testing.T) {
	eb := eventbus.NewEventBus()
	ed := NewEventDispatcher(eb)

	ed.Stop()
	assert.Nil(t, ed.ListenForCoreEvents()())

	eb.Close()
	assert.Nil(t, NewEventDispatcher(eb).ListenForCoreEvents()())
}
