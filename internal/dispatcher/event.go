package dispatcher

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/WolofBridge/internal/eventbus"
	"github.com/Rorical/WolofBridge/internal/update"
)

// EventDispatcher handles routing events between core and UI
type EventDispatcher struct {
	eventBus *eventbus.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewEventDispatcher(eventBus *eventbus.EventBus) *EventDispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventDispatcher{
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (ed *EventDispatcher) Stop() {
	ed.cancel()
}

func (ed *EventDispatcher) GetEventBus() *eventbus.EventBus {
	return ed.eventBus
}

// ListenForCoreEvents waits for the next core event. Snapshots that queued up
// meanwhile are coalesced into the newest one.
func (ed *EventDispatcher) ListenForCoreEvents() tea.Cmd {
	return func() tea.Msg {
		var event eventbus.CoreEvent
		select {
		case <-ed.ctx.Done():
			return nil
		case e, ok := <-ed.eventBus.CoreToUI():
			if !ok {
				return nil
			}
			event = e
		}

		for {
			select {
			case e, ok := <-ed.eventBus.CoreToUI():
				if !ok {
					return update.CoreEventMsg{Event: event}
				}
				event = e
			default:
				return update.CoreEventMsg{Event: event}
			}
		}
	}
}
