package core

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/WolofBridge/internal/eventbus"
	"github.com/Rorical/WolofBridge/internal/models"
)

func TestBoundary_HandleShowsErrorAndClearsLoading(t *testing.T) {
	state := NewViewState()
	b := state.Bindings()
	b.Spinner.SetVisible(true)
	b.Submit.SetEnabled(false)
	b.Results.SetVisible(true)

	NewBoundary(b, nil).Handle(errors.New("background failure"))

	s := state.Snapshot()
	assert.Equal(t, "background failure", s.ErrorMessage)
	assert.True(t, s.ErrorVisible)
	assert.False(t, s.ResultsVisible)
	assert.False(t, s.Loading)
	assert.True(t, s.SubmitEnabled)
}

func TestBoundary_GoRecoversPanics(t *testing.T) {
	state := NewViewState()
	done := make(chan struct{})
	state.OnChange(func(s models.UIState) {
		if s.ErrorVisible {
			select {
			case <-done:
			default:
				close(done)
			}
		}
	})

	NewBoundary(state.Bindings(), nil).Go(func() {
		panic("out of band")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("panic was not reported")
	}
	assert.Contains(t, state.Snapshot().ErrorMessage, "out of band")
}

func TestBoundary_IncompleteBindingsDoNotPanic(t *testing.T) {
	region := &textRegion{}

	assert.NotPanics(t, func() {
		NewBoundary(&Bindings{Error: region}, nil).Handle(errors.New("x"))
		NewBoundary(nil, nil).Handle(errors.New("y"))
	})
	assert.Equal(t, "x", region.text)
	assert.True(t, region.visible)
}

func TestViewState_BindingsAreComplete(t *testing.T) {
	assert.NoError(t, NewViewState().Bindings().Validate())
}

func TestViewState_RenderUsesPlaceholder(t *testing.T) {
	state := NewViewState()
	b := state.Bindings()

	b.render(models.QueryResponse{OriginalQuery: "Nanga def?"})

	s := state.Snapshot()
	assert.True(t, s.ResultsVisible)
	assert.Equal(t, "Nanga def?", s.Fields[models.OriginalQuery])
	assert.Equal(t, models.NoResponsePlaceholder, s.Fields[models.FrenchQuery])
	assert.Equal(t, models.NoResponsePlaceholder, s.Fields[models.WolofResponse])
}

type staticProcessor struct{ body string }

func (p staticProcessor) Process(context.Context, models.QueryRequest) (json.RawMessage, error) {
	return json.RawMessage(p.body), nil
}

func TestQueryService_SubmissionFromBusUpdatesUI(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()

	qs := NewQueryService(NewController(staticProcessor{validBody}), eb, nil)
	require.True(t, qs.IsReady())
	qs.Start()
	defer qs.Stop()

	require.NoError(t, eb.SendToCore(eventbus.SubmitQueryEvent{Input: "Nanga def?"}))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-eb.CoreToUI():
			update, ok := event.(eventbus.StateUpdateEvent)
			require.True(t, ok)
			if update.State.ResultsVisible && !update.State.Loading {
				assert.True(t, update.State.SubmitEnabled)
				assert.Equal(t, "Mangi fi rekk", update.State.Fields[models.WolofResponse])
				return
			}
		case <-deadline:
			t.Fatal("no result snapshot received")
		}
	}
}
