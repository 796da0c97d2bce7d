package eventbus

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/WolofBridge/internal/models"
)

func TestEventBus_RoundTrip(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	require.NoError(t, eb.SendToCore(SubmitQueryEvent{Input: "Nanga def?"}))
	require.NoError(t, eb.SendToUI(StateUpdateEvent{State: models.InitialUIState()}))

	assert.Equal(t, SubmitQueryEvent{Input: "Nanga def?"}, <-eb.UIToCore())
	assert.Equal(t, StateUpdateEvent{State: models.InitialUIState()}, <-eb.CoreToUI())
}

func TestEventBus_SendToUIDropsOldest(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	for i := 0; i < cap(eb.coreToUI)+10; i++ {
		state := models.InitialUIState()
		state.ErrorMessage = string(rune('a' + i%26))
		require.NoError(t, eb.SendToUI(StateUpdateEvent{State: state}))
	}

	assert.Len(t, eb.coreToUI, cap(eb.coreToUI))
	var last CoreEvent
	for len(eb.coreToUI) > 0 {
		last = <-eb.coreToUI
	}
	want := string(rune('a' + (cap(eb.coreToUI)+9)%26))
	assert.Equal(t, want, last.(StateUpdateEvent).State.ErrorMessage)
}

func TestEventBus_FullCoreQueueOpensCircuit(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(e EventBusError) { reported = append(reported, e) })

	for i := 0; i < cap(eb.uiToCore); i++ {
		require.NoError(t, eb.SendToCore(SubmitQueryEvent{}))
	}
	for i := 0; i < 5; i++ {
		assert.Error(t, eb.SendToCore(SubmitQueryEvent{}))
	}

	assert.Equal(t, CircuitOpen, eb.GetCircuitBreakerState())
	assert.ErrorIs(t, eb.SendToCore(SubmitQueryEvent{}), ErrCircuitOpen)
	require.NotEmpty(t, reported)
	assert.Equal(t, "SendToCore", reported[0].Operation)
}

func TestEventBus_CloseIsIdempotent(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	eb.Close()

	assert.ErrorIs(t, eb.SendToCore(SubmitQueryEvent{}), ErrClosed)
	assert.ErrorIs(t, eb.SendToUI(StateUpdateEvent{}), ErrClosed)
	_, ok := <-eb.UIToCore()
	assert.False(t, ok)
}

func TestCircuitBreaker_HalfOpenAfterTimeout(t *testing.T) {
	now := time.Unix(1000, 0)
	cb := NewCircuitBreaker(2, time.Minute)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	assert.False(t, cb.IsOpen())
	cb.RecordFailure()
	assert.True(t, cb.IsOpen())

	now = now.Add(2 * time.Minute)
	assert.False(t, cb.IsOpen())
	assert.Equal(t, CircuitHalfOpen, cb.State())

	cb.RecordFailure()
	assert.Equal(t, CircuitOpen, cb.State())

	now = now.Add(2 * time.Minute)
	cb.IsOpen()
	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestEventBusError_Unwrap(t *testing.T) {
	e := EventBusError{Operation: "SendToCore", Err: ErrCircuitOpen}

	assert.True(t, errors.Is(e, ErrCircuitOpen))
	assert.Equal(t, "SendToCore: circuit breaker is open", e.Error())
}
