package core

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Rorical/WolofBridge/internal/eventbus"
	"github.com/Rorical/WolofBridge/internal/models"
)

// QueryService runs the controller behind the event bus. Each submission
// runs in its own goroutine; overlapping submissions are handled by the
// controller's request policy.
type QueryService struct {
	controller *Controller
	state      *ViewState
	bindings   *Bindings
	boundary   *Boundary
	eventBus   *eventbus.EventBus
	logger     *zap.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

func NewQueryService(controller *Controller, eb *eventbus.EventBus, logger *zap.Logger) *QueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	state := NewViewState()
	bindings := state.Bindings()
	ctx, cancel := context.WithCancel(context.Background())

	qs := &QueryService{
		controller: controller,
		state:      state,
		bindings:   bindings,
		boundary:   NewBoundary(bindings, logger),
		eventBus:   eb,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}

	state.OnChange(qs.pushStateToUI)
	eb.SetErrorCallback(func(err eventbus.EventBusError) {
		// the UI path itself is failing, so there is nowhere to draw this
		logger.Error("Event bus failure", zap.String("operation", err.Operation), zap.Error(err.Err))
	})

	return qs
}

// Start runs the core logic in a goroutine
func (qs *QueryService) Start() {
	qs.pushStateToUI(qs.state.Snapshot())
	go func() {
		defer qs.boundary.Recover()
		qs.eventLoop()
	}()
}

// Stop cancels outstanding calls and waits for their goroutines.
func (qs *QueryService) Stop() {
	qs.cancel()
	qs.wg.Wait()
}

func (qs *QueryService) eventLoop() {
	for {
		select {
		case <-qs.ctx.Done():
			return
		case event, ok := <-qs.eventBus.UIToCore():
			if !ok {
				return
			}
			qs.handleUIEvent(event)
		}
	}
}

func (qs *QueryService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SubmitQueryEvent:
		qs.state.SetInput(e.Input)
		raw := qs.bindings.Input.Value()

		qs.wg.Add(1)
		qs.boundary.Go(func() {
			defer qs.wg.Done()
			_ = qs.controller.Submit(qs.ctx, raw, qs.bindings)
		})
	default:
		qs.logger.Warn("Ignoring unknown UI event")
	}
}

func (qs *QueryService) pushStateToUI(state models.UIState) {
	// failures are reported through the bus error callback
	_ = qs.eventBus.SendToUI(eventbus.StateUpdateEvent{State: state})
}

// State exposes the view state backing the bindings.
func (qs *QueryService) State() *ViewState {
	return qs.state
}

// Boundary exposes the last-resort handler for out-of-band goroutines.
func (qs *QueryService) Boundary() *Boundary {
	return qs.boundary
}

func (qs *QueryService) IsReady() bool {
	return qs.bindings.Validate() == nil
}
