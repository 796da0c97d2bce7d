package core

import (
	"sync"

	"github.com/Rorical/WolofBridge/internal/models"
)

// ViewState is the single source of truth for the query UI. It implements
// every handle of a Bindings set and reports each change as a snapshot.
type ViewState struct {
	mu       sync.Mutex
	state    models.UIState
	input    string
	onChange func(models.UIState)
}

func NewViewState() *ViewState {
	return &ViewState{state: models.InitialUIState()}
}

// OnChange registers the observer called after every mutation. The observer
// runs with the state locked, so snapshots are delivered in mutation order;
// it must not call back into the ViewState.
func (vs *ViewState) OnChange(fn func(models.UIState)) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.onChange = fn
}

func (vs *ViewState) Snapshot() models.UIState {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.state
}

// SetInput records the text of the input field.
func (vs *ViewState) SetInput(input string) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.input = input
}

func (vs *ViewState) update(mutate func(*models.UIState)) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	mutate(&vs.state)
	if vs.onChange != nil {
		vs.onChange(vs.state)
	}
}

// Bindings returns a complete binding set backed by this state.
func (vs *ViewState) Bindings() *Bindings {
	b := &Bindings{
		Input:   inputHandle{vs},
		Submit:  submitHandle{vs},
		Spinner: spinnerHandle{vs},
		Error:   errorHandle{vs},
		Results: resultsHandle{vs},
	}
	for _, f := range models.ResponseFields {
		b.Fields[f] = fieldHandle{vs: vs, field: f}
	}
	return b
}

type inputHandle struct{ vs *ViewState }

func (h inputHandle) Value() string {
	h.vs.mu.Lock()
	defer h.vs.mu.Unlock()
	return h.vs.input
}

type submitHandle struct{ vs *ViewState }

func (h submitHandle) SetEnabled(enabled bool) {
	h.vs.update(func(s *models.UIState) { s.SubmitEnabled = enabled })
}

type spinnerHandle struct{ vs *ViewState }

func (h spinnerHandle) SetVisible(visible bool) {
	h.vs.update(func(s *models.UIState) { s.Loading = visible })
}

type errorHandle struct{ vs *ViewState }

func (h errorHandle) SetVisible(visible bool) {
	h.vs.update(func(s *models.UIState) { s.ErrorVisible = visible })
}

func (h errorHandle) SetText(text string) {
	h.vs.update(func(s *models.UIState) { s.ErrorMessage = text })
}

type resultsHandle struct{ vs *ViewState }

func (h resultsHandle) SetVisible(visible bool) {
	h.vs.update(func(s *models.UIState) { s.ResultsVisible = visible })
}

type fieldHandle struct {
	vs    *ViewState
	field models.Field
}

func (h fieldHandle) SetText(text string) {
	h.vs.update(func(s *models.UIState) { s.Fields[h.field] = text })
}
