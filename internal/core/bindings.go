package core

import "github.com/Rorical/WolofBridge/internal/models"

// InputSource yields the raw text typed by the user.
type InputSource interface {
	Value() string
}

// Trigger is the submit control.
type Trigger interface {
	SetEnabled(enabled bool)
}

// Region is an area that can be shown or hidden.
type Region interface {
	SetVisible(visible bool)
}

// TextRegion is a region that displays a message.
type TextRegion interface {
	Region
	SetText(text string)
}

// TextSink displays a single result field.
type TextSink interface {
	SetText(text string)
}

// Bindings is the fixed set of UI handles the controller reads from and writes to.
// It is built once at startup and passed to every controller call.
type Bindings struct {
	Input   InputSource
	Submit  Trigger
	Spinner Region
	Error   TextRegion
	Results Region
	Fields  [4]TextSink // indexed by models.Field
}

// Validate reports every missing handle as an INITIALIZATION_ERROR.
func (b *Bindings) Validate() error {
	if b == nil {
		return NewInitializationError([]string{"bindings"})
	}

	var missing []string
	if b.Input == nil {
		missing = append(missing, "query-input")
	}
	if b.Submit == nil {
		missing = append(missing, "submit-button")
	}
	if b.Spinner == nil {
		missing = append(missing, "loading-spinner")
	}
	if b.Error == nil {
		missing = append(missing, "error-message")
	}
	if b.Results == nil {
		missing = append(missing, "results")
	}
	for _, f := range models.ResponseFields {
		if b.Fields[f] == nil {
			missing = append(missing, f.Key())
		}
	}

	if len(missing) > 0 {
		return NewInitializationError(missing)
	}
	return nil
}

func (b *Bindings) showError(message string) {
	b.Error.SetText(message)
	b.Error.SetVisible(true)
	b.Results.SetVisible(false)
}

func (b *Bindings) clearError() {
	b.Error.SetText("")
	b.Error.SetVisible(false)
}

func (b *Bindings) setLoading(loading bool) {
	b.Submit.SetEnabled(!loading)
	b.Spinner.SetVisible(loading)
}

func (b *Bindings) render(resp models.QueryResponse) {
	for _, f := range models.ResponseFields {
		v := resp.Get(f)
		if v == "" {
			v = models.NoResponsePlaceholder
		}
		b.Fields[f].SetText(v)
	}
	b.clearError()
	b.Results.SetVisible(true)
}
