// Package console binds the query controller to plain output streams for
// one-shot, non-interactive use.
package console

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Rorical/WolofBridge/internal/core"
	"github.com/Rorical/WolofBridge/internal/models"
	"github.com/Rorical/WolofBridge/ui/markdown"
	"github.com/Rorical/WolofBridge/ui/styles"
)

// Console prints results to out and progress and errors to errOut.
type Console struct {
	out    io.Writer
	errOut io.Writer
	input  string
	json   bool

	errText string
	fields  [4]string
}

func New(out, errOut io.Writer, input string, asJSON bool) *Console {
	return &Console{out: out, errOut: errOut, input: input, json: asJSON}
}

func (c *Console) Bindings() *core.Bindings {
	b := &core.Bindings{
		Input:   inputHandle{c},
		Submit:  noopTrigger{},
		Spinner: spinnerHandle{c},
		Error:   errorHandle{c},
		Results: resultsHandle{c},
	}
	for _, f := range models.ResponseFields {
		b.Fields[f] = fieldHandle{c: c, field: f}
	}
	return b
}

func (c *Console) printResults() {
	if c.json {
		resp := models.QueryResponse{
			OriginalQuery:  c.fields[models.OriginalQuery],
			FrenchQuery:    c.fields[models.FrenchQuery],
			FrenchResponse: c.fields[models.FrenchResponse],
			WolofResponse:  c.fields[models.WolofResponse],
		}
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		_ = enc.Encode(resp)
		return
	}

	for _, f := range models.ResponseFields {
		wolof := f == models.OriginalQuery || f == models.WolofResponse
		fmt.Fprintln(c.out, styles.ResultLabelStyle().Render(f.Label()))
		fmt.Fprintln(c.out, styles.ResultStyle(0, wolof).Render(markdown.Render(c.fields[f])))
		fmt.Fprintln(c.out)
	}
}

type inputHandle struct{ c *Console }

func (h inputHandle) Value() string { return h.c.input }

type noopTrigger struct{}

func (noopTrigger) SetEnabled(bool) {}

type spinnerHandle struct{ c *Console }

func (h spinnerHandle) SetVisible(visible bool) {
	if visible {
		fmt.Fprintln(h.c.errOut, styles.HintStyle().Render("Translating..."))
	}
}

type errorHandle struct{ c *Console }

func (h errorHandle) SetText(text string) { h.c.errText = text }

func (h errorHandle) SetVisible(visible bool) {
	if visible && h.c.errText != "" {
		fmt.Fprintln(h.c.errOut, styles.ErrorStyle(0).Render("Error: "+h.c.errText))
	}
}

type resultsHandle struct{ c *Console }

func (h resultsHandle) SetVisible(visible bool) {
	if visible {
		h.c.printResults()
	}
}

type fieldHandle struct {
	c     *Console
	field models.Field
}

func (h fieldHandle) SetText(text string) { h.c.fields[h.field] = text }
