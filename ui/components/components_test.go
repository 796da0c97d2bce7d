package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rorical/WolofBridge/internal/models"
)

func TestRenderResults_HiddenUntilVisible(t *testing.T) {
	state := models.InitialUIState()
	state.Fields[models.WolofResponse] = "Mangi fi rekk"

	assert.Empty(t, RenderResults(state, 80))

	state.ResultsVisible = true
	out := RenderResults(state, 80)
	assert.Contains(t, out, "Mangi fi rekk")
	for _, f := range models.ResponseFields {
		assert.Contains(t, out, f.Label())
	}
}

func TestRenderError(t *testing.T) {
	state := models.InitialUIState()
	state.ErrorMessage = "model unavailable"

	assert.Empty(t, RenderError(state, 80))

	state.ErrorVisible = true
	assert.Contains(t, RenderError(state, 80), "model unavailable")
}

func TestRenderInput_ShowsSpinnerWhileLoading(t *testing.T) {
	m := models.AppModel{Query: models.InitialUIState(), Input: "Nanga def?"}

	assert.NotContains(t, RenderInput(m), "Translating")

	m.Query.Loading = true
	m.Query.SubmitEnabled = false
	m.LoadingDots = 2
	out := RenderInput(m)
	assert.Contains(t, out, "Nanga def?")
	assert.Contains(t, out, "Translating..")
}

func TestRenderStatus(t *testing.T) {
	assert.Contains(t, RenderStatus("Processing", true, 3, 120), "Processing...")
}
