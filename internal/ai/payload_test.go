package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthsense/healthsense/internal/types"
)

func TestExtractAlerts_DirectJSON(t *testing.T) {
	payload := `{"alerts": [{"title": "High heart rate", "detail": "Resting HR above 100", "risk": "Moderate"}]}`

	out := ExtractAlerts(payload)

	require.Len(t, out, 1)
	assert.Equal(t, "High heart rate", out[0].Title)
	assert.Equal(t, types.RiskModerate, out[0].Risk)
}

func TestExtractAlerts_CodeFenced(t *testing.T) {
	payload := "```json\n{\"alerts\": [{\"title\": \"Low SpO2\", \"detail\": \"Below 95%\", \"risk\": \"Critical\"}]}\n```"

	out := ExtractAlerts(payload)

	require.Len(t, out, 1)
	assert.Equal(t, "Low SpO2", out[0].Title)
}

func TestExtractAlerts_SurroundingProse(t *testing.T) {
	payload := `Here are the alerts: {"alerts": [{"title": "A", "detail": "d", "risk": "Low"}]} hope that helps`

	out := ExtractAlerts(payload)

	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].Title)
}

func TestExtractAlerts_TrailingComma(t *testing.T) {
	payload := `{"alerts": [{"title": "A", "detail": "d", "risk": "Low"},]}`

	out := ExtractAlerts(payload)

	require.Len(t, out, 1)
}

func TestExtractAlerts_EmptyArray(t *testing.T) {
	assert.Empty(t, ExtractAlerts(`{"alerts": []}`))
}

func TestExtractAlerts_Garbage(t *testing.T) {
	assert.Nil(t, ExtractAlerts("the model forgot the json entirely"))
	assert.Nil(t, ExtractAlerts(""))
	assert.Nil(t, ExtractAlerts("   "))
}

func TestExtractAlerts_DropsMalformedEntries(t *testing.T) {
	payload := `{"alerts": [
		{"title": "", "detail": "no title", "risk": "Low"},
		{"title": "Bad risk", "detail": "d", "risk": "Severe"},
		{"title": "Good", "detail": "d", "risk": "Critical"}
	]}`

	out := ExtractAlerts(payload)

	require.Len(t, out, 1)
	assert.Equal(t, "Good", out[0].Title)
}
