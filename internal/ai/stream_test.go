package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamSplitter_SeparatorInOneChunk(t *testing.T) {
	var sp StreamSplitter

	delta := sp.Write("All vitals look normal." + Separator + `{"alerts": []}`)
	assert.Equal(t, "All vitals look normal.", delta)
	assert.True(t, sp.SeparatorFound())

	summary, payload := sp.Close()
	assert.Equal(t, "All vitals look normal.", summary)
	assert.Equal(t, `{"alerts": []}`, payload)
}

func TestStreamSplitter_SeparatorSplitAcrossChunks(t *testing.T) {
	var sp StreamSplitter

	first := sp.Write("Summary text |||")
	second := sp.Write("---||| payload")

	// The partial separator must be held back, not displayed
	assert.Equal(t, "Summary text ", first)
	assert.Equal(t, "", second)

	summary, payload := sp.Close()
	assert.Equal(t, "Summary text ", summary)
	assert.Equal(t, " payload", payload)
}

func TestStreamSplitter_SeparatorCharByChar(t *testing.T) {
	var sp StreamSplitter

	var emitted string
	emitted += sp.Write("ok")
	for _, r := range Separator {
		emitted += sp.Write(string(r))
	}
	emitted += sp.Write(`{"alerts":[]}`)

	assert.Equal(t, "ok", emitted)
	summary, payload := sp.Close()
	assert.Equal(t, "ok", summary)
	assert.Equal(t, `{"alerts":[]}`, payload)
}

func TestStreamSplitter_NoSeparator(t *testing.T) {
	var sp StreamSplitter

	first := sp.Write("Everything ")
	second := sp.Write("looks fine.")

	assert.Equal(t, "Everything ", first)
	assert.Equal(t, "looks fine.", second)

	summary, payload := sp.Close()
	assert.Equal(t, "Everything looks fine.", summary)
	assert.Empty(t, payload)
	assert.False(t, sp.SeparatorFound())
}

func TestStreamSplitter_FalseSeparatorPrefixFlushedOnClose(t *testing.T) {
	var sp StreamSplitter

	delta := sp.Write("Watch out ||")
	assert.Equal(t, "Watch out ", delta)

	// The stream ends while a possible separator prefix is held back;
	// Close must flush it into the summary.
	summary, payload := sp.Close()
	assert.Equal(t, "Watch out ||", summary)
	assert.Empty(t, payload)
}

func TestStreamSplitter_PipesInsideSummary(t *testing.T) {
	var sp StreamSplitter

	sp.Write("a || b ")
	sp.Write("| c")

	summary, _ := sp.Close()
	assert.Equal(t, "a || b | c", summary)
}

func TestStreamSplitter_PayloadAfterSeparatorSpansChunks(t *testing.T) {
	var sp StreamSplitter

	sp.Write("short" + Separator)
	assert.Equal(t, "", sp.Write(`{"alerts": [`))
	assert.Equal(t, "", sp.Write(`]}`))

	summary, payload := sp.Close()
	assert.Equal(t, "short", summary)
	assert.Equal(t, `{"alerts": []}`, payload)
}

func TestStreamSplitter_EmptyStream(t *testing.T) {
	var sp StreamSplitter
	summary, payload := sp.Close()
	assert.Empty(t, summary)
	assert.Empty(t, payload)
}

func TestSeparatorPrefixLen(t *testing.T) {
	tests := []struct {
		buf  string
		want int
	}{
		{"text", 0},
		{"text|", 1},
		{"text|||", 3},
		{"text|||-", 4},
		{"text|||---||", 8},
		{"|||---||", 8},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.buf, func(t *testing.T) {
			require.Equal(t, tt.want, separatorPrefixLen(tt.buf))
		})
	}
}
