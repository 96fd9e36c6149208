package ai

import (
	"strings"
)

// Separator divides the user-facing summary text from the trailing alerts
// JSON payload in a summary response.
const Separator = "|||---|||"

// EmergencyTag prefixes a summary the model judged highly critical
const EmergencyTag = "[EMERGENCY]"

// StreamSplitter incrementally divides a streamed response into the summary
// text before the separator and the payload after it. Each chunk is
// processed once: the splitter holds back only the shortest suffix that
// could still turn into the separator, so the summary delta it returns is
// safe to display immediately and the full buffer is never rescanned.
type StreamSplitter struct {
	summary strings.Builder
	payload strings.Builder
	carry   string
	found   bool
}

// Write feeds the next chunk and returns the portion that is confirmed
// summary text (empty once the separator has passed).
func (sp *StreamSplitter) Write(chunk string) string {
	if sp.found {
		sp.payload.WriteString(chunk)
		return ""
	}

	buf := sp.carry + chunk
	if idx := strings.Index(buf, Separator); idx >= 0 {
		sp.found = true
		sp.carry = ""
		sp.summary.WriteString(buf[:idx])
		sp.payload.WriteString(buf[idx+len(Separator):])
		return buf[:idx]
	}

	// Keep the longest tail that is a prefix of the separator; everything
	// before it cannot be part of a separator and is summary text.
	hold := separatorPrefixLen(buf)
	emit := buf[:len(buf)-hold]
	sp.carry = buf[len(buf)-hold:]
	sp.summary.WriteString(emit)
	return emit
}

// Close flushes any held-back tail (the stream ended mid-prefix) and
// returns the final summary text and payload.
func (sp *StreamSplitter) Close() (summary, payload string) {
	if !sp.found && sp.carry != "" {
		sp.summary.WriteString(sp.carry)
		sp.carry = ""
	}
	return sp.summary.String(), sp.payload.String()
}

// SeparatorFound reports whether the separator has been seen.
func (sp *StreamSplitter) SeparatorFound() bool {
	return sp.found
}

// separatorPrefixLen returns the length of the longest suffix of buf that is
// a proper prefix of the separator token.
func separatorPrefixLen(buf string) int {
	max := len(Separator) - 1
	if len(buf) < max {
		max = len(buf)
	}
	for k := max; k > 0; k-- {
		if strings.HasSuffix(buf, Separator[:k]) {
			return k
		}
	}
	return 0
}
