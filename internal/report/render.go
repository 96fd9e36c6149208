package report

import (
	"fmt"
	"io"
	"strings"
)

// Renderer turns an assembled document into bytes on a writer. PDF, HTML,
// and other formats plug in here; the builder never knows the output shape.
type Renderer interface {
	Render(doc *Document, w io.Writer) error
}

// TextRenderer writes the report as plain text, one section per metric
type TextRenderer struct{}

// Render writes the document to w
func (TextRenderer) Render(doc *Document, w io.Writer) error {
	var b strings.Builder

	rule := strings.Repeat("=", len(doc.Title))
	fmt.Fprintf(&b, "%s\n%s\n\n", doc.Title, rule)
	fmt.Fprintf(&b, "Patient: %s\n", doc.Patient)
	fmt.Fprintf(&b, "Date: %s\n\n", doc.Date)

	if len(doc.Sections) == 0 {
		b.WriteString("No recorded data to report.\n\n")
	}

	for _, section := range doc.Sections {
		title := fmt.Sprintf("%s Analysis", section.Metric)
		fmt.Fprintf(&b, "%s\n%s\n", title, strings.Repeat("-", len(title)))
		fmt.Fprintf(&b, "%-14s %-10s %-10s %-10s\n", "Period", "Average", "Minimum", "Maximum")
		for _, stats := range []PeriodStats{section.Weekly, section.Monthly} {
			fmt.Fprintf(&b, "%-14s %-10s %-10s %-10s\n", stats.Label, stats.Average, stats.Min, stats.Max)
		}
		fmt.Fprintf(&b, "\nInterpretation:\n%s\n\n", section.Interpretation)
	}

	b.WriteString(doc.Disclaimer)
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
