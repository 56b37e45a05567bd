package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/logsanalysis/internal/model"
)

// SeparatorWidth is the length of the dashed line between sections.
const SeparatorWidth = 70

// SimpleWriter outputs the plain text report.
//
// Each section is a header line followed by one indented line per row.
// Every section except the last is followed by a dashed separator line.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs every section in display order.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder
	for _, section := range model.Sections() {
		w.writeSection(&sb, section, report)
	}
	return io.WriteString(w.output, sb.String())
}

// WriteSection outputs a single section.
func (w *SimpleWriter) WriteSection(section model.Section, report *model.Report) (int, error) {
	var sb strings.Builder
	w.writeSection(&sb, section, report)
	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeSection(sb *strings.Builder, section model.Section, report *model.Report) {
	sb.WriteString(section.Title())
	sb.WriteString("\n")

	switch section {
	case model.SectionTopArticles:
		for _, a := range report.TopArticles {
			fmt.Fprintf(sb, "    %s - %d views\n", a.Title, a.Views)
		}
	case model.SectionPopularAuthors:
		for _, a := range report.PopularAuthors {
			fmt.Fprintf(sb, "    %s - %d views\n", a.Name, a.Views)
		}
	case model.SectionErrorDays:
		for _, d := range report.ErrorDays {
			fmt.Fprintf(sb, "    %s - %.2f%% errors\n", d.LongDate(), d.Percent())
		}
	}

	if !section.IsLast() {
		sb.WriteString(strings.Repeat("-", SeparatorWidth))
		sb.WriteString("\n")
	}
}
