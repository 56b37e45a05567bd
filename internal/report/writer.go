package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/logsanalysis/internal/model"
)

// Format names an output format.
type Format string

const (
	// FormatText is the plain text layout.
	FormatText Format = "text"

	// FormatJSON is pretty-printed JSON.
	FormatJSON Format = "json"

	// FormatMarkdown is a GitHub-flavored Markdown document.
	FormatMarkdown Format = "markdown"
)

// ErrUnknownFormat is returned for a format name that has no writer.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatMarkdown}
}

// ParseFormat converts a user supplied name into a Format.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.Report) (int, error)
}

// SectionWriter is a Writer that can also output a single section.
type SectionWriter interface {
	Writer

	// WriteSection outputs one section of the report.
	WriteSection(section model.Section, report *model.Report) (int, error)
}

// NewWriter returns the writer for the given format.
func NewWriter(format Format, output io.Writer) (Writer, error) {
	switch format {
	case FormatText, "":
		return NewSimpleWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
