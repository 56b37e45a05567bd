package report

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/nao1215/logsanalysis/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in JSON format.
func (w *JSONWriter) Write(report *model.Report) (int, error) {
	var data []byte
	var err error

	doc := newJSONReport(report)
	if w.indent {
		data, err = json.MarshalIndent(doc, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONReport is the document written by JSONWriter.
type JSONReport struct {
	GeneratedAt    time.Time            `json:"generated_at"`
	TopArticles    []model.ArticleViews `json:"top_articles"`
	PopularAuthors []model.AuthorViews  `json:"popular_authors"`
	ErrorDays      []JSONErrorDay       `json:"error_days"`
}

// JSONErrorDay is one row of the error days report with the rate spelled out.
type JSONErrorDay struct {
	// Date is the calendar day in 2006-01-02 form.
	Date         string  `json:"date"`
	Requests     int64   `json:"requests"`
	Errors       int64   `json:"errors"`
	ErrorPercent float64 `json:"error_percent"`
}

func newJSONReport(report *model.Report) JSONReport {
	doc := JSONReport{
		GeneratedAt:    report.GeneratedAt.UTC(),
		TopArticles:    report.TopArticles,
		PopularAuthors: report.PopularAuthors,
		ErrorDays:      make([]JSONErrorDay, 0, len(report.ErrorDays)),
	}
	if doc.TopArticles == nil {
		doc.TopArticles = []model.ArticleViews{}
	}
	if doc.PopularAuthors == nil {
		doc.PopularAuthors = []model.AuthorViews{}
	}
	for _, d := range report.ErrorDays {
		doc.ErrorDays = append(doc.ErrorDays, JSONErrorDay{
			Date:         d.Date.Format(model.DayLayout),
			Requests:     d.Requests,
			Errors:       d.Errors,
			ErrorPercent: math.Round(d.Percent()*100) / 100,
		})
	}
	return doc
}
