// Package report renders a model.Report for output.
//
// This package contains writers for different output formats:
//   - SimpleWriter: the plain text layout printed to the terminal
//   - JSONWriter: structured JSON output for tool integration
//   - MarkdownWriter: tables and a chart for sharing in documents
//
// SimpleWriter can also emit one section at a time, so the text report
// appears as soon as each query finishes. The other writers need every
// section and are used once the report is complete.
package report
