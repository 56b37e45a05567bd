package report

import (
	"fmt"
	"io"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/logsanalysis/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter

	printer *message.Printer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("News Site Log Analysis")
	md.PlainText("")
	md.PlainTextf("Generated at %s", report.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	md.PlainText("")

	w.writeArticles(md, report)
	w.writeAuthors(md, report)
	w.writeErrorDays(md, report)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeArticles(md *markdown.Markdown, report *model.Report) {
	md.H2("Most Popular Articles")
	md.PlainText("")

	if len(report.TopArticles) == 0 {
		md.PlainText("No article views recorded.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.TopArticles))
	for i, a := range report.TopArticles {
		rows[i] = []string{w.printer.Sprintf("%d", i+1), a.Title, w.printer.Sprintf("%d", a.Views)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Title", "Views"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeAuthors(md *markdown.Markdown, report *model.Report) {
	md.H2("Most Popular Authors")
	md.PlainText("")

	if len(report.PopularAuthors) == 0 {
		md.PlainText("No author views recorded.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.PopularAuthors))
	for i, a := range report.PopularAuthors {
		rows[i] = []string{a.Name, w.printer.Sprintf("%d", a.Views)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Author", "Views"},
		Rows:   rows,
	})
	md.PlainText("")

	if report.TotalAuthorViews() > 0 {
		w.writePieChart(md, report)
	}
}

// writePieChart writes a mermaid pie chart of the author view share.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Views by Author"),
		piechart.WithShowData(true),
	)
	for _, a := range report.PopularAuthors {
		if a.Views > 0 {
			chart.LabelAndIntValue(a.Name, uint64(a.Views))
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeErrorDays(md *markdown.Markdown, report *model.Report) {
	md.H2(fmt.Sprintf("Days With More Than %d%% Errors", model.ErrorThresholdPercent))
	md.PlainText("")

	if !report.HasErrorDays() {
		md.Tip("No day exceeded the error threshold.")
		md.PlainText("")
		return
	}

	md.Warningf("%d day(s) exceeded the error threshold.", len(report.ErrorDays))
	md.PlainText("")

	rows := make([][]string, len(report.ErrorDays))
	for i, d := range report.ErrorDays {
		rows[i] = []string{
			d.LongDate(),
			w.printer.Sprintf("%d", d.Requests),
			w.printer.Sprintf("%d", d.Errors),
			fmt.Sprintf("%.2f%%", d.Percent()),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Date", "Requests", "Errors", "Error Rate"},
		Rows:   rows,
	})
	md.PlainText("")
}
