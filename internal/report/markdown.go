package report

import (
	"io"

	"github.com/nao1215/markdown"
	"github.com/nao1215/mepower/internal/model"
)

// MarkdownWriter renders records as a markdown table.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that writes to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write renders the report. Street records go into one table; diagnostic
// records are listed below it.
func (w *MarkdownWriter) Write(records []model.OutageRecord) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("CMP Outage Report")
	md.PlainText("")

	if len(records) > 0 {
		md.PlainTextf("Updated: %s", records[0].OutageUpdate)
		md.PlainText("")
	}

	var (
		rows  [][]string
		notes []string
	)
	for _, r := range records {
		if r.IsDiagnostic() {
			notes = append(notes, diagnosticLine(r))
			continue
		}
		rows = append(rows, []string{
			deref(r.County), deref(r.CountyOut) + "/" + deref(r.CountyTotal),
			deref(r.Muni), deref(r.MuniOut) + "/" + deref(r.MuniTotal),
			deref(r.Street), deref(r.StreetOut), deref(r.StreetRestoration),
		})
	}

	if len(rows) > 0 {
		md.Table(markdown.TableSet{
			Header: []string{"County", "County Out", "Muni", "Muni Out", "Street", "Out", "Restoration"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if len(notes) > 0 {
		md.H2("Messages")
		md.PlainText("")
		md.BulletList(notes...)
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

func diagnosticLine(r model.OutageRecord) string {
	switch {
	case r.Muni != nil:
		return deref(r.County) + " / " + deref(r.Muni) + ": " + r.Message
	case r.County != nil:
		return deref(r.County) + ": " + r.Message
	default:
		return r.Message
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
