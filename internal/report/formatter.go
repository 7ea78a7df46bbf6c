package report

import (
	"fmt"
	"strings"
	"time"

	"StockPredictor/internal/model"
	"StockPredictor/internal/writer"
)

// FormatBatchSummary formats the result of a batch run for the terminal.
func FormatBatchSummary(s *model.BatchSummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("StockPredictor batch %s | %s\n", s.RunID, s.StartedAt.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("root: %s\n\n", s.RootDir))

	b.WriteString(fmt.Sprintf("files:            %d\n", len(s.Files)))
	b.WriteString(fmt.Sprintf("written:          %d\n", s.Count(model.OutcomeWritten)))
	b.WriteString(fmt.Sprintf("insufficient:     %d\n", s.Count(model.OutcomeInsufficient)))
	b.WriteString(fmt.Sprintf("write failures:   %d\n", s.Count(model.OutcomeWriteFailed)))
	if n := s.Count(model.OutcomeFailed); n > 0 {
		b.WriteString(fmt.Sprintf("other failures:   %d\n", n))
	}
	b.WriteString(fmt.Sprintf("dropped rows:     %d\n", s.DroppedRows()))
	b.WriteString(fmt.Sprintf("elapsed:          %s\n", s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond)))

	if len(s.Files) > 0 {
		b.WriteString("\n")
	}
	for _, f := range s.Files {
		b.WriteString(FormatFileLine(&f))
	}
	return b.String()
}

// FormatFileLine renders one file result on a single line.
func FormatFileLine(f *model.FileResult) string {
	line := fmt.Sprintf("  %-18s %-8s %-28s rows=%d dropped=%d", f.Outcome, f.Exchange, f.Path, f.RowsParsed, f.RowsDropped)
	if len(f.Predictions) > 0 {
		prices := make([]string, len(f.Predictions))
		for i, p := range f.Predictions {
			prices[i] = writer.FormatPrice(p.Price)
		}
		line += fmt.Sprintf(" window@%d next=[%s]", f.WindowStart, strings.Join(prices, " "))
	}
	if f.Err != nil && f.Outcome != model.OutcomeWritten {
		line += fmt.Sprintf(" (%v)", f.Err)
	}
	return line + "\n"
}
