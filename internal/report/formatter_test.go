package report

import (
	"errors"
	"testing"
	"time"

	"StockPredictor/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestFormatBatchSummary(t *testing.T) {
	start := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	s := &model.BatchSummary{
		RunID:      "3f1c",
		RootDir:    "/data/exchanges",
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
		Files: []model.FileResult{
			{
				Exchange: "LSE", Path: "LSE/FLTR.csv", Outcome: model.OutcomeWritten, RowsParsed: 106, WindowStart: 3,
				Predictions: model.ConsecutiveSeries("FLTR", start, 6, 6.5, 6.125),
			},
			{
				Path: "LSE/THIN.csv", Outcome: model.OutcomeInsufficient, RowsParsed: 4, RowsDropped: 2, WindowStart: -1,
				Err: errors.New("could not find enough stock data: have 4 records, need 10"),
			},
		},
	}

	out := FormatBatchSummary(s)
	assert.Contains(t, out, "batch 3f1c | 2024-03-01 18:00:00")
	assert.Contains(t, out, "written:          1")
	assert.Contains(t, out, "insufficient:     1")
	assert.Contains(t, out, "dropped rows:     2")
	assert.Contains(t, out, "elapsed:          1.5s")
	assert.Contains(t, out, "window@3 next=[6.0 6.5 6.125]")
	assert.Contains(t, out, "WRITTEN            LSE      LSE/FLTR.csv")
	assert.Contains(t, out, "(could not find enough stock data: have 4 records, need 10)")
	assert.NotContains(t, out, "other failures")
}

func TestFormatBatchSummary_Empty(t *testing.T) {
	start := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	out := FormatBatchSummary(&model.BatchSummary{RunID: "x", StartedAt: start, FinishedAt: start})
	assert.Contains(t, out, "files:            0")
}
