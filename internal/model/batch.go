package model

import "time"

// FileOutcome indicates how processing of a single input file ended.
type FileOutcome string

const (
	OutcomeWritten      FileOutcome = "WRITTEN"
	OutcomeInsufficient FileOutcome = "INSUFFICIENT_DATA"
	OutcomeWriteFailed  FileOutcome = "WRITE_FAILED"
	OutcomeFailed       FileOutcome = "FAILED"
)

// FileResult is the per-file result of a batch run.
type FileResult struct {
	Exchange    string
	Path        string
	OutputPath  string
	Outcome     FileOutcome
	RowsParsed  int
	RowsDropped int
	WindowStart int // -1 when no window was sampled
	Predictions Series
	Err         error
	Duration    time.Duration
}

// BatchSummary aggregates the results of one batch over the discovered files.
type BatchSummary struct {
	RunID      string
	RootDir    string
	StartedAt  time.Time
	FinishedAt time.Time
	Files      []FileResult
}

// Count returns the number of files that ended with the given outcome.
func (b *BatchSummary) Count(outcome FileOutcome) int {
	n := 0
	for _, f := range b.Files {
		if f.Outcome == outcome {
			n++
		}
	}
	return n
}

// DroppedRows sums the rows dropped by the parser across all files.
func (b *BatchSummary) DroppedRows() int {
	n := 0
	for _, f := range b.Files {
		n += f.RowsDropped
	}
	return n
}
