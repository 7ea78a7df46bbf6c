package recorder

import "time"

// RunEvent summarizes one batch run.
type RunEvent struct {
	RunID        string
	RootDir      string
	StartedAt    time.Time
	FinishedAt   time.Time
	Files        int
	Written      int
	Insufficient int
	WriteFailed  int
	DroppedRows  int
}

// FileEvent records what happened to a single input file within a run.
type FileEvent struct {
	RunID       string
	Exchange    string
	Path        string
	OutputPath  string
	Outcome     string // "WRITTEN", "INSUFFICIENT_DATA" or "WRITE_FAILED"
	RowsParsed  int
	RowsDropped int
	WindowStart int
	Predicted   []float64
	Error       string
	Duration    time.Duration
}

// Recorder keeps a history of batch runs for later inspection.
type Recorder interface {
	RecordRun(evt *RunEvent) error
	RecordFile(evt *FileEvent) error
	Close() error
}
