package recorder

import (
	"database/sql"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS batch_runs (
			run_id        TEXT PRIMARY KEY,
			root_dir      TEXT,
			started_at    INTEGER NOT NULL,
			finished_at   INTEGER NOT NULL,
			files         INTEGER,
			written       INTEGER,
			insufficient  INTEGER,
			write_failed  INTEGER,
			dropped_rows  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON batch_runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS file_results (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        TEXT NOT NULL,
			exchange      TEXT,
			path          TEXT NOT NULL,
			output_path   TEXT,
			outcome       TEXT NOT NULL,
			rows_parsed   INTEGER,
			rows_dropped  INTEGER,
			window_start  INTEGER,
			predicted_1   REAL,
			predicted_2   REAL,
			predicted_3   REAL,
			error         TEXT,
			duration_ms   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_file_run ON file_results(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(evt *RunEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO batch_runs
		(run_id, root_dir, started_at, finished_at, files, written, insufficient, write_failed, dropped_rows)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		evt.RunID, evt.RootDir, evt.StartedAt.Unix(), evt.FinishedAt.Unix(),
		evt.Files, evt.Written, evt.Insufficient, evt.WriteFailed, evt.DroppedRows,
	)
	return err
}

func (r *SQLiteRecorder) RecordFile(evt *FileEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Missing or non-finite predictions are stored as NULL.
	predicted := make([]sql.NullFloat64, 3)
	for i := 0; i < len(evt.Predicted) && i < 3; i++ {
		p := evt.Predicted[i]
		predicted[i] = sql.NullFloat64{Float64: p, Valid: !math.IsNaN(p) && !math.IsInf(p, 0)}
	}

	_, err := r.db.Exec(`INSERT INTO file_results
		(run_id, exchange, path, output_path, outcome, rows_parsed, rows_dropped, window_start,
		 predicted_1, predicted_2, predicted_3, error, duration_ms)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		evt.RunID, evt.Exchange, evt.Path, evt.OutputPath, evt.Outcome,
		evt.RowsParsed, evt.RowsDropped, evt.WindowStart,
		predicted[0], predicted[1], predicted[2],
		evt.Error, evt.Duration.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
