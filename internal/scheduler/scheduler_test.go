package scheduler

import (
	"bytes"
	"context"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"StockPredictor/internal/collector"
	"StockPredictor/internal/model"
	"StockPredictor/internal/parser"
	"StockPredictor/internal/pipeline"
	"StockPredictor/internal/writer"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driftSeries builds count consecutive daily records drifting around basePrice.
func driftSeries(id string, start time.Time, basePrice float64, count int) model.Series {
	prices := make([]float64, count)
	for i := range prices {
		prices[i] = basePrice * (1 + float64(i-count/2)*0.001)
	}
	return model.ConsecutiveSeries(id, start, prices...)
}

func setup(t *testing.T) (root, out string) {
	t.Helper()
	root, out = t.TempDir(), t.TempDir()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, f := range []struct {
		exchange, name string
		n              int
	}{
		{"LSE", "FLTR.csv", 40},
		{"LSE", "ASH.csv", 25},
		{"NASDAQ", "TSLA.csv", 5},
	} {
		dir := filepath.Join(root, f.exchange)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		s := driftSeries(f.name[:len(f.name)-4], start, 50, f.n)
		require.NoError(t, os.WriteFile(filepath.Join(dir, f.name), []byte(writer.Serialize(s)), 0o644))
	}
	return root, out
}

func newScheduler(t *testing.T, root, out string, maxPerExchange int, w io.Writer) *Scheduler {
	t.Helper()
	col := collector.NewCollector(root, maxPerExchange, ".csv", zerolog.Nop())
	src := collector.NewFileSource(parser.New(zerolog.Nop()))
	p := pipeline.New(src, rand.New(rand.NewSource(1)), pipeline.Options{OutputDir: out}, nil, nil, zerolog.Nop())
	return NewScheduler(context.Background(), col, p, w, zerolog.Nop())
}

func TestRunOnce(t *testing.T) {
	root, out := setup(t)
	var buf bytes.Buffer
	s := newScheduler(t, root, out, 1, &buf)

	summary := s.RunOnce()

	// one file per exchange: ASH.csv sorts before FLTR.csv
	require.Len(t, summary.Files, 2)
	assert.Equal(t, 1, summary.Count(model.OutcomeWritten))
	assert.Equal(t, 1, summary.Count(model.OutcomeInsufficient))
	assert.FileExists(t, filepath.Join(out, "ASH.csv"))
	assert.NoFileExists(t, filepath.Join(out, "FLTR.csv"))
	assert.Contains(t, buf.String(), summary.RunID)
}

func TestRunOnce_MissingRootStillReports(t *testing.T) {
	var buf bytes.Buffer
	s := newScheduler(t, filepath.Join(t.TempDir(), "absent"), t.TempDir(), 3, &buf)

	summary := s.RunOnce()
	assert.Empty(t, summary.Files)
	assert.Contains(t, buf.String(), "files:            0")
}

func TestRegister(t *testing.T) {
	root, out := setup(t)
	s := newScheduler(t, root, out, 5, nil)

	require.Error(t, s.Register("not a cron spec"))
	require.NoError(t, s.Register("0 0 18 * * 1-5"))
	assert.Len(t, s.Cron.Entries(), 1)

	s.Start()
	s.Stop()
}
