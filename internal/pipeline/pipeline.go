package pipeline

import (
	"context"
	"errors"
	"time"

	"StockPredictor/internal/collector"
	"StockPredictor/internal/metrics"
	"StockPredictor/internal/model"
	"StockPredictor/internal/predictor"
	"StockPredictor/internal/recorder"
	"StockPredictor/internal/sampler"
	"StockPredictor/internal/writer"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options configures a Pipeline.
type Options struct {
	WindowSize  int
	OutputDir   string
	MetricsPath string // empty disables the textfile export
}

// Pipeline runs parse, sample, predict and write for each input file in turn.
// A failure on one file never stops the batch.
type Pipeline struct {
	Source   collector.Source
	Rand     sampler.RandSource
	Recorder recorder.Recorder
	Metrics  *metrics.Collector
	opts     Options
	log      zerolog.Logger
	now      func() time.Time
}

// New creates a Pipeline. rec and m may be nil.
func New(src collector.Source, rng sampler.RandSource, opts Options, rec recorder.Recorder, m *metrics.Collector, log zerolog.Logger) *Pipeline {
	if opts.WindowSize <= 0 {
		opts.WindowSize = sampler.WindowSize
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if m == nil {
		m = metrics.New()
	}
	return &Pipeline{
		Source:   src,
		Rand:     rng,
		Recorder: rec,
		Metrics:  m,
		opts:     opts,
		log:      log,
		now:      time.Now,
	}
}

// Run processes inputs sequentially and returns the batch summary.
// Cancellation is checked between files; a file in progress always completes.
func (p *Pipeline) Run(ctx context.Context, rootDir string, inputs []collector.Input) *model.BatchSummary {
	summary := &model.BatchSummary{
		RunID:     uuid.NewString(),
		RootDir:   rootDir,
		StartedAt: p.now(),
	}
	log := p.log.With().Str("run_id", summary.RunID).Logger()
	log.Info().Int("files", len(inputs)).Str("source", p.Source.Name()).Msg("batch started")

	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Msg("batch interrupted")
			break
		}
		res := p.ProcessFile(in)
		summary.Files = append(summary.Files, res)
		p.recordFile(summary.RunID, &res)
	}

	summary.FinishedAt = p.now()
	p.recordRun(summary)
	log.Info().
		Int("written", summary.Count(model.OutcomeWritten)).
		Int("insufficient", summary.Count(model.OutcomeInsufficient)).
		Int("write_failed", summary.Count(model.OutcomeWriteFailed)).
		Dur("elapsed", summary.FinishedAt.Sub(summary.StartedAt)).
		Msg("batch finished")
	return summary
}

// ProcessFile runs the full pipeline for one input file.
func (p *Pipeline) ProcessFile(in collector.Input) model.FileResult {
	started := p.now()
	log := p.log.With().Str("exchange", in.Exchange).Str("file", in.Name).Logger()
	res := model.FileResult{Exchange: in.Exchange, Path: in.Path, WindowStart: -1}

	series, dropped := p.Source.Load(in.Path)
	res.RowsParsed = len(series)
	res.RowsDropped = len(dropped)
	for _, d := range dropped {
		p.Metrics.RecordDroppedRow(string(d.Reason))
	}

	window, start, err := sampler.SampleAt(series, p.opts.WindowSize, p.Rand)
	if err != nil {
		res.Err = err
		if errors.Is(err, sampler.ErrInsufficientData) {
			res.Outcome = model.OutcomeInsufficient
			log.Warn().Msg(err.Error())
		} else {
			res.Outcome = model.OutcomeFailed
			log.Error().Err(err).Msg("sampling failed")
		}
		return p.finish(res, started)
	}
	res.WindowStart = start

	predictions, err := predictor.Predict(window)
	if err != nil {
		res.Err = err
		res.Outcome = model.OutcomeFailed
		log.Error().Err(err).Msg("prediction failed")
		return p.finish(res, started)
	}
	res.Predictions = predictions

	path, err := writer.WriteFile(p.opts.OutputDir, in.Name, window.Concat(predictions))
	res.OutputPath = path
	if err != nil {
		res.Err = err
		res.Outcome = model.OutcomeWriteFailed
		log.Error().Err(err).Msg("unable to write results")
		return p.finish(res, started)
	}

	res.Outcome = model.OutcomeWritten
	log.Debug().Int("window_start", start).Str("output", path).Msg("predictions written")
	return p.finish(res, started)
}

func (p *Pipeline) finish(res model.FileResult, started time.Time) model.FileResult {
	res.Duration = p.now().Sub(started)
	p.Metrics.RecordFile(string(res.Outcome), res.RowsParsed, res.Duration)
	return res
}

func (p *Pipeline) recordFile(runID string, res *model.FileResult) {
	evt := &recorder.FileEvent{
		RunID:       runID,
		Exchange:    res.Exchange,
		Path:        res.Path,
		OutputPath:  res.OutputPath,
		Outcome:     string(res.Outcome),
		RowsParsed:  res.RowsParsed,
		RowsDropped: res.RowsDropped,
		WindowStart: res.WindowStart,
		Predicted:   res.Predictions.Prices(),
		Duration:    res.Duration,
	}
	if res.Err != nil {
		evt.Error = res.Err.Error()
	}
	if err := p.Recorder.RecordFile(evt); err != nil {
		p.log.Error().Err(err).Str("file", res.Path).Msg("record file result")
	}
}

func (p *Pipeline) recordRun(s *model.BatchSummary) {
	if err := p.Recorder.RecordRun(&recorder.RunEvent{
		RunID:        s.RunID,
		RootDir:      s.RootDir,
		StartedAt:    s.StartedAt,
		FinishedAt:   s.FinishedAt,
		Files:        len(s.Files),
		Written:      s.Count(model.OutcomeWritten),
		Insufficient: s.Count(model.OutcomeInsufficient),
		WriteFailed:  s.Count(model.OutcomeWriteFailed),
		DroppedRows:  s.DroppedRows(),
	}); err != nil {
		p.log.Error().Err(err).Msg("record batch run")
	}

	p.Metrics.RecordBatchFinished(s.FinishedAt)
	if p.opts.MetricsPath != "" {
		if err := p.Metrics.WriteTextfile(p.opts.MetricsPath); err != nil {
			p.log.Error().Err(err).Msg("export metrics")
		}
	}
}
