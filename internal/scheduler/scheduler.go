package scheduler

import (
	"context"
	"fmt"
	"io"

	"StockPredictor/internal/collector"
	"StockPredictor/internal/model"
	"StockPredictor/internal/pipeline"
	"StockPredictor/internal/report"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler runs prediction batches once or on a cron schedule.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Pipeline  *pipeline.Pipeline
	Out       io.Writer
	Ctx       context.Context
	log       zerolog.Logger
}

// NewScheduler creates a new Scheduler. Scheduled batches never overlap:
// a tick that fires while a batch is still running is skipped.
func NewScheduler(ctx context.Context, col *collector.Collector, p *pipeline.Pipeline, out io.Writer, log zerolog.Logger) *Scheduler {
	cronLog := cron.PrintfLogger(&log)
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		Collector: col,
		Pipeline:  p,
		Out:       out,
		Ctx:       ctx,
		log:       log,
	}
}

// Register adds the batch task under the given six-field cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.batchTask); err != nil {
		return fmt.Errorf("register batch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running batch to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunOnce discovers input files and processes them as one batch.
// A discovery error is logged and the files found before it are still processed.
func (s *Scheduler) RunOnce() *model.BatchSummary {
	inputs, err := s.Collector.Discover()
	if err != nil {
		s.log.Error().Err(err).Msg("file discovery failed")
	}
	summary := s.Pipeline.Run(s.Ctx, s.Collector.Root, inputs)
	if s.Out != nil {
		if _, err := io.WriteString(s.Out, report.FormatBatchSummary(summary)); err != nil {
			s.log.Error().Err(err).Msg("write batch report")
		}
	}
	return summary
}

func (s *Scheduler) batchTask() {
	s.log.Info().Msg("running scheduled batch")
	s.RunOnce()
}
