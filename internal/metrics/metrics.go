package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector tracks batch processing metrics on its own registry.
type Collector struct {
	registry       *prometheus.Registry
	filesTotal     *prometheus.CounterVec
	rowsDropped    *prometheus.CounterVec
	recordsParsed  prometheus.Counter
	fileDuration   prometheus.Histogram
	lastBatchStamp prometheus.Gauge
}

// New creates a Collector with all series registered.
func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,
		filesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictor_files_total",
				Help: "Input files processed, by outcome",
			},
			[]string{"outcome"},
		),
		rowsDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictor_rows_dropped_total",
				Help: "Malformed CSV rows dropped by the parser, by reason",
			},
			[]string{"reason"},
		),
		recordsParsed: factory.NewCounter(prometheus.CounterOpts{
			Name: "predictor_records_parsed_total",
			Help: "Records successfully parsed from input files",
		}),
		fileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "predictor_file_duration_seconds",
			Help:    "Time spent processing a single input file",
			Buckets: prometheus.DefBuckets,
		}),
		lastBatchStamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "predictor_last_batch_timestamp_seconds",
			Help: "Unix time at which the last batch finished",
		}),
	}
}

// RecordFile records the outcome and duration of one processed file.
func (c *Collector) RecordFile(outcome string, parsed int, d time.Duration) {
	c.filesTotal.WithLabelValues(outcome).Inc()
	c.recordsParsed.Add(float64(parsed))
	c.fileDuration.Observe(d.Seconds())
}

// RecordDroppedRow records one row dropped for reason.
func (c *Collector) RecordDroppedRow(reason string) {
	c.rowsDropped.WithLabelValues(reason).Inc()
}

// RecordBatchFinished stamps the completion time of a batch.
func (c *Collector) RecordBatchFinished(at time.Time) {
	c.lastBatchStamp.Set(float64(at.Unix()))
}

// Registry exposes the underlying registry for gathering.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes all metrics in the text exposition format for the node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
