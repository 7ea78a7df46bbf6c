package sampler

import (
	"errors"
	"fmt"

	"StockPredictor/internal/model"
)

// WindowSize is the number of consecutive records handed to the predictor.
const WindowSize = 10

// ErrInsufficientData is returned when a series is shorter than the requested window.
var ErrInsufficientData = errors.New("could not find enough stock data")

// RandSource picks an integer in [0, n). *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// Sample returns a random contiguous window of size records from series.
//
// The start index is drawn from [0, len(series)-size), so the window ending on
// the final record is never selected. When len(series) == size the start range
// is empty and the whole series is returned.
func Sample(series model.Series, size int, rng RandSource) (model.Series, error) {
	window, _, err := SampleAt(series, size, rng)
	return window, err
}

// SampleAt is Sample that also reports the chosen start index.
func SampleAt(series model.Series, size int, rng RandSource) (model.Series, int, error) {
	if size <= 0 {
		return nil, -1, fmt.Errorf("window size must be positive, got %d", size)
	}
	if len(series) < size {
		return nil, -1, fmt.Errorf("%w: have %d records, need %d", ErrInsufficientData, len(series), size)
	}

	start := 0
	if span := len(series) - size; span > 0 {
		start = rng.Intn(span)
	}
	return series[start : start+size : start+size], start, nil
}
