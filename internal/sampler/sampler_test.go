package sampler

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"StockPredictor/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource always returns the same start, clamped to the allowed range.
type fixedSource struct {
	start int
	calls []int
}

func (f *fixedSource) Intn(n int) int {
	f.calls = append(f.calls, n)
	if f.start >= n {
		return n - 1
	}
	return f.start
}

func series(n int) model.Series {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = float64(i)
	}
	return model.ConsecutiveSeries("ASH", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), prices...)
}

func TestSample_InsufficientData(t *testing.T) {
	for _, n := range []int{0, 1, 5, WindowSize - 1} {
		_, err := Sample(series(n), WindowSize, &fixedSource{})
		require.Error(t, err, "n=%d", n)
		assert.True(t, errors.Is(err, ErrInsufficientData), "n=%d", n)
	}
}

func TestSample_UsesExclusiveUpperBound(t *testing.T) {
	src := &fixedSource{start: 3}
	s := series(106)

	window, start, err := SampleAt(s, WindowSize, src)
	require.NoError(t, err)
	assert.Equal(t, 3, start)
	assert.Equal(t, []int{106 - WindowSize}, src.calls)
	assert.Equal(t, s[3:13], window)
}

func TestSample_ExactWindowReturnsWholeSeries(t *testing.T) {
	src := &fixedSource{start: 5}
	s := series(WindowSize)

	window, start, err := SampleAt(s, WindowSize, src)
	require.NoError(t, err)
	assert.Equal(t, 0, start)
	assert.Empty(t, src.calls)
	assert.Equal(t, s, window)
}

func TestSample_RandomWindowsAreContiguous(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := WindowSize + 1; n < 60; n++ {
		s := series(n)
		for i := 0; i < 20; i++ {
			window, start, err := SampleAt(s, WindowSize, rng)
			require.NoError(t, err)
			require.Len(t, window, WindowSize)
			require.GreaterOrEqual(t, start, 0)
			require.Less(t, start, n-WindowSize)
			assert.Equal(t, s[start:start+WindowSize], window)
		}
	}
}

func TestSample_WindowDoesNotAliasSpareCapacity(t *testing.T) {
	s := series(20)
	window, err := Sample(s, WindowSize, &fixedSource{start: 0})
	require.NoError(t, err)

	extended := append(window, model.Record{ID: "NEW"})
	assert.Equal(t, "ASH", s[WindowSize].ID)
	assert.Len(t, extended, WindowSize+1)
}

func TestSample_InvalidSize(t *testing.T) {
	_, err := Sample(series(20), 0, &fixedSource{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInsufficientData))
}
