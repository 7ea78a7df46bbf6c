package predictor

import (
	"errors"
	"math"

	"StockPredictor/internal/model"
)

// Horizon is the number of future records produced by Predict.
const Horizon = 3

// ErrEmptyWindow is returned when Predict is given no history.
var ErrEmptyWindow = errors.New("cannot predict from an empty window")

// Predict extrapolates the next three daily records from window.
// The predictions carry the ID of the last record and fall on the three following days.
func Predict(window model.Series) (model.Series, error) {
	last, ok := window.Last()
	if !ok {
		return nil, ErrEmptyWindow
	}

	first := PredictFirstPrice(window.Prices())
	second := PredictSecondPrice(last.Price, first)
	third := PredictThirdPrice(first, second)

	return model.ConsecutiveSeries(last.ID, last.Date, first, second, third), nil
}

// PredictFirstPrice returns the second-highest distinct price.
// Duplicates collapse before ranking, with every NaN counted as one value;
// with a single distinct value that value is returned.
func PredictFirstPrice(prices []float64) float64 {
	distinct := make(map[float64]struct{}, len(prices))
	sawNaN := false
	for _, p := range prices {
		if math.IsNaN(p) {
			sawNaN = true
			continue
		}
		distinct[p] = struct{}{}
	}

	switch {
	case sawNaN && len(distinct) == 0:
		return math.NaN()
	case !sawNaN && len(distinct) == 1:
		for p := range distinct {
			return p
		}
	}

	highest, second := math.Inf(-1), math.Inf(-1)
	for p := range distinct {
		switch {
		case p > highest:
			second = highest
			highest = p
		case p > second:
			second = p
		}
	}
	return second
}

// PredictSecondPrice moves from the last observed price halfway to the first prediction.
func PredictSecondPrice(lastPrice, firstPredicted float64) float64 {
	return (lastPrice + firstPredicted) / 2
}

// PredictThirdPrice steps a quarter of the way from the first to the second prediction.
func PredictThirdPrice(firstPredicted, secondPredicted float64) float64 {
	return firstPredicted + (secondPredicted-firstPredicted)/4
}
