package collector

import (
	"StockPredictor/internal/model"
	"StockPredictor/internal/parser"
)

// MockSource returns controllable fixed data for development and testing.
type MockSource struct {
	Series  map[string]model.Series
	Dropped map[string][]*parser.RowError
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Load(path string) (model.Series, []*parser.RowError) {
	s, ok := m.Series[path]
	if !ok {
		return model.Series{}, nil
	}
	return s, m.Dropped[path]
}
