package collector

import (
	"StockPredictor/internal/model"
	"StockPredictor/internal/parser"
)

// Source loads the full record series for one input file.
type Source interface {
	Load(path string) (model.Series, []*parser.RowError)
	Name() string
}

// FileSource reads CSV files from disk through the tolerant parser.
type FileSource struct {
	Parser *parser.Parser
}

// NewFileSource creates a Source backed by the local file system.
func NewFileSource(p *parser.Parser) *FileSource {
	return &FileSource{Parser: p}
}

func (f *FileSource) Name() string { return "file" }

func (f *FileSource) Load(path string) (model.Series, []*parser.RowError) {
	return f.Parser.ParseFile(path)
}
