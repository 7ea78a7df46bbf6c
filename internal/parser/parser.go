package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"StockPredictor/internal/model"

	"github.com/rs/zerolog"
)

// Reason names why a row was dropped.
type Reason string

const (
	ReasonInsufficientData Reason = "insufficient data"
	ReasonEmptyID          Reason = "empty stock ID"
	ReasonBadPrice         Reason = "unable to parse price"
	ReasonBadDate          Reason = "unable to parse date time"
)

// maxLineBytes bounds a single CSV row.
const maxLineBytes = 1 << 20

// RowError describes a dropped row. Row is 1-based.
type RowError struct {
	Row    int
	Reason Reason
	Err    error
}

func (e *RowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("row %d: %s: %v", e.Row, e.Reason, e.Err)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

func (e *RowError) Unwrap() error { return e.Err }

// Parser turns CSV price rows into records, dropping and reporting malformed rows.
type Parser struct {
	log zerolog.Logger
}

// New creates a Parser that reports dropped rows to log.
func New(log zerolog.Logger) *Parser {
	return &Parser{log: log}
}

// ParseLine converts one row of the form id,dd-MM-yyyy,price[,...].
// Price is parsed before the date, so a row bad in both reports the price.
func ParseLine(index int, line string) (model.Record, *RowError) {
	fields := splitFields(line)
	if len(fields) < 3 {
		return model.Record{}, &RowError{Row: index, Reason: ReasonInsufficientData}
	}

	id := fields[0]
	if id == "" {
		return model.Record{}, &RowError{Row: index, Reason: ReasonEmptyID}
	}

	price, err := parsePrice(fields[2])
	if err != nil {
		return model.Record{}, &RowError{Row: index, Reason: ReasonBadPrice, Err: err}
	}

	date, err := parseDate(fields[1])
	if err != nil {
		return model.Record{}, &RowError{Row: index, Reason: ReasonBadDate, Err: err}
	}

	return model.NewRecord(id, date, price), nil
}

// ParseAll parses every line independently and keeps the good rows in order.
func (p *Parser) ParseAll(lines []string) (model.Series, []*RowError) {
	series := make(model.Series, 0, len(lines))
	var dropped []*RowError
	for i, line := range lines {
		rec, rowErr := ParseLine(i+1, line)
		if rowErr != nil {
			p.log.Warn().Int("row", rowErr.Row).Str("reason", string(rowErr.Reason)).Msg("skipping malformed row")
			dropped = append(dropped, rowErr)
			continue
		}
		series = append(series, rec)
	}
	return series, dropped
}

// Parse reads all lines from r and parses them.
func (p *Parser) Parse(r io.Reader) (model.Series, []*RowError, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, nil, err
	}
	series, dropped := p.ParseAll(lines)
	return series, dropped, nil
}

// ParseFile parses the file at path. An unreadable file is reported and yields an empty series.
func (p *Parser) ParseFile(path string) (model.Series, []*RowError) {
	log := p.log.With().Str("file", filepath.Base(path)).Logger()

	f, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Msg("could not open input file")
		return model.Series{}, nil
	}
	defer f.Close()

	series, dropped, err := (&Parser{log: log}).Parse(f)
	if err != nil {
		log.Error().Err(err).Msg("could not read input file")
		return model.Series{}, nil
	}
	return series, dropped
}

func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return lines, nil
}

// splitFields splits on commas and drops trailing empty fields,
// so "A,01-01-2020," counts as two fields.
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	n := len(fields)
	for n > 0 && fields[n-1] == "" {
		n--
	}
	return fields[:n]
}

// parseDate reads a dd-MM-yyyy date. A day that runs past the end of its
// month resolves to the month's last day: 31-04-2024 reads as 30-04-2024.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, s)
	if err == nil {
		return t, nil
	}
	if len(s) != len(model.DateLayout) || s[2] != '-' || s[5] != '-' ||
		!allDigits(s[0:2]) || !allDigits(s[3:5]) || !allDigits(s[6:]) {
		return time.Time{}, err
	}

	d, _ := strconv.Atoi(s[0:2])
	m, _ := strconv.Atoi(s[3:5])
	y, _ := strconv.Atoi(s[6:])
	if d < 1 || d > 31 || m < 1 || m > 12 {
		return time.Time{}, err
	}
	last := time.Date(y, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if d <= last {
		return time.Time{}, err
	}
	return time.Date(y, time.Month(m), last, 0, 0, 0, 0, time.UTC), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// parsePrice accepts surrounding whitespace and saturates out-of-range values to ±Inf.
// Special values must be spelled NaN or Infinity, and a single trailing
// f/F/d/D type suffix is allowed on numeric values.
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	unsigned := s
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		unsigned = s[1:]
	}
	switch {
	case unsigned == "NaN":
		return math.NaN(), nil
	case unsigned == "Infinity":
	case isSpecialSpelling(unsigned):
		return 0, &strconv.NumError{Func: "ParseFloat", Num: s, Err: strconv.ErrSyntax}
	case len(s) > 1 && strings.ContainsAny(s[len(s)-1:], "fFdD"):
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, nil
		}
		return 0, err
	}
	return v, nil
}

// isSpecialSpelling reports spellings of infinity or NaN other than the
// canonical ones, such as "inf" or "nan".
func isSpecialSpelling(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "inf") || strings.HasPrefix(lower, "nan")
}
