package writer

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"StockPredictor/internal/model"
)

// FormatPrice renders a price the way the output files have always carried it:
// shortest round-trip digits, always with a fractional part. Magnitudes from
// 1e-3 up to 1e7 are plain decimals (100.0); anything outside that range uses
// computerized scientific notation (1.0E7, 1.5E-4). Non-finite values are
// spelled NaN, Infinity, -Infinity.
func FormatPrice(p float64) string {
	switch {
	case math.IsNaN(p):
		return "NaN"
	case math.IsInf(p, 1):
		return "Infinity"
	case math.IsInf(p, -1):
		return "-Infinity"
	}
	if abs := math.Abs(p); abs != 0 && (abs < 1e-3 || abs >= 1e7) {
		return formatScientific(p)
	}
	return withFraction(strconv.FormatFloat(p, 'f', -1, 64))
}

// formatScientific turns Go's "1.5e-04" into "1.5E-4".
func formatScientific(p float64) string {
	s := strconv.FormatFloat(p, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	e, _ := strconv.Atoi(exp)
	return withFraction(mantissa) + "E" + strconv.Itoa(e)
}

func withFraction(s string) string {
	if !strings.Contains(s, ".") {
		return s + ".0"
	}
	return s
}

// FormatRow renders one record as id,dd-MM-yyyy,price followed by a newline.
func FormatRow(r model.Record) string {
	return r.ID + "," + r.Date.Format(model.DateLayout) + "," + FormatPrice(r.Price) + "\n"
}

// Serialize renders the series as CSV text without a header, one row per record.
func Serialize(series model.Series) string {
	var b strings.Builder
	for _, r := range series {
		b.WriteString(FormatRow(r))
	}
	return b.String()
}

// WriteFile writes the serialized series to dir/name and returns the written path.
func WriteFile(dir, name string, series model.Series) (string, error) {
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, []byte(Serialize(series)), 0o644); err != nil {
		return path, fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
