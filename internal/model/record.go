package model

import (
	"fmt"
	"time"
)

// DateLayout is the fixed dd-MM-yyyy layout used for record dates in CSV files.
const DateLayout = "02-01-2006"

// Record represents a single daily price observation for an instrument.
type Record struct {
	ID    string
	Date  time.Time
	Price float64
}

// Series is an ordered run of records, chronological as given by the source.
type Series []Record

// NewRecord builds a record, truncating the date to a calendar day in UTC.
func NewRecord(id string, date time.Time, price float64) Record {
	return Record{
		ID:    id,
		Date:  time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Price: price,
	}
}

func (r Record) String() string {
	return fmt.Sprintf("%s@%s=%v", r.ID, r.Date.Format(DateLayout), r.Price)
}

// Equal compares records by value. Dates are compared as calendar days.
func (r Record) Equal(o Record) bool {
	return r.ID == o.ID && r.Date.Equal(o.Date) && r.Price == o.Price
}

// Last returns the final record of the series and false when it is empty.
func (s Series) Last() (Record, bool) {
	if len(s) == 0 {
		return Record{}, false
	}
	return s[len(s)-1], true
}

// Prices extracts the price column in series order.
func (s Series) Prices() []float64 {
	prices := make([]float64, len(s))
	for i, r := range s {
		prices[i] = r.Price
	}
	return prices
}

// Concat returns a new series holding s followed by other.
func (s Series) Concat(other Series) Series {
	out := make(Series, 0, len(s)+len(other))
	out = append(out, s...)
	return append(out, other...)
}

// ConsecutiveSeries creates one record per price on consecutive days.
// The start date itself is exclusive: the first record falls on start+1.
func ConsecutiveSeries(id string, start time.Time, prices ...float64) Series {
	out := make(Series, len(prices))
	for i, p := range prices {
		out[i] = NewRecord(id, start.AddDate(0, 0, i+1), p)
	}
	return out
}
