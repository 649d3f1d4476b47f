package models

import "time"

// Value is a numeric cell: a finite float64 or an explicit missing marker.
// Missing must propagate; it is never silently coerced to zero.
type Value struct {
	Float64 float64
	Valid   bool
}

// Num wraps a finite number.
func Num(f float64) Value { return Value{Float64: f, Valid: true} }

// Missing is the explicit no-data marker.
func Missing() Value { return Value{} }

// TimePoint is one (date, value) observation of a time series.
type TimePoint struct {
	Date  time.Time
	Value float64
}

// RankedRow pairs an entity label with its signed period delta. Abs is kept
// alongside the signed value so ordering never loses the sign.
type RankedRow struct {
	Label string
	Delta float64
	Abs   float64
}
