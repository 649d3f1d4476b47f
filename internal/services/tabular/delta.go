package tabular

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"MacroGold/internal/domain/models"
)

// ErrInsufficientData means the series is shorter than the lookback window.
// A partial delta would be misleading, so none is computed.
var ErrInsufficientData = errors.New("insufficient rows for lookback")

// DeltaResult holds "current vs. N periods ago" metrics for one series.
// Percent variants divide by the earlier value; a zero divisor yields zero
// percent by policy instead of propagating a division fault.
type DeltaResult struct {
	LatestAt   time.Time
	Latest     float64
	OneStep    float64
	OneStepPct float64
	NStep      float64
	NStepPct   float64
}

// Delta computes the latest value, one-step delta, and lookback-window delta
// for an ascending series. The window is inclusive of both endpoints: with
// lookback 5 the N-step delta compares the latest row against the row four
// steps back. Requires len(series) >= lookback and lookback >= 2.
func Delta(series []models.TimePoint, lookback int) (DeltaResult, error) {
	if lookback < 2 {
		lookback = 2
	}
	n := len(series)
	if n < lookback {
		return DeltaResult{}, fmt.Errorf("%w: need %d, have %d", ErrInsufficientData, lookback, n)
	}

	latest := series[n-1]
	prev := series[n-2]
	first := series[n-lookback]

	return DeltaResult{
		LatestAt:   latest.Date,
		Latest:     latest.Value,
		OneStep:    latest.Value - prev.Value,
		OneStepPct: pctChange(latest.Value, prev.Value),
		NStep:      latest.Value - first.Value,
		NStepPct:   pctChange(latest.Value, first.Value),
	}, nil
}

func pctChange(cur, base float64) float64 {
	if base == 0 {
		return 0
	}
	return (cur - base) / base * 100
}

// SortAscending orders a series by date, stably, so repeated runs over the
// same payload produce identical deltas.
func SortAscending(series []models.TimePoint) {
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
}
