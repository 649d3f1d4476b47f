package repository

import (
	"context"

	"MacroGold/internal/domain/models"
)

// Fetcher retrieves one raw document over HTTP. One attempt per call; retry
// policy is deliberately absent, a failed fetch is reported per source.
type Fetcher interface {
	Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// Notifier delivers one assembled digest to the configured destination, or to
// a local fallback when no destination is configured.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Adapter produces one digest section per run. Collect never returns an
// error: every fault is reduced to the SourceStatus it returns.
type Adapter interface {
	Name() string
	Collect(ctx context.Context) models.SourceStatus
}

// Metrics records operational counters for a run.
type Metrics interface {
	RecordFetch(source string)
	RecordFault(source, kind string)
	RecordLastValue(series string, v float64)
	RecordRunDuration(seconds float64)
}
