package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"MacroGold/internal/domain/models"
	drepo "MacroGold/internal/domain/repository"
	"MacroGold/internal/services/tabular"
	"MacroGold/pkg/config"
	"MacroGold/pkg/logger"
)

const holdingsTitle = "📊 GLD ETF holdings"

// HoldingsAdapter reports the latest GLD trust holdings in tonnes with the
// day-over-day and lookback-window changes, from the daily archive CSV.
type HoldingsAdapter struct {
	url         string
	timeout     time.Duration
	userAgent   string
	lookback    int
	columnToken string
	fetcher     drepo.Fetcher
	metrics     drepo.Metrics
	log         *logger.Logger
}

// NewHoldingsAdapter creates the holdings source adapter.
func NewHoldingsAdapter(cfg *config.Config, f drepo.Fetcher, m drepo.Metrics, log *logger.Logger) *HoldingsAdapter {
	return &HoldingsAdapter{
		url:         cfg.Sources.Holdings.URL,
		timeout:     cfg.Sources.Holdings.Timeout,
		userAgent:   cfg.Sources.UserAgent,
		lookback:    cfg.Sources.Holdings.Lookback,
		columnToken: cfg.Sources.Holdings.ColumnToken,
		fetcher:     f,
		metrics:     m,
		log:         log,
	}
}

func (a *HoldingsAdapter) Name() string { return "holdings" }

// Collect runs one pass and reduces any fault to the returned status.
func (a *HoldingsAdapter) Collect(ctx context.Context) models.SourceStatus {
	text, err := a.collect(ctx)
	if err != nil {
		a.metrics.RecordFault(a.Name(), faultKind(err))
		a.log.Warn("source failed", logger.String("source", a.Name()), logger.Error(err))
		return failStatus(a.Name(), holdingsTitle, err)
	}
	a.metrics.RecordFetch(a.Name())
	return okStatus(a.Name(), text)
}

func (a *HoldingsAdapter) collect(ctx context.Context) (string, error) {
	fctx, cancel := context.WithTimeout(ctx, fetchTimeout(a.timeout))
	defer cancel()

	body, err := a.fetcher.Fetch(fctx, a.url, map[string]string{"User-Agent": a.userAgent})
	if err != nil {
		return "", models.TransportFault(a.Name(), err)
	}

	t, err := tabular.DecodeCSV(body)
	if err != nil {
		return "", models.DriftFault(a.Name(), "csv payload", err)
	}

	dateCol, err := tabular.Resolve(t, "date", []tabular.Heuristic{
		tabular.ExactName("Date"),
		tabular.NameContains("date"),
		tabular.PositionAt(0),
	})
	if err != nil {
		return "", models.DriftFault(a.Name(), "date", err)
	}
	valCol, err := tabular.Resolve(t, "holdings", []tabular.Heuristic{
		tabular.NameContains(a.columnToken),
	})
	if err != nil {
		return "", models.DriftFault(a.Name(), "holdings", err)
	}

	series := tabular.BuildSeries(t, dateCol.Index, valCol.Index)
	if len(series) == 0 {
		return "", models.NumericEscalation(a.Name(), "holdings")
	}
	res, err := tabular.Delta(series, a.lookback)
	if err != nil {
		if errors.Is(err, tabular.ErrInsufficientData) {
			return "", models.InsufficientFault(a.Name(), err)
		}
		return "", err
	}

	a.metrics.RecordLastValue("gld_tonnes", res.Latest)
	a.log.Debug("holdings resolved",
		logger.String("value_col", valCol.Name),
		logger.Int("series_rows", len(series)),
	)

	var b strings.Builder
	b.WriteString(holdingsTitle)
	fmt.Fprintf(&b, "\n- as of: %s", res.LatestAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "\n- holdings: %.2f t", res.Latest)
	fmt.Fprintf(&b, "\n- day change: %+.2f t", res.OneStep)
	fmt.Fprintf(&b, "\n- %d-day change: %+.2f t", a.lookback, res.NStep)
	return b.String(), nil
}
