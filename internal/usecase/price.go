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

const priceTitle = "📈 IAU ETF price"

// PriceAdapter reports the latest IAU close and its day-over-day and
// lookback-window changes, in absolute and percent terms.
type PriceAdapter struct {
	url       string
	timeout   time.Duration
	userAgent string
	lookback  int
	column    string
	fetcher   drepo.Fetcher
	metrics   drepo.Metrics
	log       *logger.Logger
}

// NewPriceAdapter creates the price source adapter.
func NewPriceAdapter(cfg *config.Config, f drepo.Fetcher, m drepo.Metrics, log *logger.Logger) *PriceAdapter {
	return &PriceAdapter{
		url:       cfg.Sources.Price.URL,
		timeout:   cfg.Sources.Price.Timeout,
		userAgent: cfg.Sources.UserAgent,
		lookback:  cfg.Sources.Price.Lookback,
		column:    cfg.Sources.Price.Column,
		fetcher:   f,
		metrics:   m,
		log:       log,
	}
}

func (a *PriceAdapter) Name() string { return "price" }

// Collect runs one pass and reduces any fault to the returned status.
func (a *PriceAdapter) Collect(ctx context.Context) models.SourceStatus {
	text, err := a.collect(ctx)
	if err != nil {
		a.metrics.RecordFault(a.Name(), faultKind(err))
		a.log.Warn("source failed", logger.String("source", a.Name()), logger.Error(err))
		return failStatus(a.Name(), priceTitle, err)
	}
	a.metrics.RecordFetch(a.Name())
	return okStatus(a.Name(), text)
}

func (a *PriceAdapter) collect(ctx context.Context) (string, error) {
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
	valCol, err := tabular.Resolve(t, "close", []tabular.Heuristic{
		tabular.ExactName(a.column),
		tabular.NameContains(a.column),
	})
	if err != nil {
		return "", models.DriftFault(a.Name(), "close", err)
	}

	series := tabular.BuildSeries(t, dateCol.Index, valCol.Index)
	if len(series) == 0 {
		return "", models.NumericEscalation(a.Name(), "close prices")
	}
	res, err := tabular.Delta(series, a.lookback)
	if err != nil {
		if errors.Is(err, tabular.ErrInsufficientData) {
			return "", models.InsufficientFault(a.Name(), err)
		}
		return "", err
	}

	a.metrics.RecordLastValue("iau_close", res.Latest)

	var b strings.Builder
	b.WriteString(priceTitle)
	fmt.Fprintf(&b, "\n- as of: %s", res.LatestAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "\n- close: %.2f", res.Latest)
	fmt.Fprintf(&b, "\n- day change: %+.2f (%+.2f%%)", res.OneStep, res.OneStepPct)
	fmt.Fprintf(&b, "\n- %d-day change: %+.2f (%+.2f%%)", a.lookback, res.NStep, res.NStepPct)
	return b.String(), nil
}
