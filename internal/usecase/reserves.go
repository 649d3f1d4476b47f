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

const reservesTitle = "📒 Central-bank gold reserves"

// ReservesAdapter reports the largest month-over-month changes in the WGC
// gold-reserves-by-country HTML table. The page carries layout tables too,
// and both the table structure and column names drift between visits.
type ReservesAdapter struct {
	url        string
	timeout    time.Duration
	userAgent  string
	minSupport int
	topK       int
	fetcher    drepo.Fetcher
	metrics    drepo.Metrics
	log        *logger.Logger
}

// NewReservesAdapter creates the reserves source adapter.
func NewReservesAdapter(cfg *config.Config, f drepo.Fetcher, m drepo.Metrics, log *logger.Logger) *ReservesAdapter {
	return &ReservesAdapter{
		url:        cfg.Sources.Reserves.URL,
		timeout:    cfg.Sources.Reserves.Timeout,
		userAgent:  cfg.Sources.UserAgent,
		minSupport: cfg.Sources.Reserves.MinSupport,
		topK:       cfg.Sources.Reserves.TopK,
		fetcher:    f,
		metrics:    m,
		log:        log,
	}
}

func (a *ReservesAdapter) Name() string { return "reserves" }

// Collect runs one pass and reduces any fault to the returned status.
func (a *ReservesAdapter) Collect(ctx context.Context) models.SourceStatus {
	text, err := a.collect(ctx)
	if err != nil {
		a.metrics.RecordFault(a.Name(), faultKind(err))
		a.log.Warn("source failed", logger.String("source", a.Name()), logger.Error(err))
		return failStatus(a.Name(), reservesTitle, err)
	}
	a.metrics.RecordFetch(a.Name())
	return okStatus(a.Name(), text)
}

func (a *ReservesAdapter) collect(ctx context.Context) (string, error) {
	fctx, cancel := context.WithTimeout(ctx, fetchTimeout(a.timeout))
	defer cancel()

	body, err := a.fetcher.Fetch(fctx, a.url, map[string]string{"User-Agent": a.userAgent})
	if err != nil {
		return "", models.TransportFault(a.Name(), err)
	}

	tables, err := tabular.ExtractTables(body)
	if err != nil {
		return "", models.DriftFault(a.Name(), "data table", err)
	}
	target := tabular.FindTableWithHeader(tables, "country")
	if target == nil {
		return "", models.DriftFault(a.Name(), "data table", errors.New("no table with a country header"))
	}

	entity, err := tabular.Resolve(target, "entity", []tabular.Heuristic{
		tabular.NameContains("country"),
		tabular.PositionAt(0),
	})
	if err != nil {
		return "", models.DriftFault(a.Name(), "entity", err)
	}

	minSup := tabular.MinSupport(target.NumRows(), a.minSupport)
	nums := tabular.AdmissibleNumericColumns(target, minSup, entity.Index)
	if len(nums) < 2 {
		return "", models.DriftFault(a.Name(), "reporting periods",
			fmt.Errorf("fewer than two numeric columns with support >= %d", minSup))
	}

	// Policy: the table lists reporting periods left to right chronologically,
	// so the last two admissible columns are (previous, current).
	prevIdx, curIdx := nums[len(nums)-2], nums[len(nums)-1]
	prev := tabular.NormalizeColumn(target, prevIdx)
	cur := tabular.NormalizeColumn(target, curIdx)
	labels := target.Columns[entity.Index].Cells

	rows := tabular.BuildRankedRows(labels, prev, cur)
	if len(rows) == 0 {
		return "", models.NumericEscalation(a.Name(), "period change")
	}
	top := tabular.RankTopK(rows, a.topK)

	a.log.Debug("reserves resolved",
		logger.String("entity_rule", entity.Rule),
		logger.String("prev_col", target.Columns[prevIdx].Name),
		logger.String("cur_col", target.Columns[curIdx].Name),
		logger.Int("ranked_rows", len(rows)),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "%s (top %d changes)\n", reservesTitle, a.topK)
	fmt.Fprintf(&b, "- periods: %s → %s", target.Columns[prevIdx].Name, target.Columns[curIdx].Name)
	for _, r := range top {
		fmt.Fprintf(&b, "\n- %s: %+.1f t", r.Label, r.Delta)
	}
	return b.String(), nil
}
