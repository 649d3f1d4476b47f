package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MacroGold/internal/domain/models"
	drepo "MacroGold/internal/domain/repository"
	"MacroGold/internal/services/tabular"
	"MacroGold/pkg/config"
	"MacroGold/pkg/logger"
	"MacroGold/pkg/util"
)

const positioningTitle = "📑 CFTC COT (gold futures)"

// PositioningAdapter reports the managed-money net long position for the
// gold futures contract from the weekly disaggregated COT report.
type PositioningAdapter struct {
	url           string
	timeout       time.Duration
	userAgent     string
	contractToken string
	fetcher       drepo.Fetcher
	metrics       drepo.Metrics
	log           *logger.Logger
}

// NewPositioningAdapter creates the positioning source adapter.
func NewPositioningAdapter(cfg *config.Config, f drepo.Fetcher, m drepo.Metrics, log *logger.Logger) *PositioningAdapter {
	return &PositioningAdapter{
		url:           cfg.Sources.Positioning.URL,
		timeout:       cfg.Sources.Positioning.Timeout,
		userAgent:     cfg.Sources.UserAgent,
		contractToken: cfg.Sources.Positioning.ContractToken,
		fetcher:       f,
		metrics:       m,
		log:           log,
	}
}

func (a *PositioningAdapter) Name() string { return "positioning" }

// Collect runs one pass and reduces any fault to the returned status.
func (a *PositioningAdapter) Collect(ctx context.Context) models.SourceStatus {
	text, err := a.collect(ctx)
	if err != nil {
		a.metrics.RecordFault(a.Name(), faultKind(err))
		a.log.Warn("source failed", logger.String("source", a.Name()), logger.Error(err))
		return failStatus(a.Name(), positioningTitle, err)
	}
	a.metrics.RecordFetch(a.Name())
	return okStatus(a.Name(), text)
}

func (a *PositioningAdapter) collect(ctx context.Context) (string, error) {
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

	nameCol, err := tabular.Resolve(t, "contract name", []tabular.Heuristic{
		tabular.ExactName("Market_and_Exchange_Names"),
		tabular.NameContainsAll("Market", "Exchange"),
	})
	if err != nil {
		return "", models.DriftFault(a.Name(), "contract name", err)
	}

	row := a.findContractRow(t, nameCol.Index)
	if row < 0 {
		return "", models.DriftFault(a.Name(), "gold contract row",
			fmt.Errorf("no row matches contract token %q", a.contractToken))
	}

	longCol, err := tabular.Resolve(t, "managed money long", []tabular.Heuristic{
		tabular.NameContains("M_Money_Positions_Long"),
		tabular.NameContains("M_Money_Long"),
		tabular.NameContains("Money_Mgt_Long"),
	})
	if err != nil {
		return "", models.DriftFault(a.Name(), "managed money long", err)
	}
	shortCol, err := tabular.Resolve(t, "managed money short", []tabular.Heuristic{
		tabular.NameContains("M_Money_Positions_Short"),
		tabular.NameContains("M_Money_Short"),
		tabular.NameContains("Money_Mgt_Short"),
	})
	if err != nil {
		return "", models.DriftFault(a.Name(), "managed money short", err)
	}

	long := tabular.Normalize(t.Cell(longCol.Index, row))
	short := tabular.Normalize(t.Cell(shortCol.Index, row))
	if !long.Valid || !short.Valid {
		return "", models.NumericEscalation(a.Name(), "managed money positions")
	}
	net := long.Float64 - short.Float64

	reportWeek := a.reportWeek(t, row)
	a.metrics.RecordLastValue("cot_net_long", net)
	a.log.Debug("positioning resolved",
		logger.String("contract", t.Cell(nameCol.Index, row)),
		logger.String("long_col", longCol.Name),
		logger.String("short_col", shortCol.Name),
	)

	var b strings.Builder
	b.WriteString(positioningTitle)
	fmt.Fprintf(&b, "\n- report week: %s", reportWeek)
	fmt.Fprintf(&b, "\n- managed money net long: %s lots", groupThousands(net))
	fmt.Fprintf(&b, "\n- long %s / short %s", groupThousands(long.Float64), groupThousands(short.Float64))
	return b.String(), nil
}

// findContractRow returns the last row whose name cell contains the contract
// token, so the most recent report week wins when several are present.
func (a *PositioningAdapter) findContractRow(t *models.Table, nameCol int) int {
	token := strings.ToUpper(a.contractToken)
	for row := t.NumRows() - 1; row >= 0; row-- {
		if strings.Contains(strings.ToUpper(t.Cell(nameCol, row)), token) {
			return row
		}
	}
	return -1
}

// reportWeek renders the report date for the matched row, falling back to the
// raw cell when the column is absent or the value does not parse.
func (a *PositioningAdapter) reportWeek(t *models.Table, row int) string {
	dateCol, err := tabular.Resolve(t, "report date", []tabular.Heuristic{
		tabular.ExactName("As_of_Date_In_Form_YYMMDD"),
		tabular.NameContains("YYMMDD"),
	})
	if err != nil {
		return "unknown"
	}
	raw := t.Cell(dateCol.Index, row)
	if d, ok := util.ParseYYMMDD(raw); ok {
		return d.Format("2006-01-02")
	}
	return raw
}
