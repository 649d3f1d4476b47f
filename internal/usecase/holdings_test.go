package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroGold/internal/domain/models"
)

const holdingsCSV = `Date,GLD Value,Total Net Asset Value Tonnes in the Trust
2026-08-24,240.10,"912.45"
2026-08-25,241.02,"915.33"
2026-08-26,240.88,"915.33"
2026-08-27,242.15,"918.76"
2026-08-28,243.40,"921.02"
`

func newHoldingsAdapter(t *testing.T, f *stubFetcher, m *stubMetrics) *HoldingsAdapter {
	t.Helper()
	return NewHoldingsAdapter(testConfig(t), f, m, testLogger(t))
}

func TestHoldingsCollect(t *testing.T) {
	m := newStubMetrics()
	a := newHoldingsAdapter(t, &stubFetcher{body: []byte(holdingsCSV)}, m)

	st := a.Collect(context.Background())

	require.False(t, st.Failed(), "status: %v", st.Err)
	assert.Contains(t, st.Text, "📊 GLD ETF holdings")
	assert.Contains(t, st.Text, "as of: 2026-08-28")
	assert.Contains(t, st.Text, "holdings: 921.02 t")
	assert.Contains(t, st.Text, "day change: +2.26 t")
	assert.Contains(t, st.Text, "5-day change: +8.57 t")
	assert.InDelta(t, 921.02, m.values["gld_tonnes"], 1e-9)
}

func TestHoldingsUnsortedRowsStillLatestFirst(t *testing.T) {
	// Archive served newest-first; the series is re-sorted before deltas.
	csv := `Date,Tonnes
2026-08-28,921.02
2026-08-27,918.76
2026-08-26,915.33
2026-08-25,915.33
2026-08-24,912.45
`
	a := newHoldingsAdapter(t, &stubFetcher{body: []byte(csv)}, newStubMetrics())

	st := a.Collect(context.Background())

	require.False(t, st.Failed(), "status: %v", st.Err)
	assert.Contains(t, st.Text, "as of: 2026-08-28")
	assert.Contains(t, st.Text, "holdings: 921.02 t")
}

func TestHoldingsTooFewRowsIsInsufficient(t *testing.T) {
	csv := `Date,Tonnes
2026-08-27,918.76
2026-08-28,921.02
`
	m := newStubMetrics()
	a := newHoldingsAdapter(t, &stubFetcher{body: []byte(csv)}, m)

	st := a.Collect(context.Background())

	require.True(t, st.Failed())
	assert.Equal(t, models.FaultInsufficient, models.FaultKindOf(st.Err))
	assert.Equal(t, "insufficient", m.faults["holdings"])
}

func TestHoldingsMissingTonnesColumnIsDrift(t *testing.T) {
	csv := `Date,GLD Value
2026-08-27,242.15
2026-08-28,243.40
`
	a := newHoldingsAdapter(t, &stubFetcher{body: []byte(csv)}, newStubMetrics())

	st := a.Collect(context.Background())

	require.True(t, st.Failed())
	assert.Equal(t, models.FaultDrift, models.FaultKindOf(st.Err))
	assert.Equal(t, models.StageResolving, st.Stage)
}

func TestHoldingsAllValuesUnparseableEscalates(t *testing.T) {
	csv := `Date,Tonnes
2026-08-27,HOLIDAY
2026-08-28,HOLIDAY
`
	a := newHoldingsAdapter(t, &stubFetcher{body: []byte(csv)}, newStubMetrics())

	st := a.Collect(context.Background())

	require.True(t, st.Failed())
	assert.Equal(t, models.FaultDrift, models.FaultKindOf(st.Err))
}
