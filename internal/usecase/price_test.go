package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroGold/internal/domain/models"
)

const priceCSV = `Date,Open,High,Low,Close,Volume
2026-08-24,48.00,48.40,47.90,48.20,5100200
2026-08-25,48.25,48.60,48.10,48.50,4890100
2026-08-26,48.55,48.80,48.30,48.40,5012300
2026-08-27,48.45,49.10,48.40,49.00,5370900
2026-08-28,49.05,49.60,49.00,49.41,5522800
`

func newPriceAdapter(t *testing.T, f *stubFetcher, m *stubMetrics) *PriceAdapter {
	t.Helper()
	return NewPriceAdapter(testConfig(t), f, m, testLogger(t))
}

func TestPriceCollect(t *testing.T) {
	m := newStubMetrics()
	a := newPriceAdapter(t, &stubFetcher{body: []byte(priceCSV)}, m)

	st := a.Collect(context.Background())

	require.False(t, st.Failed(), "status: %v", st.Err)
	assert.Contains(t, st.Text, "📈 IAU ETF price")
	assert.Contains(t, st.Text, "as of: 2026-08-28")
	assert.Contains(t, st.Text, "close: 49.41")
	assert.Contains(t, st.Text, "day change: +0.41 (+0.84%)")
	assert.Contains(t, st.Text, "5-day change: +1.21 (+2.51%)")
	assert.InDelta(t, 49.41, m.values["iau_close"], 1e-9)
}

func TestPriceColumnConfigOverride(t *testing.T) {
	csv := `Date,Adj Close
2026-08-24,48.20
2026-08-25,48.50
2026-08-26,48.40
2026-08-27,49.00
2026-08-28,49.41
`
	cfg := testConfig(t)
	cfg.Sources.Price.Column = "Adj Close"
	a := NewPriceAdapter(cfg, &stubFetcher{body: []byte(csv)}, newStubMetrics(), testLogger(t))

	st := a.Collect(context.Background())

	require.False(t, st.Failed(), "status: %v", st.Err)
	assert.Contains(t, st.Text, "close: 49.41")
}

func TestPriceMissingCloseColumnIsDrift(t *testing.T) {
	csv := `Date,Open,High,Low
2026-08-27,48.45,49.10,48.40
2026-08-28,49.05,49.60,49.00
`
	m := newStubMetrics()
	a := newPriceAdapter(t, &stubFetcher{body: []byte(csv)}, m)

	st := a.Collect(context.Background())

	require.True(t, st.Failed())
	assert.Equal(t, models.FaultDrift, models.FaultKindOf(st.Err))
	assert.Equal(t, "drift", m.faults["price"])
}

func TestPriceZeroBaseReportsZeroPercent(t *testing.T) {
	csv := `Date,Close
2026-08-24,0
2026-08-25,0
2026-08-26,1.00
2026-08-27,2.00
2026-08-28,3.00
`
	a := newPriceAdapter(t, &stubFetcher{body: []byte(csv)}, newStubMetrics())

	st := a.Collect(context.Background())

	require.False(t, st.Failed(), "status: %v", st.Err)
	assert.Contains(t, st.Text, "5-day change: +3.00 (+0.00%)")
}
