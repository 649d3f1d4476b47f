package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroGold/internal/domain/models"
)

const cotCSV = `Market_and_Exchange_Names,As_of_Date_In_Form_YYMMDD,M_Money_Positions_Long_ALL,M_Money_Positions_Short_ALL
"SILVER - COMMODITY EXCHANGE INC.",260825,41205,18777
"GOLD - COMMODITY EXCHANGE INC.",260818,120400,31250
"GOLD - COMMODITY EXCHANGE INC.",260825,"123,456",30102
`

func newPositioningAdapter(t *testing.T, f *stubFetcher, m *stubMetrics) *PositioningAdapter {
	t.Helper()
	return NewPositioningAdapter(testConfig(t), f, m, testLogger(t))
}

func TestPositioningCollect(t *testing.T) {
	m := newStubMetrics()
	a := newPositioningAdapter(t, &stubFetcher{body: []byte(cotCSV)}, m)

	st := a.Collect(context.Background())

	require.False(t, st.Failed(), "status: %v", st.Err)
	assert.Contains(t, st.Text, "📑 CFTC COT (gold futures)")
	// Last matching row wins: the 260825 report, not 260818.
	assert.Contains(t, st.Text, "report week: 2026-08-25")
	assert.Contains(t, st.Text, "managed money net long: 93,354 lots")
	assert.Contains(t, st.Text, "long 123,456 / short 30,102")
	assert.InDelta(t, 93354, m.values["cot_net_long"], 1e-9)
}

func TestPositioningFractionalYYMMDD(t *testing.T) {
	// Some vintages serialize the date column as a float.
	csv := `Market_and_Exchange_Names,As_of_Date_In_Form_YYMMDD,M_Money_Positions_Long_ALL,M_Money_Positions_Short_ALL
"GOLD - COMMODITY EXCHANGE INC.",260825.0,120400,31250
`
	a := newPositioningAdapter(t, &stubFetcher{body: []byte(csv)}, newStubMetrics())

	st := a.Collect(context.Background())

	require.False(t, st.Failed(), "status: %v", st.Err)
	assert.Contains(t, st.Text, "report week: 2026-08-25")
}

func TestPositioningContractTokenCaseInsensitive(t *testing.T) {
	csv := `Market_and_Exchange_Names,As_of_Date_In_Form_YYMMDD,M_Money_Positions_Long_ALL,M_Money_Positions_Short_ALL
"Gold - Commodity Exchange Inc.",260825,100,40
`
	a := newPositioningAdapter(t, &stubFetcher{body: []byte(csv)}, newStubMetrics())

	st := a.Collect(context.Background())

	require.False(t, st.Failed(), "status: %v", st.Err)
	assert.Contains(t, st.Text, "net long: 60 lots")
}

func TestPositioningNoContractRowIsDrift(t *testing.T) {
	csv := `Market_and_Exchange_Names,As_of_Date_In_Form_YYMMDD,M_Money_Positions_Long_ALL,M_Money_Positions_Short_ALL
"SILVER - COMMODITY EXCHANGE INC.",260825,41205,18777
`
	m := newStubMetrics()
	a := newPositioningAdapter(t, &stubFetcher{body: []byte(csv)}, m)

	st := a.Collect(context.Background())

	require.True(t, st.Failed())
	assert.Equal(t, models.FaultDrift, models.FaultKindOf(st.Err))
	assert.Equal(t, "drift", m.faults["positioning"])
}

func TestPositioningLegacyColumnNames(t *testing.T) {
	csv := `Market and Exchange Names,Report_Date_YYMMDD,Money_Mgt_Long,Money_Mgt_Short
"GOLD - COMMODITY EXCHANGE INC.",260825,120400,31250
`
	a := newPositioningAdapter(t, &stubFetcher{body: []byte(csv)}, newStubMetrics())

	st := a.Collect(context.Background())

	require.False(t, st.Failed(), "status: %v", st.Err)
	assert.Contains(t, st.Text, "net long: 89,150 lots")
}

func TestPositioningUnparseablePositionsEscalate(t *testing.T) {
	csv := `Market_and_Exchange_Names,As_of_Date_In_Form_YYMMDD,M_Money_Positions_Long_ALL,M_Money_Positions_Short_ALL
"GOLD - COMMODITY EXCHANGE INC.",260825,.,.
`
	m := newStubMetrics()
	a := newPositioningAdapter(t, &stubFetcher{body: []byte(csv)}, m)

	st := a.Collect(context.Background())

	require.True(t, st.Failed())
	assert.Equal(t, models.FaultDrift, models.FaultKindOf(st.Err))
	assert.Equal(t, models.StageComputing, st.Stage)
}
