package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroGold/internal/domain/models"
)

const reservesPage = `<html><body>
<table>
  <tr><th>Home</th><th>Data</th><th>About</th></tr>
  <tr><td>a</td><td>b</td><td>c</td></tr>
</table>
<table>
  <thead><tr><th>Country</th><th>Jun 2026</th><th>Jul 2026</th></tr></thead>
  <tbody>
    <tr><td>United States</td><td>8,133.5</td><td>8,133.5</td></tr>
    <tr><td>Germany</td><td>3,351.5</td><td>3,352.6</td></tr>
    <tr><td>Italy</td><td>2,451.8</td><td>2,451.8</td></tr>
    <tr><td>France</td><td>2,437.0</td><td>2,437.0</td></tr>
    <tr><td>Russia</td><td>2,335.8</td><td>2,329.6</td></tr>
    <tr><td>China</td><td>2,298.5</td><td>2,302.3</td></tr>
    <tr><td>Switzerland</td><td>1,040.0</td><td>1,040.0</td></tr>
    <tr><td>India</td><td>879.6</td><td>880.2</td></tr>
    <tr><td>Japan</td><td>846.0</td><td>846.0</td></tr>
    <tr><td>Turkey</td><td>584.9</td><td>595.0</td></tr>
  </tbody>
</table>
</body></html>`

func newReservesAdapter(t *testing.T, f *stubFetcher, m *stubMetrics) *ReservesAdapter {
	t.Helper()
	cfg := testConfig(t)
	cfg.Sources.Reserves.MinSupport = 3
	return NewReservesAdapter(cfg, f, m, testLogger(t))
}

func TestReservesCollect(t *testing.T) {
	m := newStubMetrics()
	a := newReservesAdapter(t, &stubFetcher{body: []byte(reservesPage)}, m)

	st := a.Collect(context.Background())

	require.False(t, st.Failed(), "status: %v", st.Err)
	assert.Equal(t, models.StageDone, st.Stage)
	assert.Contains(t, st.Text, "📒 Central-bank gold reserves (top 5 changes)")
	assert.Contains(t, st.Text, "periods: Jun 2026 → Jul 2026")

	lines := strings.Split(st.Text, "\n")
	// Largest absolute change first, sign preserved.
	assert.Contains(t, lines[2], "Turkey: +10.1 t")
	assert.Contains(t, lines[3], "Russia: -6.2 t")
	assert.Contains(t, lines[4], "China: +3.8 t")
	assert.NotContains(t, st.Text, "United States")
	assert.Equal(t, []string{"reserves"}, m.fetches)
}

func TestReservesSkipsLayoutTable(t *testing.T) {
	a := newReservesAdapter(t, &stubFetcher{body: []byte(reservesPage)}, newStubMetrics())

	st := a.Collect(context.Background())

	require.False(t, st.Failed())
	assert.NotContains(t, st.Text, "Home")
}

func TestReservesRenamedEntityColumnFallsBack(t *testing.T) {
	// "Country" renamed away entirely: no table has a country header.
	page := `<html><body><table>
	<thead><tr><th>Nation</th><th>Jun</th><th>Jul</th></tr></thead>
	<tbody><tr><td>Germany</td><td>1</td><td>2</td></tr></tbody>
	</table></body></html>`
	m := newStubMetrics()
	a := newReservesAdapter(t, &stubFetcher{body: []byte(page)}, m)

	st := a.Collect(context.Background())

	require.True(t, st.Failed())
	assert.Equal(t, models.FaultDrift, models.FaultKindOf(st.Err))
	assert.Equal(t, "drift", m.faults["reserves"])
}

func TestReservesTransportFailure(t *testing.T) {
	m := newStubMetrics()
	a := newReservesAdapter(t, &stubFetcher{err: errors.New("connection refused")}, m)

	st := a.Collect(context.Background())

	require.True(t, st.Failed())
	assert.Equal(t, models.StageFetching, st.Stage)
	assert.Equal(t, "transport", m.faults["reserves"])
	assert.Contains(t, st.Text, "📒 Central-bank gold reserves")
	assert.Empty(t, m.fetches)
}

func TestReservesSingleNumericColumnIsDrift(t *testing.T) {
	page := `<html><body><table>
	<thead><tr><th>Country</th><th>Jul 2026</th></tr></thead>
	<tbody>
	<tr><td>Germany</td><td>3,352.6</td></tr>
	<tr><td>Italy</td><td>2,451.8</td></tr>
	<tr><td>France</td><td>2,437.0</td></tr>
	</tbody></table></body></html>`
	a := newReservesAdapter(t, &stubFetcher{body: []byte(page)}, newStubMetrics())

	st := a.Collect(context.Background())

	require.True(t, st.Failed())
	assert.Equal(t, models.FaultDrift, models.FaultKindOf(st.Err))
	assert.Contains(t, st.Err.Error(), "reporting periods")
}
