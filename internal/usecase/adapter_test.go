package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"MacroGold/internal/domain/models"
	"MacroGold/pkg/config"
	"MacroGold/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

type stubFetcher struct {
	body []byte
	err  error
	url  string
}

func (f *stubFetcher) Fetch(_ context.Context, url string, _ map[string]string) ([]byte, error) {
	f.url = url
	if f.err != nil {
		return nil, f.err
	}
	return f.body, nil
}

type stubMetrics struct {
	mu      sync.Mutex
	fetches []string
	faults  map[string]string
	values  map[string]float64
	runs    int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{faults: map[string]string{}, values: map[string]float64{}}
}

func (m *stubMetrics) RecordFetch(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches = append(m.fetches, source)
}

func (m *stubMetrics) RecordFault(source, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults[source] = kind
}

func (m *stubMetrics) RecordLastValue(series string, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[series] = v
}

func (m *stubMetrics) RecordRunDuration(float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "123,456", groupThousands(123456))
	assert.Equal(t, "-1,234,567", groupThousands(-1234567))
	assert.Equal(t, "42", groupThousands(42.9))
	assert.Equal(t, "0", groupThousands(0))
}

func TestFailStatusCarriesStage(t *testing.T) {
	err := models.DriftFault("reserves", "entity", errors.New("boom"))
	st := failStatus("reserves", "📒 Central-bank gold reserves", err)

	assert.True(t, st.Failed())
	assert.Equal(t, models.StageResolving, st.Stage)
	assert.Contains(t, st.Text, "📒 Central-bank gold reserves")
	assert.Contains(t, st.Text, "failed:")
}

func TestFaultKind(t *testing.T) {
	assert.Equal(t, "transport", faultKind(models.TransportFault("x", errors.New("eof"))))
	assert.Equal(t, "other", faultKind(errors.New("plain")))
}
