package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroGold/internal/domain/models"
	drepo "MacroGold/internal/domain/repository"
)

type fakeAdapter struct {
	name   string
	status models.SourceStatus
	panics bool
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Collect(context.Context) models.SourceStatus {
	if f.panics {
		panic("index out of range")
	}
	return f.status
}

type captureNotifier struct {
	texts []string
	err   error
}

func (n *captureNotifier) Notify(_ context.Context, text string) error {
	n.texts = append(n.texts, text)
	return n.err
}

func digestAdapters() []drepo.Adapter {
	return []drepo.Adapter{
		&fakeAdapter{name: "reserves", status: models.SourceStatus{
			Source: "reserves", Stage: models.StageDone,
			Text: "📒 Central-bank gold reserves (top 5 changes)\n- Turkey: +10.1 t",
		}},
		&fakeAdapter{name: "holdings", status: models.SourceStatus{
			Source: "holdings", Stage: models.StageFetching,
			Text: "📊 GLD ETF holdings\n- failed: holdings: fetching transport: timeout",
			Err:  models.TransportFault("holdings", errors.New("timeout")),
		}},
		&fakeAdapter{name: "price", status: models.SourceStatus{
			Source: "price", Stage: models.StageDone,
			Text: "📈 IAU ETF price\n- close: 49.41",
		}},
	}
}

func TestDigestRunKeepsFailedSectionInOrder(t *testing.T) {
	m := newStubMetrics()
	r := NewDigestRunner(digestAdapters(), &captureNotifier{}, m, testLogger(t), "🕒 Gold macro data update")

	text := r.Run(context.Background())

	sections := strings.Split(text, "\n\n")
	require.Len(t, sections, 4)
	assert.Contains(t, sections[0], "🕒 Gold macro data update (UTC ")
	assert.Contains(t, sections[1], "📒 Central-bank gold reserves")
	assert.Contains(t, sections[2], "failed:")
	assert.Contains(t, sections[3], "📈 IAU ETF price")
	assert.Equal(t, 1, m.runs)
}

func TestDigestRunAndNotifyDelivers(t *testing.T) {
	n := &captureNotifier{}
	r := NewDigestRunner(digestAdapters(), n, newStubMetrics(), testLogger(t), "🕒 Gold macro data update")

	text, err := r.RunAndNotify(context.Background())

	require.NoError(t, err)
	require.Len(t, n.texts, 1)
	assert.Equal(t, text, n.texts[0])
	assert.Contains(t, text, "📒 Central-bank gold reserves")
}

func TestDigestRunAndNotifyWrapsDeliveryError(t *testing.T) {
	n := &captureNotifier{err: errors.New("chat not found")}
	r := NewDigestRunner(digestAdapters(), n, newStubMetrics(), testLogger(t), "🕒 Gold macro data update")

	_, err := r.RunAndNotify(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliver digest")
}

func TestDigestRunAndNotifyRecoversPanic(t *testing.T) {
	n := &captureNotifier{}
	adapters := []drepo.Adapter{&fakeAdapter{name: "reserves", panics: true}}
	r := NewDigestRunner(adapters, n, newStubMetrics(), testLogger(t), "🕒 Gold macro data update")

	text, err := r.RunAndNotify(context.Background())

	require.Error(t, err)
	assert.Empty(t, text)
	assert.Contains(t, err.Error(), "panicked")
	require.Len(t, n.texts, 1)
	assert.Contains(t, n.texts[0], "run failed: index out of range")
}

func TestAssembleEmptyStatuses(t *testing.T) {
	assert.Equal(t, "header", Assemble("header", nil))
}
