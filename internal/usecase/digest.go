package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MacroGold/internal/domain/models"
	drepo "MacroGold/internal/domain/repository"
	"MacroGold/pkg/logger"
)

// DigestRunner walks the configured sources in order, assembles one digest
// text from their sections and hands it to the notifier. Sources run
// sequentially so the section order is stable run to run.
type DigestRunner struct {
	adapters     []drepo.Adapter
	notifier     drepo.Notifier
	metrics      drepo.Metrics
	log          *logger.Logger
	headerPrefix string
}

// NewDigestRunner wires the runner from its collaborators. The adapter slice
// is expected to already be in delivery order.
func NewDigestRunner(adapters []drepo.Adapter, n drepo.Notifier, m drepo.Metrics, log *logger.Logger, headerPrefix string) *DigestRunner {
	return &DigestRunner{
		adapters:     adapters,
		notifier:     n,
		metrics:      m,
		log:          log,
		headerPrefix: headerPrefix,
	}
}

// Run collects every source once and returns the assembled digest. A failed
// source contributes its failure section; it never aborts the run.
func (r *DigestRunner) Run(ctx context.Context) string {
	start := time.Now()
	statuses := make([]models.SourceStatus, 0, len(r.adapters))
	for _, a := range r.adapters {
		st := a.Collect(ctx)
		if st.Failed() {
			r.log.Warn("section degraded",
				logger.String("source", st.Source),
				logger.String("stage", string(st.Stage)),
			)
		}
		statuses = append(statuses, st)
	}
	r.metrics.RecordRunDuration(time.Since(start).Seconds())
	return Assemble(r.header(), statuses)
}

// RunAndNotify runs one digest pass, delivers the result and returns the
// assembled text. A panic inside a source is reported through the notifier
// instead of crashing the process.
func (r *DigestRunner) RunAndNotify(ctx context.Context) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("run panicked", logger.Any("panic", rec))
			msg := fmt.Sprintf("%s\n\nrun failed: %v", r.header(), rec)
			if nerr := r.notifier.Notify(ctx, msg); nerr != nil {
				r.log.Error("failed to deliver panic notice", logger.Error(nerr))
			}
			text = ""
			err = fmt.Errorf("digest run panicked: %v", rec)
		}
	}()

	text = r.Run(ctx)
	if err := r.notifier.Notify(ctx, text); err != nil {
		return text, fmt.Errorf("deliver digest: %w", err)
	}
	return text, nil
}

func (r *DigestRunner) header() string {
	return fmt.Sprintf("%s (UTC %s)", r.headerPrefix, time.Now().UTC().Format("2006-01-02"))
}

// Assemble joins the header and the source sections with blank lines. Every
// status keeps its slot, failures included.
func Assemble(header string, statuses []models.SourceStatus) string {
	parts := make([]string, 0, len(statuses)+1)
	parts = append(parts, header)
	for _, st := range statuses {
		parts = append(parts, st.Text)
	}
	return strings.Join(parts, "\n\n")
}
