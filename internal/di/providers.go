package di

import (
    "fmt"
    "time"

    "MacroGold/internal/domain/repository"
    "MacroGold/internal/handler/api"
    internalrepo "MacroGold/internal/repository"
    icache "MacroGold/internal/service/cache"
    "MacroGold/internal/service/telegram"
    "MacroGold/internal/usecase"
    "MacroGold/pkg/config"
    "MacroGold/pkg/logger"
    "MacroGold/pkg/metrics"
    "MacroGold/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideFetcher creates the shared HTTP fetcher.
func ProvideFetcher(cfg *config.Config) repository.Fetcher {
	return internalrepo.NewHTTPFetcher(maxSourceTimeout(cfg), cfg.Sources.UserAgent)
}

// ProvideNotifier creates the Telegram notifier. When credentials are absent
// it degrades to stdout delivery rather than failing wiring.
func ProvideNotifier(cfg *config.Config, l *logger.Logger) repository.Notifier {
	return telegram.New(cfg.Telegram.Token, cfg.Telegram.ChatID, cfg.Telegram.APIBase, cfg.Telegram.Timeout, l)
}

// ProvideAdapters builds the source adapters in the configured order.
func ProvideAdapters(cfg *config.Config, f repository.Fetcher, m repository.Metrics, l *logger.Logger) ([]repository.Adapter, error) {
	byName := map[string]repository.Adapter{
		"reserves":    usecase.NewReservesAdapter(cfg, f, m, l),
		"holdings":    usecase.NewHoldingsAdapter(cfg, f, m, l),
		"price":       usecase.NewPriceAdapter(cfg, f, m, l),
		"positioning": usecase.NewPositioningAdapter(cfg, f, m, l),
	}

	adapters := make([]repository.Adapter, 0, len(cfg.Sources.Order))
	for _, name := range cfg.Sources.Order {
		a, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown source %q in order", name)
		}
		adapters = append(adapters, a)
	}
	return adapters, nil
}

// ProvideDigestRunner creates the digest use case.
func ProvideDigestRunner(
	adapters []repository.Adapter,
	n repository.Notifier,
	m repository.Metrics,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.DigestRunner {
	return usecase.NewDigestRunner(adapters, n, m, l, cfg.Digest.HeaderPrefix)
}

// ProvideTextCache creates the in-process digest cache for serve mode.
func ProvideTextCache() icache.TextCache {
	return icache.NewTTLCache()
}

// ProvideDigestHandler creates the Echo handler for serve mode.
func ProvideDigestHandler(l *logger.Logger, runner *usecase.DigestRunner, cache icache.TextCache, cfg *config.Config) *api.DigestEchoHandler {
	return api.NewDigestEchoHandler(l, runner, cache, cfg.Digest.CacheTTL)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *logger.Logger, runner *usecase.DigestRunner, handler *api.DigestEchoHandler) *server.App {
	return server.New(cfg, l, runner, handler)
}

// maxSourceTimeout is the fetcher-level ceiling; per-source contexts bound
// each request below it.
func maxSourceTimeout(cfg *config.Config) time.Duration {
	var ceiling time.Duration
	for _, d := range []time.Duration{
		cfg.Sources.Reserves.Timeout,
		cfg.Sources.Holdings.Timeout,
		cfg.Sources.Price.Timeout,
		cfg.Sources.Positioning.Timeout,
	} {
		if d > ceiling {
			ceiling = d
		}
	}
	return ceiling
}
