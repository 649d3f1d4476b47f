package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"MacroGold/internal/handler/api"
	"MacroGold/internal/usecase"
	"MacroGold/pkg/config"
	xhttp "MacroGold/pkg/http"
	applogger "MacroGold/pkg/logger"
)

// Mode selects the application lifecycle.
const (
	ModeOnce  = "once"  // one digest pass, deliver, exit
	ModeServe = "serve" // cron schedule plus the HTTP API
)

// App encapsulates the application lifecycle for both modes.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	runner     *usecase.DigestRunner
	handler    *api.DigestEchoHandler
	httpServer *xhttp.Server
	mode       string
}

// New creates an App. The mode defaults to ModeOnce until SetMode is called.
func New(cfg *config.Config, log *applogger.Logger, runner *usecase.DigestRunner, handler *api.DigestEchoHandler) *App {
	return &App{
		cfg:     cfg,
		log:     log,
		runner:  runner,
		handler: handler,
		mode:    ModeOnce,
	}
}

// SetMode selects the lifecycle before Run.
func (a *App) SetMode(mode string) { a.mode = mode }

// Run executes the selected mode. ModeOnce returns after one delivery;
// ModeServe blocks until an interrupt.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.mode == ModeServe {
		return a.runServe(ctx)
	}
	_, err := a.runner.RunAndNotify(ctx)
	return err
}

func (a *App) runServe(ctx context.Context) error {
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	c := cron.New()
	if _, err := c.AddFunc(a.cfg.Digest.Schedule, func() {
		text, err := a.runner.RunAndNotify(ctx)
		if err != nil {
			a.log.Error("scheduled run failed", applogger.Error(err))
			return
		}
		a.handler.RefreshCache(text)
	}); err != nil {
		return err
	}
	c.Start()
	a.log.Info("schedule armed", applogger.String("cron", a.cfg.Digest.Schedule))

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown(ctx, c)
}

// shutdown stops the schedule first so no run starts mid-teardown.
func (a *App) shutdown(ctx context.Context, c *cron.Cron) error {
	<-c.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		return err
	}

	a.log.Info("shutdown complete")
	return nil
}
