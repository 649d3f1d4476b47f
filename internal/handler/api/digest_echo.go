package api

import (
    "net/http"
    "time"

    icache "MacroGold/internal/service/cache"
    "MacroGold/internal/service/ratelimit"
    "MacroGold/internal/usecase"
    xhttp "MacroGold/pkg/http"
    xlogger "MacroGold/pkg/logger"

    "github.com/labstack/echo/v4"
)

const digestCacheKey = "digest:latest"

// DigestEchoHandler exposes the digest over HTTP in serve mode. GET returns
// the cached text from the last scheduled run and can force a fresh pass;
// POST runs a pass and delivers it like the scheduler would.
type DigestEchoHandler struct {
	logger   *xlogger.Logger
	runner   *usecase.DigestRunner
	cache    icache.TextCache
	cacheTTL time.Duration
	rl       *ratelimit.Limiter
}

func NewDigestEchoHandler(logger *xlogger.Logger, runner *usecase.DigestRunner, cache icache.TextCache, cacheTTL time.Duration) *DigestEchoHandler {
	return &DigestEchoHandler{logger: logger, runner: runner, cache: cache, cacheTTL: cacheTTL, rl: ratelimit.New()}
}

func (h *DigestEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/digest", h.Digest)
	g.POST("/run", h.Run)
	e.GET("/healthz", h.Health)
}

// DigestRequest carries the query parameters of GET /api/digest.
type DigestRequest struct {
	Refresh bool `query:"refresh"`
}

// DigestResponse is the GET /api/digest payload.
type DigestResponse struct {
	Text   string    `json:"text"`
	Cached bool      `json:"cached"`
	At     time.Time `json:"at"`
}

func (h *DigestEchoHandler) Digest(c echo.Context) error {
	req := &DigestRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if !req.Refresh {
		if text, ok := h.cache.GetText(digestCacheKey); ok {
			return xhttp.SuccessResponse(c, &DigestResponse{Text: text, Cached: true, At: time.Now().UTC()})
		}
	}

	// A cache miss or an explicit refresh pulls every upstream source, so
	// throttle per caller.
	if !h.rl.Allow(c.RealIP()+":digest", 3, 0.2) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limited")
	}

	text := h.runner.Run(c.Request().Context())
	h.cache.SetText(digestCacheKey, text, h.cacheTTL)
	return xhttp.SuccessResponse(c, &DigestResponse{Text: text, Cached: false, At: time.Now().UTC()})
}

func (h *DigestEchoHandler) Run(c echo.Context) error {
	if !h.rl.Allow(c.RealIP()+":run", 2, 0.1) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limited")
	}

	text, err := h.runner.RunAndNotify(c.Request().Context())
	if err != nil {
		h.logger.Error("manual run failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("digest run failed").WithError(err))
	}
	h.RefreshCache(text)
	return xhttp.SuccessResponse(c, map[string]string{"status": "delivered"})
}

func (h *DigestEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// RefreshCache stores an already-assembled digest; the cron schedule calls
// this after each delivery so GET /api/digest stays warm.
func (h *DigestEchoHandler) RefreshCache(text string) {
	h.cache.SetText(digestCacheKey, text, h.cacheTTL)
}
