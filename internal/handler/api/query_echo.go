package api

import (
	"errors"
	"time"

	models "FinSight/internal/domain/models"
	domrepo "FinSight/internal/domain/repository"
	"FinSight/internal/service/ratelimit"
	"FinSight/internal/usecase"
	xhttp "FinSight/pkg/http"
	xlogger "FinSight/pkg/logger"
	"FinSight/pkg/queue"

	"github.com/labstack/echo/v4"
)

const (
	defaultRateCapacity = 10
	defaultRateRefill   = 2 // tokens per second
)

// QueryEchoHandler exposes the question-answering API over Echo.
type QueryEchoHandler struct {
	logger       *xlogger.Logger
	engine       *usecase.QueryEngine
	store        domrepo.VectorStore
	queue        queue.QueueService
	limiter      *ratelimit.Limiter
	rateCapacity float64
	rateRefill   float64
}

// QueryHandlerOption configures QueryEchoHandler.
type QueryHandlerOption func(*QueryEchoHandler)

// WithRebuildQueue enables the admin rebuild endpoint.
func WithRebuildQueue(q queue.QueueService) QueryHandlerOption {
	return func(h *QueryEchoHandler) { h.queue = q }
}

// WithRateLimit overrides the per-client token bucket parameters.
func WithRateLimit(capacity, refillPerSec float64) QueryHandlerOption {
	return func(h *QueryEchoHandler) {
		h.rateCapacity = capacity
		h.rateRefill = refillPerSec
	}
}

func NewQueryEchoHandler(logger *xlogger.Logger, engine *usecase.QueryEngine, store domrepo.VectorStore, opts ...QueryHandlerOption) *QueryEchoHandler {
	h := &QueryEchoHandler{
		logger:       logger,
		engine:       engine,
		store:        store,
		limiter:      ratelimit.New(),
		rateCapacity: defaultRateCapacity,
		rateRefill:   defaultRateRefill,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *QueryEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/query", h.Query)
	g.POST("/report", h.Report)
	g.GET("/health", h.Health)
	if h.queue != nil {
		g.POST("/rebuild", h.Rebuild)
	}
}

func (h *QueryEchoHandler) Query(c echo.Context) error {
	return h.answer(c, false)
}

func (h *QueryEchoHandler) Report(c echo.Context) error {
	return h.answer(c, true)
}

func (h *QueryEchoHandler) answer(c echo.Context, report bool) error {
	if !h.limiter.Allow(c.RealIP(), h.rateCapacity, h.rateRefill) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("query rate limit exceeded, slow down"))
	}

	req := &models.QueryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ask := h.engine.Ask
	if report {
		ask = h.engine.Report
	}

	res, err := ask(c.Request().Context(), req.Query, req.NResults)
	if err != nil {
		h.logger.Error("query usecase error", xlogger.Error(err))
		if errors.Is(err, usecase.ErrRetrievalFailed) {
			return xhttp.AppErrorResponse(c, xhttp.RetrievalError(err))
		}
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Health reports index connectivity and size.
func (h *QueryEchoHandler) Health(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.store.Health(ctx); err != nil {
		h.logger.Error("index health check failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("vector index unavailable").WithError(err))
	}

	count, err := h.store.Count(ctx)
	if err != nil {
		h.logger.Error("index count failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("vector index unavailable").WithError(err))
	}

	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status":    "ok",
		"documents": count,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Rebuild enqueues a full index rebuild from the posted article set.
func (h *QueryEchoHandler) Rebuild(c echo.Context) error {
	payload := &usecase.RebuildPayload{}
	if verr := xhttp.ReadAndValidateRequest(c, payload); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if len(payload.Articles) == 0 {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("rebuild requires at least one article"))
	}

	if err := h.queue.PublishMessage(c.Request().Context(), usecase.RebuildJobType, payload); err != nil {
		h.logger.Error("rebuild enqueue failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("failed to enqueue rebuild").WithError(err))
	}
	return xhttp.AcceptedResponse(c, map[string]interface{}{
		"queued":   true,
		"articles": len(payload.Articles),
	})
}
