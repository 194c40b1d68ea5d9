package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zalint/MATA-sub002/internal/core/apperror"
	"github.com/Zalint/MATA-sub002/internal/domain/reconcile"
	"github.com/Zalint/MATA-sub002/internal/infrastructure/cache"
	"github.com/Zalint/MATA-sub002/internal/infrastructure/http/v1/dto"
	"github.com/Zalint/MATA-sub002/pkg/logger"
)

// FeedProvider materializes the four raw feeds for one date.
type FeedProvider interface {
	LoadInputs(ctx context.Context, date time.Time) (reconcile.Inputs, error)
}

// ReconciliationHandler serves the reconciliation report endpoints.
type ReconciliationHandler struct {
	*BaseHandler
	feeds  FeedProvider
	engine *reconcile.Service
	cache  *cache.ReportCache
}

// NewReconciliationHandler creates a reconciliation handler.
func NewReconciliationHandler(base *BaseHandler, feeds FeedProvider, engine *reconcile.Service, reportCache *cache.ReportCache) *ReconciliationHandler {
	return &ReconciliationHandler{
		BaseHandler: base,
		feeds:       feeds,
		engine:      engine,
		cache:       reportCache,
	}
}

// GetReport handles GET /reconciliation?date=DD-MM-YYYY[&force=true]
func (h *ReconciliationHandler) GetReport(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ReconciliationRequest
	if !h.BindQuery(c, &req) {
		return
	}

	date, err := time.Parse(reconcile.DateFormat, req.Date)
	if err != nil {
		h.Error(c, apperror.NewInvalidDate(req.Date))
		return
	}
	dateKey := date.Format(reconcile.DateFormat)

	if !req.Force {
		if report, ok := h.cache.Get(ctx, dateKey); ok {
			h.OK(c, dto.FromReport(report, true))
			return
		}
	}

	inputs, err := h.feeds.LoadInputs(ctx, date)
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}

	report, err := h.engine.Generate(ctx, inputs)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.cache.Set(ctx, dateKey, report)
	h.OK(c, dto.FromReport(report, false))
}

// InvalidateCache handles DELETE /reconciliation/cache[?date=DD-MM-YYYY]
func (h *ReconciliationHandler) InvalidateCache(c *gin.Context) {
	var req dto.InvalidateCacheRequest
	if !h.BindQuery(c, &req) {
		return
	}

	if req.Date == "" {
		h.cache.InvalidateAll()
		logger.Info(c.Request.Context(), "report cache cleared")
		h.Success(c, "cache cleared")
		return
	}

	date, err := time.Parse(reconcile.DateFormat, req.Date)
	if err != nil {
		h.Error(c, apperror.NewInvalidDate(req.Date))
		return
	}

	h.cache.Invalidate(date.Format(reconcile.DateFormat))
	logger.Info(c.Request.Context(), "report cache invalidated", "date", req.Date)
	h.Success(c, "cache invalidated")
}

// RegisterRoutes registers reconciliation routes.
func (h *ReconciliationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetReport)
	rg.DELETE("/cache", h.InvalidateCache)
}
