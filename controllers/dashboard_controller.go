package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/toyfront/storefront-gateway/apperrors"
	"github.com/toyfront/storefront-gateway/database"
	"github.com/toyfront/storefront-gateway/middleware"
	"github.com/toyfront/storefront-gateway/models"
	"github.com/toyfront/storefront-gateway/services"
	"github.com/toyfront/storefront-gateway/woocommerce"
)

// DashboardController serves back-office metrics with a short Redis
// read-through cache in front of the store's reporting endpoints.
type DashboardController struct {
	store  *woocommerce.Client
	auth   *services.AuthService
	cache  *database.MetricsCache
	logger *zap.Logger
}

func NewDashboardController(store *woocommerce.Client, auth *services.AuthService, cache *database.MetricsCache, logger *zap.Logger) *DashboardController {
	return &DashboardController{store: store, auth: auth, cache: cache, logger: logger}
}

// Metrics returns the dashboard summary block.
func (dc *DashboardController) Metrics(c *gin.Context) {
	ctx := c.Request.Context()

	var metrics models.DashboardMetrics
	if hit, err := dc.cache.Get(ctx, "metrics", &metrics); err == nil && hit {
		c.JSON(http.StatusOK, metrics)
		return
	}

	session, err := dc.auth.Session(ctx, middleware.CurrentUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	fresh, err := dc.store.DashboardMetrics(ctx, session.StoreToken)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if err := dc.cache.Set(ctx, "metrics", fresh); err != nil {
		dc.logger.Warn("Failed to cache dashboard metrics", zap.Error(err))
	}
	c.JSON(http.StatusOK, fresh)
}

// Analytics returns the sales time series for an optional date range.
func (dc *DashboardController) Analytics(c *gin.Context) {
	ctx := c.Request.Context()
	from := c.Query("from")
	to := c.Query("to")

	cacheKey := "analytics:" + from + ":" + to
	var analytics models.Analytics
	if hit, err := dc.cache.Get(ctx, cacheKey, &analytics); err == nil && hit {
		c.JSON(http.StatusOK, analytics)
		return
	}

	session, err := dc.auth.Session(ctx, middleware.CurrentUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	fresh, err := dc.store.Analytics(ctx, session.StoreToken, from, to)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if err := dc.cache.Set(ctx, cacheKey, fresh); err != nil {
		dc.logger.Warn("Failed to cache analytics", zap.Error(err))
	}
	c.JSON(http.StatusOK, fresh)
}
