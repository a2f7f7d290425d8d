package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/verdantscapes/availability-service/internal/config"
	"github.com/verdantscapes/availability-service/internal/core/domain"
	"github.com/verdantscapes/availability-service/internal/core/ports/in"
	"github.com/verdantscapes/availability-service/internal/core/ports/out"
)

const (
	defaultDaysAhead = 14
	maxDaysAhead     = 60
)

type AvailabilityController struct {
	useCase  in.AvailabilityUseCase
	cfg      *config.Config
	location *time.Location
	logger   out.LoggerPort
}

func NewAvailabilityController(
	useCase in.AvailabilityUseCase,
	cfg *config.Config,
	logger out.LoggerPort,
) *AvailabilityController {
	return &AvailabilityController{
		useCase:  useCase,
		cfg:      cfg,
		location: cfg.Location(),
		logger:   logger,
	}
}

func (c *AvailabilityController) RegisterRoutes(router *gin.Engine, limiter *RateLimiter) {
	router.GET("/health", c.health)

	api := router.Group("/api")
	api.Use(RequestIDMiddleware())
	api.Use(limiter.Middleware())
	{
		api.GET("/availability", c.getAvailability)
	}
}

// getAvailability validates query parameters and hands the range to the
// resolver. The resolver assumes clean input; every rejection happens here.
func (c *AvailabilityController) getAvailability(ctx *gin.Context) {
	startDate := time.Now().In(c.location)
	if param := ctx.Query("startDate"); param != "" {
		parsed, err := time.ParseInLocation(domain.DateKeyLayout, param, c.location)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate parameter"})
			return
		}
		startDate = parsed
	}

	daysAhead := defaultDaysAhead
	if param := ctx.Query("daysAhead"); param != "" {
		parsed, err := strconv.Atoi(param)
		if err != nil || parsed < 1 || parsed > maxDaysAhead {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "daysAhead must be between 1 and 60"})
			return
		}
		daysAhead = parsed
	}

	c.logger.Debug("http.availability.requested", out.LogFields{
		"requestId": ctx.GetString("requestId"),
		"startDate": startDate.Format(domain.DateKeyLayout),
		"daysAhead": daysAhead,
	})

	availability := c.useCase.ResolveRange(ctx.Request.Context(), startDate, daysAhead)

	ctx.JSON(http.StatusOK, availability)
}

func (c *AvailabilityController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": c.cfg.App.Version,
	})
}
