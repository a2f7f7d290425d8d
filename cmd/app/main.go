package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/verdantscapes/availability-service/internal/adapters/in/http"
	"github.com/verdantscapes/availability-service/internal/adapters/out/googlecal"
	"github.com/verdantscapes/availability-service/internal/adapters/out/logger"
	"github.com/verdantscapes/availability-service/internal/adapters/out/notion"
	"github.com/verdantscapes/availability-service/internal/config"
	"github.com/verdantscapes/availability-service/internal/core/ports/out"
	availability "github.com/verdantscapes/availability-service/internal/core/services/availability_service"
)

func main() {
	// Best effort; production supplies real env vars.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	location := cfg.Location()
	mainLogger := logger.NewConsoleLogger(location)
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":  cfg.App.Version,
		"env":      cfg.App.Env,
		"timezone": cfg.App.Timezone,
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	sources := []out.BusySourcePort{
		googlecal.NewGoogleCalendarAdapter(cfg, mainLogger.WithModule("GoogleCalendarAdapter")),
		notion.NewNotionAdapter(cfg, mainLogger.WithModule("NotionAdapter")),
	}

	availabilityService := availability.NewAvailabilityService(
		sources,
		cfg.Business.Hours,
		location,
		mainLogger,
	)

	limiter, err := http.NewRateLimiter(
		cfg.RateLimit.PerMinute,
		cfg.RateLimit.StoreSize,
		mainLogger.WithModule("RateLimiter"),
	)
	if err != nil {
		log.Error("app.rate_limiter.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	router := gin.Default()
	controller := http.NewAvailabilityController(
		availabilityService,
		cfg,
		mainLogger.WithModule("HttpController"),
	)
	controller.RegisterRoutes(router, limiter)

	server := &nethttp.Server{
		Addr:    cfg.HTTP.Host + ":" + cfg.HTTP.Port,
		Handler: router,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := server.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("app.shutdown.failed", out.LogFields{
			"error": err.Error(),
		})
	}
}
