package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	availabilityEngine "github.com/turnomed/scheduling-api/internal/availability"
	"github.com/turnomed/scheduling-api/internal/config"
	"github.com/turnomed/scheduling-api/internal/handler"
	availabilityHandler "github.com/turnomed/scheduling-api/internal/handler/availability"
	scheduleHandler "github.com/turnomed/scheduling-api/internal/handler/schedule"
	"github.com/turnomed/scheduling-api/internal/middleware"
	"github.com/turnomed/scheduling-api/internal/repository/postgres"
	"github.com/turnomed/scheduling-api/internal/router"
	availabilityService "github.com/turnomed/scheduling-api/internal/service/availability"
	scheduleService "github.com/turnomed/scheduling-api/internal/service/schedule"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	scheduleRepo := postgres.NewScheduleRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)
	exceptionRepo := postgres.NewExceptionRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	// Services
	availabilitySvc := availabilityService.NewService(
		availabilityEngine.NewEngine(),
		scheduleRepo,
		settingsRepo,
		exceptionRepo,
		appointmentRepo,
		availabilityService.Config{
			SlotCacheSize: cfg.Cache.SlotCacheSize,
			SlotCacheTTL:  cfg.Cache.SlotCacheTTL,
			SettingsTTL:   cfg.Cache.SettingsTTL,
		},
	)
	scheduleSvc := scheduleService.NewService(scheduleRepo, settingsRepo, exceptionRepo, availabilitySvc)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Handlers
	h := handler.NewHandler()
	scheduleH := scheduleHandler.NewHandler(scheduleSvc)
	availabilityH := availabilityHandler.NewHandler(availabilitySvc)

	r := router.NewRouter(
		authMiddleware,
		scheduleH,
		availabilityH,
		h,
		router.Config{
			RateLimit:     rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "scheduling_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	os.Exit(0)
}
