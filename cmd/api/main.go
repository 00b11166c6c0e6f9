package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub-api/internal/config"
	"github.com/campushub/campushub-api/internal/domain/admin"
	"github.com/campushub/campushub-api/internal/domain/audit"
	"github.com/campushub/campushub-api/internal/domain/moderation"
	"github.com/campushub/campushub-api/internal/domain/report"
	"github.com/campushub/campushub-api/internal/domain/stats"
	"github.com/campushub/campushub-api/internal/domain/user"
	"github.com/campushub/campushub-api/internal/middleware"
	"github.com/campushub/campushub-api/internal/pkg/database"
	"github.com/campushub/campushub-api/internal/pkg/identity"
	"github.com/campushub/campushub-api/internal/pkg/logger"
	"github.com/campushub/campushub-api/internal/pkg/ratelimit"
	pkgresponse "github.com/campushub/campushub-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting CampusHub admin API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	verifier := identity.NewVerifier(cfg.JWTSecret, cfg.JWTAccessTTL)
	claimService := identity.NewClaimService(db, redisClient, cfg.JWTAccessTTL)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	adminRepo := admin.NewRepository(db)
	moderationRepo := moderation.NewRepository(db)
	reportRepo := report.NewRepository(db)
	auditRepo := audit.NewRepository(db)

	// ---------- Services ----------
	auditService := audit.NewService(auditRepo, userRepo, reportRepo, cfg.AuditDefaultDays)
	adminService := admin.NewService(adminRepo, userRepo, claimService, auditService)
	moderationService := moderation.NewService(moderationRepo, userRepo, auditService, adminRepo)
	reportService := report.NewService(reportRepo, auditService, adminRepo)
	statsService := stats.NewService(db)

	// ---------- Rate limiting ----------
	var moderationLimiter *ratelimit.ActorLimiter
	if cfg.RateLimitEnabled {
		moderationLimiter = ratelimit.NewActorLimiter(cfg.ModerationRateLimit, cfg.ModerationRateWindow)
		defer moderationLimiter.Stop()
	}

	// ---------- Handlers ----------
	adminHandler := admin.NewHandler(adminService)
	moderationHandler := moderation.NewHandler(moderationService)
	reportHandler := report.NewHandler(reportService)
	auditHandler := audit.NewHandler(auditService)
	statsHandler := stats.NewHandler(statsService)

	adminGate := admin.RequireAdmin(verifier, redisClient, adminRepo)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(adminGate)

		r.Mount("/admins", adminHandler.Routes(adminRepo))
		r.Mount("/users", moderationHandler.Routes(moderationLimiter))
		r.Mount("/reports", reportHandler.Routes())
		r.Mount("/audit-logs", auditHandler.Routes())
		r.Get("/stats", statsHandler.Overview)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
