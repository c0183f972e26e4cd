package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shipdate-policy-service/internal/adapters/cache"
	"shipdate-policy-service/internal/adapters/calendar"
	"shipdate-policy-service/internal/adapters/distance"
	"shipdate-policy-service/internal/adapters/repositories"
	"shipdate-policy-service/internal/api"
	"shipdate-policy-service/internal/config"
	"shipdate-policy-service/internal/domain"
	"shipdate-policy-service/internal/platform/db"
	"shipdate-policy-service/internal/platform/obs"
	"shipdate-policy-service/internal/ports"
	"shipdate-policy-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Google Distance Matrix)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := obs.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	database, err := db.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database initialization", zap.Error(err))
	}
	defer database.Close()

	// Distance cache: Redis when configured, SQL otherwise.
	var distanceCache ports.DistanceCache
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisDistanceCache(cfg.RedisAddr, 0)
		defer redisCache.Close()
		distanceCache = redisCache
		logger.Info("distance cache backend", zap.String("backend", "redis"), zap.String("addr", cfg.RedisAddr))
	} else {
		distanceCache = cache.NewSQLDistanceCache(database)
		logger.Info("distance cache backend", zap.String("backend", "sql"))
	}

	credentials := repositories.NewSQLConfigStore(database)
	provider, err := distance.NewGoogleProvider(cfg.OriginAddress, credentials, distanceCache, logger)
	if err != nil {
		logger.Fatal("distance provider initialization", zap.Error(err))
	}

	calendarSource := calendar.NewSQLCalendarSource(database)
	items := repositories.NewSQLItemCatalog(database)

	enforced := make(map[domain.Role]struct{}, len(cfg.EnforcedRoles))
	for _, role := range cfg.EnforcedRoles {
		enforced[domain.Role(role)] = struct{}{}
	}

	policy := services.PolicyConfig{
		SpecialItemCode:     cfg.SpecialItemCode,
		DefaultCalendarID:   cfg.DefaultCalendarID,
		AlternateCalendarID: cfg.AlternateCalendarID,
		EnforcedRoles:       enforced,
		FinancingTermsID:    cfg.FinancingTermsID,
		MaterialsLocationID: cfg.MaterialsLocationID,
		CabinetAccountID:    cfg.CabinetAccountID,
	}

	// Each editing session gets its own calendar cache: calendars load
	// at most once per session and die with it.
	registry := services.NewSessionRegistry(func(notifier ports.Notifier) *services.FormController {
		return services.NewFormController(
			policy,
			services.NewCalendarCache(calendarSource, logger),
			provider,
			items,
			notifier,
			logger,
		)
	})

	router := api.NewRouter(registry)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Write timeout allows for cold-cache distance resolution
		// (external API latency with retries).
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("application terminated", zap.Error(err))
	}
}
