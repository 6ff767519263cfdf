package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cdr.dev/slog/v3"
	"github.com/coder/quartz"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"golang.org/x/xerrors"

	"presence-stats-service/internal/config"
	"presence-stats-service/internal/logging"
	"presence-stats-service/migrations"

	presenceHttp "presence-stats-service/internal/presence/adapters/http/fiber"
	presenceRepoPg "presence-stats-service/internal/presence/adapters/postgres"
	presenceUsecase "presence-stats-service/internal/presence/core/usecase"

	statsHttp "presence-stats-service/internal/stats/adapters/http/fiber"
	statsMemory "presence-stats-service/internal/stats/adapters/memory"
	statsRepoPg "presence-stats-service/internal/stats/adapters/postgres"
	statsRedis "presence-stats-service/internal/stats/adapters/rediscache"
	"presence-stats-service/internal/stats/core/ports"
	statsUsecase "presence-stats-service/internal/stats/core/usecase"
)

const shutdownTimeout = 5 * time.Second

var listenAddrOverride string

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen-addr") {
				cfg.ListenAddr = listenAddrOverride
			}
			logger, err := logging.New(os.Stderr, cfg.LogLevel)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}
	serveCmd.Flags().StringVar(&listenAddrOverride, "listen-addr", "", "Override listen address from config (e.g. 127.0.0.1:8080)")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config, logger slog.Logger) error {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.MigrateOnStart {
		if err := migrations.Up(ctx, db); err != nil {
			return err
		}
		logger.Info(ctx, "database migrated")
	}

	cache, closeCache, err := openBucketCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := newApp(db, cache, cfg, logger, reg)
	defer app.writer.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.fiber.Listen(cfg.ListenAddr)
	}()
	logger.Info(ctx, "server started", slog.F("addr", cfg.ListenAddr), slog.F("timezone", cfg.Timezone))

	select {
	case err := <-errCh:
		return xerrors.Errorf("fiber stopped: %w", err)
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.fiber.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "fiber shutdown error", slog.Error(err))
	}

	logger.Info(context.Background(), "server exiting")
	return nil
}

// openBucketCache returns redis when configured and a process-local map
// otherwise.
func openBucketCache(ctx context.Context, cfg *config.Config, logger slog.Logger) (ports.BucketCachePort, func(), error) {
	if cfg.Redis.URL == "" {
		logger.Info(ctx, "using in-memory bucket cache")
		return statsMemory.NewBucketCache(), func() {}, nil
	}
	client, err := statsRedis.Connect(cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	cache := statsRedis.NewBucketCache(client, cfg.Redis.KeyPrefix)
	if err := cache.Ping(ctx); err != nil {
		// The resolver treats an unreachable cache as a miss.
		logger.Warn(ctx, "redis unreachable at startup", slog.Error(err))
	}
	return cache, func() { _ = client.Close() }, nil
}

type app struct {
	fiber  *fiber.App
	writer *statsUsecase.CacheWriter
}

func newApp(db *sql.DB, cache ports.BucketCachePort, cfg *config.Config, logger slog.Logger, reg *prometheus.Registry) *app {
	clock := quartz.NewReal()

	// Adapter-level DB wrappers
	presenceDB := presenceRepoPg.NewSQLDB(db)
	statsDB := statsRepoPg.NewSQLDB(db)

	// Repositories
	sessionRepository := presenceRepoPg.NewSessionRepository(presenceDB)
	sessionReader := statsRepoPg.NewSessionRepository(statsDB)
	studyPeriods := statsRepoPg.NewStudyPeriodRepository(statsDB)

	// Stats pipeline
	metrics := statsUsecase.NewMetrics(reg)
	writer := statsUsecase.NewCacheWriter(cache, logger.Named("cache_writer"), metrics, statsUsecase.CacheWriterOptions{
		Workers:   cfg.Cache.WriteWorkers,
		QueueSize: cfg.Cache.WriteQueueSize,
		Timeout:   cfg.WriteTimeout(),
	})
	earliest := statsUsecase.NewEarliestDate(sessionReader, cache, writer, logger.Named("earliest"), metrics)
	resolver := statsUsecase.NewResolver(statsUsecase.ResolverOptions{
		Aggregator:           statsUsecase.NewAggregator(sessionReader, metrics),
		Cache:                cache,
		Writer:               writer,
		Earliest:             earliest,
		Clock:                clock,
		Location:             cfg.Location(),
		Logger:               logger.Named("resolver"),
		Metrics:              metrics,
		MaxConcurrentBuckets: cfg.Cache.MaxConcurrentBuckets,
	})

	// Usecases
	getStatsUC := statsUsecase.NewGetStatsUseCase(resolver, earliest, studyPeriods)
	getHourStatsUC := statsUsecase.NewGetHourStatsUseCase(sessionReader, clock, cfg.Location())
	getUserSessionsUC := statsUsecase.NewGetUserSessionsUseCase(sessionReader, clock)
	recordPresenceUC := presenceUsecase.NewRecordPresenceUseCase(sessionRepository, clock, cfg.Grace())
	activeSessionsUC := presenceUsecase.NewListActiveSessionsUseCase(sessionRepository, clock)

	// HTTP (Fiber) app + handlers
	f := fiber.New(fiber.Config{DisableStartupMessage: true})
	f.Use(recover.New())

	presenceHandler := presenceHttp.NewPresenceHandler(recordPresenceUC, activeSessionsUC, logger.Named("http"))
	f.Post("/presence", presenceHandler.RecordPresence)
	f.Get("/sessions/active", presenceHandler.ListActiveSessions)

	statsHandler := statsHttp.NewStatsHandler(getStatsUC, getHourStatsUC, getUserSessionsUC, logger.Named("http"))
	statsHandler.Register(f.Group("/stats"))

	f.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	f.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger
	f.Get("/docs/*", fiberSwagger.WrapHandler)

	return &app{fiber: f, writer: writer}
}
