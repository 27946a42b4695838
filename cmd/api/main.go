package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"portfolioapi/docs"
	"portfolioapi/internal/config"
	"portfolioapi/internal/content"
	"portfolioapi/internal/database"
	"portfolioapi/internal/database/migration"
	handlers "portfolioapi/internal/http/handler"
	"portfolioapi/internal/http/middleware"
	"portfolioapi/internal/logger"
	"portfolioapi/internal/metrics"
	"portfolioapi/internal/otel"
	"portfolioapi/internal/repository"
	"portfolioapi/internal/repository/memory"
	"portfolioapi/internal/repository/mongodb"
	"portfolioapi/internal/repository/postgres"
	"portfolioapi/internal/repository/sqlite"
	"portfolioapi/internal/service"
	"portfolioapi/internal/storage"
)

// @title Portfolio API
// @version 1.0
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) error {
	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	// Analytics store (PostgreSQL).
	pg, err := database.NewPostgres(ctx, cfg.Postgres, 10*time.Second)
	if err != nil {
		return err
	}
	defer pg.Close()
	if err := migration.EnsureMigrated(ctx, pg, log, cfg.Postgres.Host); err != nil {
		return err
	}
	analyticsStore := postgres.NewPageViewPostgres(pg)

	// Comments store (embedded SQLite).
	sq, err := database.NewSQLite(cfg.SQLite.Path)
	if err != nil {
		return err
	}
	defer sq.Close()
	commentStore := sqlite.NewCommentSQLite(sq)

	// Project store (MongoDB, or process memory when no URI is configured).
	projectStore, projectProbe, closeProjects, err := openProjectStore(ctx, cfg.Mongo, log)
	if err != nil {
		return err
	}
	defer closeProjects()

	// Static content, validated before serving anything.
	src, err := contentSource(ctx, cfg)
	if err != nil {
		return err
	}
	contentCache := content.NewCache(content.NewLoader(src))
	if err := contentCache.Preload(ctx); err != nil {
		return err
	}

	projectSvc := service.NewProjectService(projectStore)
	analyticsSvc := service.NewAnalyticsService(analyticsStore)
	commentSvc := service.NewCommentService(commentStore, service.CommentPolicy{AutoApprove: cfg.Comments.AutoApprove})
	healthSvc := service.NewHealthService(cfg.Health.ProbeTimeout,
		service.Probe{Name: "postgres", Pinger: analyticsStore},
		projectProbe,
		service.Probe{Name: "sqlite", Pinger: commentStore},
	)
	dispatcher := service.NewPageViewDispatcher(analyticsSvc, log, cfg.Analytics.Workers, cfg.Analytics.QueueSize)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterCollectors(reg)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	rdb := openRedis(ctx, cfg.RateLimit, log)
	if rdb != nil {
		defer rdb.Close()
	}

	app := fiber.New(middleware.TrustProxies(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(log),
		AppName:      "portfolioapi",
	}, cfg.TrustedProxies))
	app.Use(middleware.RequestID())
	app.Use(middleware.ClientIP())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		Projects:   projectSvc,
		Analytics:  analyticsSvc,
		Comments:   commentSvc,
		Health:     healthSvc,
		Content:    contentCache,
		Tracker:    dispatcher,
		WriteLimit: middleware.RedisRateLimit(rdb, log, cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.Window),
		Gatherer:   reg,
		Log:        log,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", ":"+cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dispatcher.Close(closeCtx); err != nil {
		log.Warn("page view dispatcher did not drain", zap.Error(err))
	}
	return nil
}

func openProjectStore(ctx context.Context, cfg config.MongoConfig, log *zap.Logger) (repository.ProjectStore, service.Probe, func(), error) {
	if cfg.URI == "" {
		log.Warn("MONGODB_URI not set, projects are kept in memory")
		mem := memory.NewProjectMemory()
		return mem, service.Probe{Name: "memory", Pinger: mem}, func() {}, nil
	}

	client, err := database.ConnectMongo(ctx, cfg.URI, cfg.Timeout)
	if err != nil {
		return nil, service.Probe{}, nil, err
	}
	closeFn := func() { _ = client.Disconnect(context.Background()) }

	store := mongodb.NewProjectMongo(client.Database(cfg.Database).Collection(cfg.Collection), log)
	idxCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := store.EnsureIndexes(idxCtx); err != nil {
		closeFn()
		return nil, service.Probe{}, nil, err
	}
	return store, service.Probe{Name: "mongodb", Pinger: store}, closeFn, nil
}

func contentSource(ctx context.Context, cfg *config.AppConfig) (content.Source, error) {
	switch cfg.Content.Source {
	case "dir":
		return content.DirSource{Dir: cfg.Content.Dir}, nil
	case "minio":
		st, err := storage.NewMinIO(ctx, cfg.MinIO, false)
		if err != nil {
			return nil, err
		}
		return content.ObjectSource{Store: st}, nil
	}
	return nil, errors.New("CONTENT_SOURCE must be dir or minio")
}

// openRedis returns nil when Redis is not configured or unreachable, which
// selects the in-process rate limiter.
func openRedis(ctx context.Context, cfg config.RateLimitConfig, log *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable, using in-memory rate limiter", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = rdb.Close()
		return nil
	}
	return rdb
}
