package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rgehrsitz/drivefit/internal/calculation"
	"github.com/rgehrsitz/drivefit/internal/catalog"
	"github.com/rgehrsitz/drivefit/internal/config"
	"github.com/rgehrsitz/drivefit/internal/logging"
	"github.com/rgehrsitz/drivefit/internal/recommend"
	"github.com/rgehrsitz/drivefit/internal/server"
	"github.com/rgehrsitz/drivefit/internal/telemetry"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the engine as a JSON HTTP API",
	Long: `Start the HTTP API. Settings come from --config (default drivefit.yaml),
a .env file and DRIVEFIT_* environment variables, e.g.

  DRIVEFIT_SERVER_ADDRESS=:9090 DRIVEFIT_CACHE_BACKEND=redis drivefit serve
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAppConfig(appConfigPath)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Address = addr
		}

		level, _ := cmd.Flags().GetString("log-level")
		if debugMode {
			level = "debug"
		}
		logger, err := logging.New(cfg.Logging, level)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, logger)
	},
}

func serve(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) error {
	path := catalogPath
	if path == "" {
		path = cfg.Engine.CatalogFile
	}
	cat := catalog.Default()
	if path != "" {
		var err error
		if cat, err = catalog.LoadFromFile(path); err != nil {
			return err
		}
	}

	engine := calculation.NewEngine(cat)
	if cfg.Engine.GasPrice > 0 {
		engine.GasPrice = decimal.NewFromFloat(cfg.Engine.GasPrice)
	}
	engine.SetLogger(logging.NewSugarAdapter(logger, "engine"))

	tracing, err := telemetry.InitTracing(ctx, cfg.Tracing, version)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		metrics = telemetry.NewMetrics()
	}

	cache, err := recommend.NewCache(cfg.Cache)
	if err != nil {
		return err
	}
	if rc, ok := cache.(*recommend.RedisCache); ok {
		defer func() { _ = rc.Close() }()
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			logger.Warn("redis unreachable, recommendations will not be cached", zap.String("addr", cfg.Cache.RedisAddr), zap.Error(err))
		}
		cancel()
	}

	var limiter *server.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = server.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		defer limiter.Stop()
	}

	handler := server.NewHandler(server.Options{
		Engine:          engine,
		Catalog:         cat,
		Recommender:     recommend.New(cfg.Recommender, cache, cfg.Cache.TTL, logger),
		RecommenderName: cfg.Recommender.Provider,
		Logger:          logger,
		Metrics:         metrics,
		MetricsPath:     cfg.Metrics.Path,
		Tracer:          tracing.Tracer,
		RateLimiter:     limiter,
		MaxBodySize:     cfg.Server.MaxBodyBytes(),
		Version:         version,
	})

	logger.Info("starting server",
		zap.String("addr", cfg.Server.Address),
		zap.Int("vehicles", cat.Len()),
		zap.String("recommender", cfg.Recommender.Provider),
		zap.String("cache", cfg.Cache.Backend),
		zap.Bool("metrics", cfg.Metrics.Enabled),
		zap.Bool("tracing", cfg.Tracing.Enabled),
	)
	return server.Run(ctx, cfg.Server, handler, logger)
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.address)")
	serveCmd.Flags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.AddCommand(serveCmd)
}
