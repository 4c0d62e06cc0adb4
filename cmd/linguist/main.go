// Command linguist serves the language-learning API: transcription, speech,
// pronunciation scoring, word definitions and recording history.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/linguist/api"
	"github.com/kbukum/linguist/gemini"
	"github.com/kbukum/linguist/history"
	"github.com/kbukum/linguist/linguist"
	"github.com/kbukum/linguist/llm"
	_ "github.com/kbukum/linguist/llm/openai"
	"github.com/kbukum/linguist/logger"
	"github.com/kbukum/linguist/observability"
	"github.com/kbukum/linguist/provider"
	"github.com/kbukum/linguist/redis"
	"github.com/kbukum/linguist/server"
	"github.com/kbukum/linguist/storage/local"
	"github.com/kbukum/linguist/storage/s3"
	"github.com/kbukum/linguist/version"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configFile := flag.String("config", "", "path to config.yml")
	showVersion := flag.Bool("version", false, "print the build version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().String())
		return
	}

	if err := run(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "linguist: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Logging, cfg.Name)
	log := logger.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var shutdowns []func(context.Context) error
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for i := len(shutdowns) - 1; i >= 0; i-- {
			if err := shutdowns[i](sctx); err != nil {
				log.Warn("shutdown step failed", logger.Fields(logger.FieldError, err.Error()))
			}
		}
	}()

	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.Tracing)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		shutdowns = append(shutdowns, tp.Shutdown)
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(ctx, &cfg.Metrics)
		if err != nil {
			return fmt.Errorf("init meter: %w", err)
		}
		shutdowns = append(shutdowns, mp.Shutdown)
		if metrics, err = observability.NewMetrics(observability.Meter(cfg.Name)); err != nil {
			return fmt.Errorf("create metrics: %w", err)
		}
	}

	router, err := newRouter(cfg, metrics)
	if err != nil {
		return err
	}
	if !router.FallbackConfigured() {
		log.Warn("fallback provider key is not configured; definitions use the primary provider only")
	}

	store, closeStore, err := newHistoryStore(ctx, cfg)
	if err != nil {
		return err
	}
	if closeStore != nil {
		shutdowns = append(shutdowns, closeStore)
	}

	checkers := []observability.HealthChecker{router}
	if hc, ok := store.(observability.HealthChecker); ok {
		checkers = append(checkers, hc)
	}
	handler := api.NewHandler(router, store,
		api.WithHealthCheckers(checkers...),
		api.WithServiceInfo(cfg.Name, cfg.Version),
	)

	var serverOpts []server.Option
	if metrics != nil {
		serverOpts = append(serverOpts, server.WithMetrics(metrics))
	}
	srv := server.New(cfg.Server, logger.WithComponent("server"), serverOpts...)
	handler.Register(srv.Engine())

	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Info("linguist started", logger.Fields(
		"addr", srv.Addr(),
		"environment", cfg.Environment,
		"history", cfg.History.Backend,
	))

	<-ctx.Done()
	log.Info("shutdown signal received")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(sctx); err != nil {
		log.Error("server stop failed", logger.Fields(logger.FieldError, err.Error()))
	}
	handler.Wait()
	return nil
}

// newRouter builds both provider clients behind the shared middleware stack.
func newRouter(cfg *AppConfig, metrics *observability.Metrics) (*linguist.Router, error) {
	gc, err := gemini.New(cfg.Providers.Primary.Config)
	if err != nil {
		return nil, fmt.Errorf("create primary provider: %w", err)
	}
	primary := provider.Chain(
		provider.WithLogging[gemini.GenerateRequest, gemini.GenerateResponse](logger.WithComponent("provider.primary")),
		provider.WithTracing[gemini.GenerateRequest, gemini.GenerateResponse](cfg.Name),
		provider.WithMetrics[gemini.GenerateRequest, gemini.GenerateResponse](metrics),
	)(gc)

	var fallback linguist.Fallback
	if cfg.Providers.Fallback.APIKey != "" {
		ad, err := llm.New(cfg.Providers.Fallback.Config)
		if err != nil {
			return nil, fmt.Errorf("create fallback provider: %w", err)
		}
		fallback = provider.Chain(
			provider.WithLogging[llm.CompletionRequest, llm.CompletionResponse](logger.WithComponent("provider.fallback")),
			provider.WithTracing[llm.CompletionRequest, llm.CompletionResponse](cfg.Name),
			provider.WithMetrics[llm.CompletionRequest, llm.CompletionResponse](metrics),
		)(ad)
	}

	return linguist.NewRouter(cfg.routerConfig(), primary, fallback,
		linguist.WithLogger(logger.WithComponent("linguist")),
	), nil
}

// newHistoryStore opens the configured backend. The returned close func may be nil.
func newHistoryStore(ctx context.Context, cfg *AppConfig) (history.Store, func(context.Context) error, error) {
	switch cfg.History.Backend {
	case HistoryRedis:
		client, err := redis.New(cfg.History.Redis, logger.WithComponent("redis"))
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		closeFn := func(context.Context) error { return client.Close() }
		return history.NewRedisStore(client, cfg.History.Redis.KeyPrefix), closeFn, nil
	case HistoryS3:
		st, err := s3.New(ctx, cfg.History.S3)
		if err != nil {
			return nil, nil, fmt.Errorf("open history bucket: %w", err)
		}
		return history.NewStorageStore(st, history.WithBackendName(HistoryS3)), nil, nil
	case HistoryLocal:
		st, err := local.New(cfg.History.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("open history directory: %w", err)
		}
		return history.NewStorageStore(st, history.WithBackendName(HistoryLocal)), nil, nil
	default:
		return nil, nil, nil
	}
}
