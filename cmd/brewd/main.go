package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"brewd/internal/api"
	"brewd/internal/config"
	"brewd/internal/events"
	"brewd/internal/service"
	"brewd/internal/storage"
	"brewd/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "brewd.yaml", "config file path")
	listenAddr := flag.String("listen-addr", "", "HTTP listen address (overrides config)")
	metricsAddr := flag.String("metrics-addr", "", "metrics listen address (overrides config)")
	backend := flag.String("storage-backend", "", "storage backend: memory, file, sqlite or badger (overrides config)")
	storagePath := flag.String("storage-path", "", "storage location (overrides config)")
	natsURL := flag.String("nats", "", "NATS server URL for event publishing (overrides config)")
	trace := flag.Bool("trace", false, "export traces to stdout")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if *backend != "" {
		cfg.Storage.Backend = *backend
	}
	if *storagePath != "" {
		cfg.Storage.Path = *storagePath
	}
	if *natsURL != "" {
		cfg.NATSURL = *natsURL
	}
	if *trace {
		cfg.Trace = true
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	shutdownTracing, err := telemetry.Setup(cfg.Trace)
	if err != nil {
		logger.Fatal("failed to set up tracing", zap.Error(err))
	}

	store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}
	defer store.Close()

	var pub *events.Publisher
	if cfg.NATSURL != "" {
		pub, err = events.NewPublisher(cfg.NATSURL)
		if err != nil {
			logger.Fatal("failed to connect to NATS", zap.Error(err))
		}
		defer pub.Close()
	}

	svc, err := service.New(context.Background(), store, cfg, logger.Named("service"), pub)
	if err != nil {
		logger.Fatal("failed to initialize service", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.NewHandler(svc, logger.Named("api")),
	}
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.ListenAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http listen", zap.Error(err))
		}
	}()

	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux()}
	go func() {
		logger.Info("metrics listening", zap.String("addr", cfg.MetricsAddr))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("metrics listen", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutdown initiated")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Warn("http server shutdown", zap.Error(err))
	}
	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Warn("metrics server shutdown", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn("trace exporter shutdown", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	api.RegisterMetrics(mux)
	return mux
}
