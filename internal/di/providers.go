package di

import (
	"context"
	"fmt"
	"time"

	"PriceCast/internal/domain/repository"
	"PriceCast/internal/domain/service"
	"PriceCast/internal/handler/api"
	internalrepo "PriceCast/internal/repository"
	"PriceCast/internal/services/model"
	"PriceCast/internal/telemetry"
	"PriceCast/internal/usecase"
	"PriceCast/pkg/cache"
	pkgch "PriceCast/pkg/clickhouse"
	"PriceCast/pkg/config"
	pkgkafka "PriceCast/pkg/kafka"
	applogger "PriceCast/pkg/logger"
	"PriceCast/pkg/metrics"
	"PriceCast/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "console"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return applogger.New(lc)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvidePredictor loads the model once at startup. A load failure leaves
// the predictor nil: the service still starts and every forecast fails with
// a model-unavailable error instead of a crash.
func ProvidePredictor(cfg *config.Config, l *applogger.Logger) service.Predictor {
	m, err := model.Load(cfg.Model.WeightsPath)
	if err != nil {
		l.Warn("model load failed, forecasts will be unavailable",
			applogger.Error(err), applogger.String("path", cfg.Model.WeightsPath))
		return nil
	}
	if m.WindowSize() != cfg.Model.WindowSize {
		l.Warn("model window size does not match config, forecasts will be unavailable",
			applogger.Int("model", m.WindowSize()), applogger.Int("config", cfg.Model.WindowSize))
		return nil
	}
	return model.Serialize(m)
}

// ProvideTelemetryExporter builds the export pipeline for the configured
// backend, or nil when export is disabled.
func ProvideTelemetryExporter(cfg *config.Config, m repository.Metrics) (*usecase.TelemetryExporter, error) {
	var pub repository.TelemetryPublisher
	var store repository.TelemetryArchive

	switch cfg.Telemetry.Backend {
	case "", "none":
		return nil, nil
	case "kafka":
		producer, err := pkgkafka.NewProducer(
			pkgkafka.WithBrokers(cfg.Kafka.Brokers),
			pkgkafka.WithCompression(cfg.Kafka.Compression),
			pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
			pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
			pkgkafka.WithBatchSize(cfg.Kafka.BatchSize),
			pkgkafka.WithBatchBytes(cfg.Kafka.BatchBytes),
			pkgkafka.WithBatchTimeout(cfg.Kafka.Linger),
			pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		pub = internalrepo.NewKafkaTelemetryPublisher(producer, cfg.Kafka.Topic)
	case "clickhouse":
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.ClickHouse.Host),
			pkgch.WithPort(cfg.ClickHouse.Port),
			pkgch.WithDatabase(cfg.ClickHouse.Database),
			pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
			pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}

		db := cfg.ClickHouse.Database
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.InitSchema(ctx, []string{
			fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", db),
			fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.forecast_performance (ts DateTime, path String, process_time Float64, horizon Int32) ENGINE=MergeTree ORDER BY ts", db),
			fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.forecast_accuracy (ts DateTime, real_values Array(Float64), predicted_values Array(Float64), accuracy_percent Float64) ENGINE=MergeTree ORDER BY ts", db),
		}); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}
		store = internalrepo.NewClickHouseArchive(client,
			db+".forecast_performance", db+".forecast_accuracy")
	default:
		return nil, fmt.Errorf("unknown telemetry backend: %s", cfg.Telemetry.Backend)
	}

	return usecase.NewTelemetryExporter(
		pub,
		store,
		m,
		cfg.Telemetry.Backend,
		cfg.Telemetry.BufferSize,
		cfg.Telemetry.BatchSize,
		cfg.Telemetry.BatchTimeout,
	), nil
}

// ProvideHub creates the live telemetry stream hub.
func ProvideHub() *telemetry.Hub {
	return telemetry.NewHub()
}

// ProvideTelemetryStore assembles the store with its optional sinks.
func ProvideTelemetryStore(hub *telemetry.Hub, exporter *usecase.TelemetryExporter) *telemetry.Store {
	sinks := []telemetry.Sink{hub}
	if exporter != nil {
		sinks = append(sinks, exporter)
	}
	return telemetry.NewStore(sinks...)
}

// ProvideScorer creates the accuracy scorer.
func ProvideScorer(store *telemetry.Store) *usecase.Scorer {
	return usecase.NewScorer(store)
}

// ProvideForecaster creates the forecast engine.
func ProvideForecaster(
	predictor service.Predictor,
	scorer *usecase.Scorer,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.Forecaster {
	return usecase.NewForecaster(predictor, scorer, m, cfg.Model.WindowSize)
}

// ProvideResponseCache creates the optional forecast response cache.
func ProvideResponseCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	switch cfg.Cache.Backend {
	case "redis":
		return cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
	case "memory":
		return cache.NewMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}

// ProvideHandlers wires the HTTP handler set.
func ProvideHandlers(
	cfg *config.Config,
	l *applogger.Logger,
	engine *usecase.Forecaster,
	store *telemetry.Store,
	hub *telemetry.Hub,
	respCache cache.Service,
) *api.Handlers {
	rl := api.RateLimitConfig{
		Enabled:      cfg.RateLimit.Enabled,
		Capacity:     cfg.RateLimit.Capacity,
		RefillPerSec: cfg.RateLimit.RefillPerSec,
	}
	return &api.Handlers{
		Forecast:    api.NewForecastEchoHandler(l, engine, respCache, cfg.Cache.TTL, rl),
		Report:      api.NewReportEchoHandler(l, store),
		TelemetryWS: api.NewTelemetryWSHandler(l, hub),
	}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handlers *api.Handlers,
	store *telemetry.Store,
	exporter *usecase.TelemetryExporter,
	respCache cache.Service,
) *server.App {
	return server.New(cfg, l, handlers, store, exporter, respCache)
}
