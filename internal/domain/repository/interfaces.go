package repository

import (
	"context"

	"PriceCast/internal/domain/models"
)

// TelemetryPublisher pushes telemetry records to a message backend.
type TelemetryPublisher interface {
	PublishPerformance(ctx context.Context, recs []models.PerformanceRecord) error
	PublishAccuracy(ctx context.Context, recs []models.AccuracyRecord) error
	Close() error
}

// TelemetryArchive stores telemetry records in a columnar backend.
type TelemetryArchive interface {
	StorePerformance(ctx context.Context, recs []models.PerformanceRecord) error
	StoreAccuracy(ctx context.Context, recs []models.AccuracyRecord) error
	Health(ctx context.Context) error
	Close() error
}

// Metrics records operational counters for the forecast pipeline.
type Metrics interface {
	RecordForecast(horizon int)
	RecordError(kind string)
	RecordLastForecast(price float64)
	RecordLatency(op string, seconds float64)
	RecordTelemetryDrop(kind string)
}
