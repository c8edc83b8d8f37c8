package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"PriceCast/internal/domain/models"
	"PriceCast/internal/domain/repository"
	pkgch "PriceCast/pkg/clickhouse"
	pkgkafka "PriceCast/pkg/kafka"
)

// ClickHouseArchive implements TelemetryArchive for ClickHouse.
type ClickHouseArchive struct {
	client    *pkgch.Client
	perfTable string
	accTable  string
}

// NewClickHouseArchive creates ClickHouse telemetry storage. The archive
// owns the client and closes it.
func NewClickHouseArchive(client *pkgch.Client, perfTable, accTable string) repository.TelemetryArchive {
	return &ClickHouseArchive{client: client, perfTable: perfTable, accTable: accTable}
}

func (a *ClickHouseArchive) StorePerformance(ctx context.Context, recs []models.PerformanceRecord) error {
	if len(recs) == 0 {
		return nil
	}
	values := make([]string, 0, len(recs))
	args := make([]interface{}, 0, len(recs)*4)
	now := time.Now()
	for _, r := range recs {
		values = append(values, "(?, ?, ?, ?)")
		args = append(args, now, r.Path, r.ProcessTime, r.Horizon)
	}
	q := fmt.Sprintf("INSERT INTO %s (ts, path, process_time, horizon) VALUES %s",
		a.perfTable, strings.Join(values, ","))
	_, err := a.client.DB().ExecContext(ctx, q, args...)
	return err
}

func (a *ClickHouseArchive) StoreAccuracy(ctx context.Context, recs []models.AccuracyRecord) error {
	if len(recs) == 0 {
		return nil
	}
	values := make([]string, 0, len(recs))
	args := make([]interface{}, 0, len(recs)*4)
	now := time.Now()
	for _, r := range recs {
		values = append(values, "(?, ?, ?, ?)")
		args = append(args, now, r.RealValues, r.PredictedValues, r.AccuracyPercent)
	}
	q := fmt.Sprintf("INSERT INTO %s (ts, real_values, predicted_values, accuracy_percent) VALUES %s",
		a.accTable, strings.Join(values, ","))
	_, err := a.client.DB().ExecContext(ctx, q, args...)
	return err
}

func (a *ClickHouseArchive) Health(ctx context.Context) error {
	return a.client.Health(ctx)
}

func (a *ClickHouseArchive) Close() error {
	return a.client.Close()
}

// KafkaTelemetryPublisher implements TelemetryPublisher for Kafka.
type KafkaTelemetryPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaTelemetryPublisher creates a Kafka telemetry publisher.
func NewKafkaTelemetryPublisher(producer *pkgkafka.Producer, topic string) repository.TelemetryPublisher {
	return &KafkaTelemetryPublisher{producer: producer, topic: topic}
}

func (p *KafkaTelemetryPublisher) PublishPerformance(ctx context.Context, recs []models.PerformanceRecord) error {
	msgs := make([]pkgkafka.Message, len(recs))
	for i, r := range recs {
		msgs[i] = pkgkafka.Message{
			Key: []byte(r.Path),
			Value: map[string]interface{}{
				"kind":         "performance",
				"path":         r.Path,
				"process_time": r.ProcessTime,
				"horizon":      r.Horizon,
			},
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaTelemetryPublisher) PublishAccuracy(ctx context.Context, recs []models.AccuracyRecord) error {
	msgs := make([]pkgkafka.Message, len(recs))
	for i, r := range recs {
		msgs[i] = pkgkafka.Message{
			Key: []byte("accuracy"),
			Value: map[string]interface{}{
				"kind":             "accuracy",
				"real_values":      r.RealValues,
				"predicted_values": r.PredictedValues,
				"accuracy_percent": r.AccuracyPercent,
			},
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaTelemetryPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
