package usecase

import (
	"context"
	"fmt"
	"time"

	"PriceCast/internal/domain/models"
	drepo "PriceCast/internal/domain/repository"
	"PriceCast/internal/telemetry"
)

// TelemetryExporter ships telemetry records to the configured backend
// (kafka or clickhouse) off the request path. Records flow through a
// buffered channel into a single worker that batches them; a full buffer or
// a backend error drops records and counts the drop. Monitoring must never
// block or break a forecast.
type TelemetryExporter struct {
	pub     drepo.TelemetryPublisher
	store   drepo.TelemetryArchive
	metrics drepo.Metrics
	backend string
	batchSz int
	batchTO time.Duration

	perfCh chan models.PerformanceRecord
	accCh  chan models.AccuracyRecord
	done   chan struct{}
}

// NewTelemetryExporter creates an exporter. backend routes records: "kafka"
// uses pub, "clickhouse" uses store.
func NewTelemetryExporter(
	pub drepo.TelemetryPublisher,
	store drepo.TelemetryArchive,
	metrics drepo.Metrics,
	backend string,
	bufferSize int,
	batchSz int,
	batchTO time.Duration,
) *TelemetryExporter {
	if bufferSize < 1 {
		bufferSize = 256
	}
	if batchSz < 1 {
		batchSz = 50
	}
	if batchTO <= 0 {
		batchTO = time.Second
	}
	return &TelemetryExporter{
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
		batchSz: batchSz,
		batchTO: batchTO,
		perfCh:  make(chan models.PerformanceRecord, bufferSize),
		accCh:   make(chan models.AccuracyRecord, bufferSize),
		done:    make(chan struct{}),
	}
}

// OnPerformance implements telemetry.Sink. Never blocks.
func (e *TelemetryExporter) OnPerformance(rec models.PerformanceRecord) {
	select {
	case e.perfCh <- rec:
	default:
		e.metrics.RecordTelemetryDrop("performance")
	}
}

// OnAccuracy implements telemetry.Sink. Never blocks.
func (e *TelemetryExporter) OnAccuracy(rec models.AccuracyRecord) {
	select {
	case e.accCh <- rec:
	default:
		e.metrics.RecordTelemetryDrop("accuracy")
	}
}

// Start runs the export worker until ctx is cancelled.
func (e *TelemetryExporter) Start(ctx context.Context) {
	go e.run(ctx)
}

func (e *TelemetryExporter) run(ctx context.Context) {
	defer close(e.done)

	ticker := time.NewTicker(e.batchTO)
	defer ticker.Stop()

	perf := make([]models.PerformanceRecord, 0, e.batchSz)
	acc := make([]models.AccuracyRecord, 0, e.batchSz)

	flush := func() {
		if len(perf) == 0 && len(acc) == 0 {
			return
		}
		// independent deadline so the final flush still works after ctx cancel
		fctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if len(perf) > 0 {
			if err := e.exportPerformance(fctx, perf); err != nil {
				e.metrics.RecordTelemetryDrop("performance")
			}
			perf = perf[:0]
		}
		if len(acc) > 0 {
			if err := e.exportAccuracy(fctx, acc); err != nil {
				e.metrics.RecordTelemetryDrop("accuracy")
			}
			acc = acc[:0]
		}
	}

	for {
		select {
		case <-ctx.Done():
			// drain whatever is already queued before the final flush
			for {
				select {
				case rec := <-e.perfCh:
					perf = append(perf, rec)
				case rec := <-e.accCh:
					acc = append(acc, rec)
				default:
					flush()
					return
				}
			}
		case rec := <-e.perfCh:
			perf = append(perf, rec)
			if len(perf) >= e.batchSz {
				flush()
			}
		case rec := <-e.accCh:
			acc = append(acc, rec)
			if len(acc) >= e.batchSz {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func (e *TelemetryExporter) exportPerformance(ctx context.Context, recs []models.PerformanceRecord) error {
	switch e.backend {
	case "kafka":
		return e.pub.PublishPerformance(ctx, recs)
	case "clickhouse":
		return e.store.StorePerformance(ctx, recs)
	default:
		return fmt.Errorf("unknown telemetry backend: %s", e.backend)
	}
}

func (e *TelemetryExporter) exportAccuracy(ctx context.Context, recs []models.AccuracyRecord) error {
	switch e.backend {
	case "kafka":
		return e.pub.PublishAccuracy(ctx, recs)
	case "clickhouse":
		return e.store.StoreAccuracy(ctx, recs)
	default:
		return fmt.Errorf("unknown telemetry backend: %s", e.backend)
	}
}

// Close releases backend resources after the worker has stopped.
func (e *TelemetryExporter) Close() {
	<-e.done
	if e.pub != nil {
		_ = e.pub.Close()
	}
	if e.store != nil {
		_ = e.store.Close()
	}
}

var _ telemetry.Sink = (*TelemetryExporter)(nil)
