package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"PriceCast/internal/domain/models"
)

type fakePublisher struct {
	mu     sync.Mutex
	perf   []models.PerformanceRecord
	acc    []models.AccuracyRecord
	closed bool
}

func (f *fakePublisher) PublishPerformance(_ context.Context, recs []models.PerformanceRecord) error {
	f.mu.Lock()
	f.perf = append(f.perf, recs...)
	f.mu.Unlock()
	return nil
}

func (f *fakePublisher) PublishAccuracy(_ context.Context, recs []models.AccuracyRecord) error {
	f.mu.Lock()
	f.acc = append(f.acc, recs...)
	f.mu.Unlock()
	return nil
}

func (f *fakePublisher) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func (f *fakePublisher) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.perf), len(f.acc)
}

type dropMetrics struct {
	noopMetrics
	mu    sync.Mutex
	drops int
}

func (d *dropMetrics) RecordTelemetryDrop(string) {
	d.mu.Lock()
	d.drops++
	d.mu.Unlock()
}

func TestExporterBatchesAndFlushesOnClose(t *testing.T) {
	pub := &fakePublisher{}
	e := NewTelemetryExporter(pub, nil, noopMetrics{}, "kafka", 64, 10, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	e.Start(ctx)

	for i := 0; i < 7; i++ {
		e.OnPerformance(models.PerformanceRecord{Path: "/api/predict", ProcessTime: 0.01})
	}
	e.OnAccuracy(models.AccuracyRecord{AccuracyPercent: 90})

	cancel()
	e.Close()

	perf, acc := pub.counts()
	if perf != 7 {
		t.Fatalf("expected 7 performance records, got %d", perf)
	}
	if acc != 1 {
		t.Fatalf("expected 1 accuracy record, got %d", acc)
	}
	if !pub.closed {
		t.Fatalf("publisher not closed")
	}
}

func TestExporterTimedFlush(t *testing.T) {
	pub := &fakePublisher{}
	e := NewTelemetryExporter(pub, nil, noopMetrics{}, "kafka", 64, 100, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e.Start(ctx)

	e.OnPerformance(models.PerformanceRecord{Path: "/api/predict"})

	// well under the batch size; only the ticker can flush this
	deadline := time.After(2 * time.Second)
	for {
		if perf, _ := pub.counts(); perf == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed flush never happened")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestExporterDropsWhenBufferFull(t *testing.T) {
	m := &dropMetrics{}
	// worker never started, buffer of 2 fills immediately
	e := NewTelemetryExporter(&fakePublisher{}, nil, m, "kafka", 2, 10, time.Second)

	for i := 0; i < 5; i++ {
		e.OnPerformance(models.PerformanceRecord{})
	}

	m.mu.Lock()
	drops := m.drops
	m.mu.Unlock()
	if drops != 3 {
		t.Fatalf("expected 3 drops, got %d", drops)
	}
}
