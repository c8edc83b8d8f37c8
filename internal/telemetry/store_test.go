package telemetry

import (
	"sync"
	"testing"

	"PriceCast/internal/domain/models"
)

func TestStoreAppendAndList(t *testing.T) {
	s := NewStore()
	s.RecordLatency("/api/predict", 0.012, 7)
	s.RecordLatency("/api/predict", 0.034, 0)

	perf := s.ListPerformance()
	if len(perf) != 2 {
		t.Fatalf("expected 2 records, got %d", len(perf))
	}
	if perf[0].Path != "/api/predict" || perf[0].ProcessTime != 0.012 || perf[0].Horizon != 7 {
		t.Fatalf("unexpected first record: %+v", perf[0])
	}
	if perf[1].Horizon != 0 {
		t.Fatalf("expected untagged horizon, got %d", perf[1].Horizon)
	}
}

func TestStoreSnapshotIsolation(t *testing.T) {
	s := NewStore()
	s.RecordLatency("/api/predict", 0.01, 1)

	snap := s.ListPerformance()
	s.RecordLatency("/api/predict", 0.02, 2)

	if len(snap) != 1 {
		t.Fatalf("snapshot grew: %d", len(snap))
	}
	snap[0].ProcessTime = 999
	if got := s.ListPerformance()[0].ProcessTime; got != 0.01 {
		t.Fatalf("store mutated through snapshot: %v", got)
	}
}

func TestStoreCopiesAccuracySlices(t *testing.T) {
	s := NewStore()
	real := []float64{1, 2}
	pred := []float64{1.1, 2.2}
	s.RecordAccuracy(real, pred, 90)

	real[0] = 999
	pred[0] = 999

	rec := s.ListAccuracy()[0]
	if rec.RealValues[0] != 1 || rec.PredictedValues[0] != 1.1 {
		t.Fatalf("record shares caller slices: %+v", rec)
	}
	if rec.AccuracyPercent != 90 {
		t.Fatalf("accuracy = %v", rec.AccuracyPercent)
	}
}

func TestStoreConcurrentAppends(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	const writers, perWriter = 8, 50
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				s.RecordLatency("/api/predict", 0.001, 1)
				s.RecordAccuracy([]float64{1}, []float64{1}, 100)
			}
		}()
	}
	// readers race the writers; snapshots must always be self-consistent
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				_ = s.ListPerformance()
				_ = s.ListAccuracy()
			}
		}()
	}
	wg.Wait()

	if got := len(s.ListPerformance()); got != writers*perWriter {
		t.Fatalf("expected %d latency records, got %d", writers*perWriter, got)
	}
	if got := len(s.ListAccuracy()); got != writers*perWriter {
		t.Fatalf("expected %d accuracy records, got %d", writers*perWriter, got)
	}
}

type captureSink struct {
	mu   sync.Mutex
	perf []models.PerformanceRecord
	acc  []models.AccuracyRecord
}

func (c *captureSink) OnPerformance(rec models.PerformanceRecord) {
	c.mu.Lock()
	c.perf = append(c.perf, rec)
	c.mu.Unlock()
}

func (c *captureSink) OnAccuracy(rec models.AccuracyRecord) {
	c.mu.Lock()
	c.acc = append(c.acc, rec)
	c.mu.Unlock()
}

func TestStoreFansOutToSinks(t *testing.T) {
	sink := &captureSink{}
	s := NewStore(sink)

	s.RecordLatency("/api/predict", 0.05, 3)
	s.RecordAccuracy([]float64{1}, []float64{1}, 100)

	if len(sink.perf) != 1 || sink.perf[0].Horizon != 3 {
		t.Fatalf("performance not fanned out: %+v", sink.perf)
	}
	if len(sink.acc) != 1 {
		t.Fatalf("accuracy not fanned out: %+v", sink.acc)
	}
}

func TestHubSubscribeAndBroadcast(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	h.OnPerformance(models.PerformanceRecord{Path: "/api/predict", ProcessTime: 0.01})

	ev := <-ch
	if ev.Type != "performance" || ev.Performance == nil {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Performance.Path != "/api/predict" {
		t.Fatalf("unexpected path: %s", ev.Performance.Path)
	}
}

func TestHubDropsWhenSubscriberIsBehind(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	// overfill well past channel capacity; broadcast must never block
	for i := 0; i < 100; i++ {
		h.OnAccuracy(models.AccuracyRecord{AccuracyPercent: float64(i)})
	}

	drained := 0
	for {
		select {
		case <-ch:
			drained++
			continue
		default:
		}
		break
	}
	if drained == 0 || drained >= 100 {
		t.Fatalf("expected partial delivery, drained %d", drained)
	}
}

func TestHubUnsubscribeCloses(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	h.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
	// double unsubscribe is a no-op
	h.Unsubscribe(ch)

	// broadcasting after unsubscribe must not panic on the closed channel
	h.OnPerformance(models.PerformanceRecord{})
}
