package model

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writeWeights(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weights.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write weights: %v", err)
	}
	return path
}

func TestLoadAndPredict(t *testing.T) {
	path := writeWeights(t, `{"window_size": 3, "weights": [0.2, 0.3, 0.5], "bias": 0.1}`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.WindowSize() != 3 {
		t.Fatalf("window size %d", m.WindowSize())
	}
	got, err := m.Predict([]float64{1, 1, 1})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	want := 0.2 + 0.3 + 0.5 + 0.1
	if got != want {
		t.Fatalf("predict = %v, want %v", got, want)
	}

	// deterministic: same window, same output
	again, err := m.Predict([]float64{1, 1, 1})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if again != got {
		t.Fatalf("predict not deterministic: %v vs %v", again, got)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"missing file":        filepath.Join(t.TempDir(), "nope.json"),
		"invalid json":        writeWeights(t, `{`),
		"length mismatch":     writeWeights(t, `{"window_size": 5, "weights": [1, 2], "bias": 0}`),
		"zero window":         writeWeights(t, `{"window_size": 0, "weights": [], "bias": 0}`),
		"weight not a number": writeWeights(t, `{"window_size": 1, "weights": ["x"], "bias": 0}`),
	}
	for name, path := range cases {
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestPredictWindowLengthMismatch(t *testing.T) {
	path := writeWeights(t, `{"window_size": 2, "weights": [0.5, 0.5], "bias": 0}`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := m.Predict([]float64{1}); err == nil {
		t.Fatalf("expected error for short window")
	}
}

func TestSerializeNil(t *testing.T) {
	if s := Serialize(nil); s != nil {
		t.Fatalf("expected nil adapter")
	}
}

func TestSerializedConcurrentPredict(t *testing.T) {
	path := writeWeights(t, `{"window_size": 2, "weights": [0.5, 0.5], "bias": 0}`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s := Serialize(m)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				got, err := s.Predict([]float64{0.4, 0.6})
				if err != nil {
					t.Errorf("predict: %v", err)
					return
				}
				if got != 0.5 {
					t.Errorf("predict = %v", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}
