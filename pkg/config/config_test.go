package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
environment: test
server:
  port: 8000
model:
  weights_path: config/model_weights.json
  window_size: 60
telemetry:
  backend: none
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Environment != "test" {
		t.Fatalf("environment = %q", cfg.Environment)
	}
	if cfg.Model.WindowSize != 60 {
		t.Fatalf("window size = %d", cfg.Model.WindowSize)
	}
	if cfg.Server.Port != 8000 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"missing environment": `
model:
  window_size: 60
`,
		"zero window": `
environment: test
model:
  window_size: 0
`,
		"bad telemetry backend": `
environment: test
model:
  window_size: 60
telemetry:
  backend: carrier-pigeon
`,
		"kafka backend without brokers": `
environment: test
model:
  window_size: 60
telemetry:
  backend: kafka
`,
		"clickhouse backend without host": `
environment: test
model:
  window_size: 60
telemetry:
  backend: clickhouse
`,
		"bad cache backend": `
environment: test
model:
  window_size: 60
cache:
  enabled: true
  backend: disk
`,
	}
	for name, content := range cases {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("TELEMETRY_BACKEND", "none")
	t.Setenv("MODEL_WEIGHTS", "/tmp/other_weights.json")

	cfg, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Fatalf("port override ignored: %d", cfg.Server.Port)
	}
	if cfg.Model.WeightsPath != "/tmp/other_weights.json" {
		t.Fatalf("weights override ignored: %s", cfg.Model.WeightsPath)
	}
}
