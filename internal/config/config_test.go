package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"tim/internal/config"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tim.yaml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if cfg.Dump != config.DumpText || cfg.MaxSteps != 0 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		description string
		src         string
		want        config.Config
	}{
		{"empty file keeps defaults", "", config.Default()},
		{"all fields", "verbose: true\nno_color: true\nmax_steps: 500\ntrace: run.jsonl\ndump: pretty\n",
			config.Config{Verbose: true, NoColor: true, MaxSteps: 500, Trace: "run.jsonl", Dump: config.DumpPretty}},
		{"partial", "max_steps: 10\n", config.Config{MaxSteps: 10, Dump: config.DumpText}},
	}

	for _, test := range tests {
		cfg, err := config.Load(writeConfig(t, test.src))
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.description, err)
			continue
		}
		if cfg != test.want {
			t.Errorf("%s: expected %+v, got %+v", test.description, test.want, cfg)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		description string
		src         string
	}{
		{"unknown key", "steps: 3\n"},
		{"negative max steps", "max_steps: -1\n"},
		{"bad dump", "dump: xml\n"},
		{"wrong type", "max_steps: many\n"},
	}

	for _, test := range tests {
		if _, err := config.Load(writeConfig(t, test.src)); err == nil {
			t.Errorf("%s: expected an error", test.description)
		}
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
