package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Log.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Log.Level)
	}
	if cfg.Probe.Count != 1 {
		t.Errorf("expected probe count 1, got %d", cfg.Probe.Count)
	}
	if cfg.Probe.TimeoutSeconds != 3 {
		t.Errorf("expected probe timeout 3, got %d", cfg.Probe.TimeoutSeconds)
	}
	if cfg.Actor != "$USER" {
		t.Errorf("expected actor '$USER', got '%s'", cfg.Actor)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults with env vars expanded
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Log.Level)
	}

	// Actor should be expanded from $USER
	expectedUser := os.Getenv("USER")
	if cfg.Actor != expectedUser {
		t.Errorf("expected actor '%s', got '%s'", expectedUser, cfg.Actor)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	configContent := `
log:
  level: debug
probe:
  count: 3
  timeout_seconds: 10
actor: testuser
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Log.Level)
	}
	if cfg.Probe.Count != 3 {
		t.Errorf("expected probe count 3, got %d", cfg.Probe.Count)
	}
	if cfg.Probe.TimeoutSeconds != 10 {
		t.Errorf("expected probe timeout 10, got %d", cfg.Probe.TimeoutSeconds)
	}
	if cfg.Actor != "testuser" {
		t.Errorf("expected actor 'testuser', got '%s'", cfg.Actor)
	}
}

func TestExpandEnvVars(t *testing.T) {
	// Set test environment variable
	os.Setenv("TEST_VAR", "testvalue")
	defer os.Unsetenv("TEST_VAR")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "dollar syntax",
			input:    "$TEST_VAR",
			expected: "testvalue",
		},
		{
			name:     "braces syntax",
			input:    "${TEST_VAR}",
			expected: "testvalue",
		},
		{
			name:     "mixed with text",
			input:    "prefix-${TEST_VAR}-suffix",
			expected: "prefix-testvalue-suffix",
		},
		{
			name:     "USER variable",
			input:    "$USER",
			expected: os.Getenv("USER"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandEnv(tt.input)
			if result != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, result)
			}
		})
	}
}

func TestLoadWithEnvVars(t *testing.T) {
	os.Setenv("TEST_ACTOR", "envuser")
	defer os.Unsetenv("TEST_ACTOR")

	dir := t.TempDir()

	configContent := `
actor: ${TEST_ACTOR}
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Actor != "envuser" {
		t.Errorf("expected actor 'envuser', got '%s'", cfg.Actor)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("invalid: yaml: content:"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}
