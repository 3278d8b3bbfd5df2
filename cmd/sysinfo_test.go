package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"opskit/internal/sysinfo"
)

func newSysinfoApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"meminfo": "MemTotal:       2048000 kB\nMemFree:         512000 kB\nMemAvailable:    1024000 kB\n",
		"loadavg": "0.10 0.20 0.30 1/100 999\n",
		"uptime":  "3600.00 7200.00\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	var out bytes.Buffer
	return &App{Sampler: sysinfo.NewWithRoot(root), Out: &out, Err: os.Stderr}, &out
}

func TestSysinfo(t *testing.T) {
	app, out := newSysinfoApp(t)

	if err := app.Sysinfo(); err != nil {
		t.Fatalf("Sysinfo: %v", err)
	}

	got := out.String()
	for _, want := range []string{"2000 MiB total", "0.10 0.20 0.30", "1h0m0s"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestSysinfo_JSON(t *testing.T) {
	app, out := newSysinfoApp(t)
	app.JSON = true

	if err := app.Sysinfo(); err != nil {
		t.Fatalf("Sysinfo: %v", err)
	}

	var result SysinfoResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if result.Memory.TotalKiB != 2048000 {
		t.Errorf("TotalKiB = %d, want 2048000", result.Memory.TotalKiB)
	}
	if result.Load.Load5 != 0.20 {
		t.Errorf("Load5 = %v, want 0.20", result.Load.Load5)
	}
	if result.Uptime != 3600 {
		t.Errorf("Uptime = %v, want 3600", result.Uptime)
	}
}

func TestSysinfo_Unavailable(t *testing.T) {
	var out bytes.Buffer
	app := &App{
		Sampler: sysinfo.NewWithRoot(filepath.Join(t.TempDir(), "nope")),
		Out:     &out,
		Err:     os.Stderr,
	}

	err := app.Sysinfo()
	if err == nil {
		t.Fatal("Sysinfo without proc should fail")
	}
	if ExitCode(err) != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode(err))
	}
}
