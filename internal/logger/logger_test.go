package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gdkit.log")

	cleanup, err := Setup(Config{Path: path, Debug: true})
	if err != nil {
		t.Fatal(err)
	}
	L().Info("clean.finished", "removed", 4)
	if err := cleanup(); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	last := lines[len(lines)-1]

	var rec map[string]any
	if err := json.Unmarshal([]byte(last), &rec); err != nil {
		t.Fatalf("invalid JSON log line: %v\n%s", err, last)
	}
	if rec["msg"] != "clean.finished" {
		t.Errorf("expected msg clean.finished, got %v", rec["msg"])
	}
	if ts, _ := rec["time"].(string); !strings.HasSuffix(ts, "Z") {
		t.Errorf("expected UTC timestamp, got %q", ts)
	}
}

func TestNonDebugSuppressesInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gdkit.log")

	cleanup, err := Setup(Config{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	L().Info("noise")
	L().Warn("clean.missing", "path", "a.gd")
	_ = cleanup()

	raw, _ := os.ReadFile(path)
	if strings.Contains(string(raw), "noise") {
		t.Error("expected info record to be filtered")
	}
	if !strings.Contains(string(raw), "clean.missing") {
		t.Error("expected warn record to be written")
	}
}
