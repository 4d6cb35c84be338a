package config

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestComponentCore(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	core := &componentCore{Core: obs, levels: map[string]string{"server": "none", "catalog": "normal"}}
	log := zap.New(core).Named("pagecraft")

	log.Named("server").Error("dropped")
	log.Named("catalog").Debug("dropped")
	log.Named("catalog").Named("watch").Info("kept catalog")
	log.Named("store").With(zap.String("key", "q3")).Debug("kept store")
	log.Debug("kept root")

	var got []string
	for _, e := range logs.All() {
		got = append(got, e.Message)
	}
	want := []string{"kept catalog", "kept store", "kept root"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("logged %q, want %q", got, want)
	}
}

func TestComponent(t *testing.T) {
	tests := map[string]string{
		"pagecraft":              "",
		"pagecraft.server":       "server",
		"pagecraft.catalog.more": "catalog",
		"tools":                  "tools",
	}
	for in, want := range tests {
		if got := component(in); got != want {
			t.Errorf("component(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoggingConfig_Prepare(t *testing.T) {
	t.Cleanup(func() { _ = debug.SetCrashOutput(nil, debug.CrashOptions{}) })

	dir := t.TempDir()
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "normal", Destination: filepath.Join(dir, "pagecraft.log"), Mode: "overwrite"},
		Components:    map[string]string{"server": "none"},
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("below file level")
	log.Info("project saved")
	log.Named("server").Info("listening")
	_ = log.Sync()

	data, err := os.ReadFile(conf.FileLogger.Destination)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "project saved") {
		t.Errorf("info entry missing:\n%s", text)
	}
	for _, msg := range []string{"below file level", "listening"} {
		if strings.Contains(text, msg) {
			t.Errorf("%q must be filtered:\n%s", msg, text)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "pagecraft-panic.log")); err != nil {
		t.Errorf("crash output file not created: %v", err)
	}
}

func TestLoadConfiguration_ComponentLevels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  components:\n    server: loud\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("expected validation error for unknown component level")
	}
}
