package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLevelOf(t *testing.T) {
	tests := []struct {
		name string
		want zapcore.Level
		ok   bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"normal", zapcore.InfoLevel, true},
		{"none", zapcore.InvalidLevel, false},
		{"", zapcore.InvalidLevel, false},
	}
	for _, tt := range tests {
		if got, ok := levelOf(tt.name); got != tt.want || ok != tt.ok {
			t.Errorf("levelOf(%q) = %v, %v", tt.name, got, ok)
		}
	}
}

func prepareFileLog(t *testing.T, level string, rpt *Report) (*zap.Logger, string) {
	t.Helper()
	t.Cleanup(func() { _ = debug.SetCrashOutput(nil, debug.CrashOptions{}) })

	dir := t.TempDir()
	conf := LoggingConfig{
		FileLogger:    LoggerConfig{Level: level, Destination: filepath.Join(dir, "odsw.log"), Mode: "overwrite"},
		ConsoleLogger: LoggerConfig{Level: "none"},
	}
	log, err := conf.Prepare(rpt)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	return log, conf.FileLogger.Destination
}

func TestLoggingConfig_Prepare(t *testing.T) {
	log, path := prepareFileLog(t, "normal", nil)
	log.Debug("hidden message")
	log.Info("visible message")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "visible message") || strings.Contains(string(data), "hidden message") {
		t.Errorf("log = %s", data)
	}
	if !strings.Contains(string(data), "odsw") {
		t.Errorf("logger is not named: %s", data)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(path), "odsw-panic.log")); err != nil {
		t.Errorf("panic log was not prepared: %v", err)
	}
}

func TestLoggingConfig_PrepareWithReport(t *testing.T) {
	rpt, err := (&ReporterConfig{Destination: filepath.Join(t.TempDir(), "report.zip")}).Prepare()
	if err != nil {
		t.Fatal(err)
	}
	defer rpt.Close()

	log, path := prepareFileLog(t, "none", rpt)
	log.Debug("debug message")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("file log must be forced with report: %v", err)
	}
	if !strings.Contains(string(data), "debug message") {
		t.Errorf("log = %s", data)
	}
	if _, ok := rpt.entries["final.log"]; !ok {
		t.Error("final.log was not registered in report")
	}
}

func TestTerseErrors(t *testing.T) {
	cfg := zap.NewDevelopmentEncoderConfig()
	ent := zapcore.Entry{Level: zapcore.ErrorLevel, Time: time.Now(), Message: "failed"}
	fields := []zapcore.Field{zap.Error(multierr.Combine(errors.New("first"), errors.New("second")))}

	verbose, err := zapcore.NewConsoleEncoder(cfg).EncodeEntry(ent, fields)
	if err != nil {
		t.Fatal(err)
	}
	terse, err := terseErrors{zapcore.NewConsoleEncoder(cfg)}.Clone().EncodeEntry(ent, fields)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(verbose.String(), "errorCauses") {
		t.Errorf("verbose = %s", verbose.String())
	}
	if strings.Contains(terse.String(), "errorCauses") || !strings.Contains(terse.String(), "first; second") {
		t.Errorf("terse = %s", terse.String())
	}
}
