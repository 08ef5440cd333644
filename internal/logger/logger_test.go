package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"scenelink/internal/config"
)

// restore puts the process-wide loggers back after a test reconfigures them
func restore(t *testing.T) {
	t.Helper()
	level, logger, global := zerolog.GlobalLevel(), Logger, log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(level)
		Logger = logger
		log.Logger = global
	})
}

func TestInitLevels(t *testing.T) {
	tests := []struct {
		level   string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.WarnLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"loud", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			restore(t)
			err := Init(config.LogConfig{Level: tt.level, Output: "stderr"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && zerolog.GlobalLevel() != tt.want {
				t.Errorf("GlobalLevel() = %s, want %s", zerolog.GlobalLevel(), tt.want)
			}
		})
	}
}

func TestInitJSONFile(t *testing.T) {
	restore(t)
	path := filepath.Join(t.TempDir(), "logs", "scenelink.log")

	err := Init(config.LogConfig{Level: "info", Format: "json", Output: "file", FilePath: path})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	l := Component("catalog")
	l.Debug().Msg("hidden")
	l.Info().Str("scene", "shot.lscn").Msg("listed")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1:\n%s", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	for key, want := range map[string]string{
		"level":     "info",
		"component": "catalog",
		"scene":     "shot.lscn",
		"message":   "listed",
	} {
		if entry[key] != want {
			t.Errorf("%s = %v, want %q", key, entry[key], want)
		}
	}
	if _, ok := entry["time"]; !ok {
		t.Error("missing timestamp")
	}
}

func TestNopBeforeInit(t *testing.T) {
	restore(t)
	Logger = zerolog.Nop()
	// must not panic or write anywhere
	Info().Msg("ignored")
	l := Component("x")
	l.Warn().Msg("ignored")
}
