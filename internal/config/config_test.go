package config

import (
	"testing"
	"time"

	"github.com/benbeisheim/chessdev-backend/internal/model"
	"github.com/benbeisheim/chessdev-backend/internal/testutil"
	"go.uber.org/zap/zapcore"
)

func envOf(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, envOf(nil))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg, Config{
		Addr:           ":3000",
		AllowedOrigins: []string{"http://localhost:5173"},
		MaxSessions:    1000,
		SessionIdle:    30 * time.Minute,
		LogLevel:       zapcore.InfoLevel,
		CPUPromotion:   model.Queen,
	})
	testutil.AssertEqual(t, cfg.CORSOrigins(), "http://localhost:5173")
}

func TestLoadEnvironment(t *testing.T) {
	cfg, err := Load(nil, envOf(map[string]string{
		"CHESSDEV_ADDR":          "127.0.0.1:8080",
		"CHESSDEV_ORIGINS":       "https://a.example, https://b.example",
		"CHESSDEV_MAX_SESSIONS":  "0",
		"CHESSDEV_SESSION_IDLE":  "0",
		"CHESSDEV_LOG_LEVEL":     "debug",
		"CHESSDEV_LOG_DEV":       "true",
		"CHESSDEV_CPU_SEED":      "42",
		"CHESSDEV_CPU_PROMOTION": "n",
	}))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg, Config{
		Addr:           "127.0.0.1:8080",
		AllowedOrigins: []string{"https://a.example", "https://b.example"},
		MaxSessions:    0,
		LogLevel:       zapcore.DebugLevel,
		LogDevelopment: true,
		CPUSeed:        42,
		CPUPromotion:   model.Knight,
	})
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := Load(
		[]string{"-addr", ":9000", "-origins", "*", "-cpu-seed", "7"},
		envOf(map[string]string{"CHESSDEV_ADDR": ":8000", "CHESSDEV_CPU_SEED": "3"}),
	)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg.Addr, ":9000")
	testutil.AssertEqual(t, cfg.CPUSeed, uint64(7))
	testutil.AssertTrue(t, len(cfg.AllowedOrigins) == 0, "* allows any origin")
	testutil.AssertEqual(t, cfg.CORSOrigins(), "*")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-nope"}},
		{"negative sessions", []string{"-max-sessions", "-1"}},
		{"bad sessions", []string{"-max-sessions", "many"}},
		{"bad idle", []string{"-session-idle", "soon"}},
		{"negative idle", []string{"-session-idle", "-1m"}},
		{"bad level", []string{"-log-level", "loud"}},
		{"bad dev flag", []string{"-log-dev", "maybe"}},
		{"bad seed", []string{"-cpu-seed", "-5"}},
		{"king promotion", []string{"-cpu-promotion", "K"}},
		{"long promotion", []string{"-cpu-promotion", "QQ"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.args, envOf(nil)); err == nil {
				t.Errorf("Load(%q) succeeded, want error", tt.args)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg, err := Load([]string{"-log-level", "warn"}, envOf(nil))
	testutil.AssertNoError(t, err)
	logger, err := cfg.NewLogger()
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, logger.Core().Enabled(zapcore.InfoLevel), "info enabled at warn")
	testutil.AssertTrue(t, logger.Core().Enabled(zapcore.WarnLevel), "warn disabled at warn")
}
