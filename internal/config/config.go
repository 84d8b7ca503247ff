// Package config loads server settings from flags, falling back to
// CHESSDEV_* environment variables and then to defaults.
package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/benbeisheim/chessdev-backend/internal/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Addr           string
	AllowedOrigins []string
	MaxSessions    int
	SessionIdle    time.Duration
	LogLevel       zapcore.Level
	LogDevelopment bool
	CPUSeed        uint64
	CPUPromotion   model.PieceKind
}

// Load parses args (without the program name). getenv is usually os.Getenv.
func Load(args []string, getenv func(string) string) (Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv("CHESSDEV_" + key)); v != "" {
			return v
		}
		return def
	}

	fs := flag.NewFlagSet("chessdev", flag.ContinueOnError)
	addr := fs.String("addr", env("ADDR", ":3000"), "listen address")
	origins := fs.String("origins", env("ORIGINS", "http://localhost:5173"), "comma-separated allowed origins (* for any)")
	maxSessions := fs.String("max-sessions", env("MAX_SESSIONS", "1000"), "maximum open sessions (0 = unlimited)")
	idle := fs.String("session-idle", env("SESSION_IDLE", "30m"), "close sessions idle this long (0 = never)")
	logLevel := fs.String("log-level", env("LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	logDev := fs.String("log-dev", env("LOG_DEV", "false"), "human-readable development logging")
	seed := fs.String("cpu-seed", env("CPU_SEED", "0"), "CPU random seed (0 = random)")
	promote := fs.String("cpu-promotion", env("CPU_PROMOTION", "Q"), "piece the CPU promotes to: N, B, R or Q")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:           *addr,
		AllowedOrigins: splitList(*origins),
	}

	var err error
	if cfg.MaxSessions, err = strconv.Atoi(*maxSessions); err != nil || cfg.MaxSessions < 0 {
		return Config{}, fmt.Errorf("invalid max sessions %q", *maxSessions)
	}
	if cfg.SessionIdle, err = time.ParseDuration(*idle); err != nil || cfg.SessionIdle < 0 {
		return Config{}, fmt.Errorf("invalid session idle timeout %q", *idle)
	}
	if cfg.LogLevel, err = zapcore.ParseLevel(*logLevel); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q: %w", *logLevel, err)
	}
	if cfg.LogDevelopment, err = strconv.ParseBool(*logDev); err != nil {
		return Config{}, fmt.Errorf("invalid log-dev %q", *logDev)
	}
	if cfg.CPUSeed, err = strconv.ParseUint(*seed, 10, 64); err != nil {
		return Config{}, fmt.Errorf("invalid cpu seed %q", *seed)
	}
	if cfg.CPUPromotion, err = parsePromotion(*promote); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parsePromotion(s string) (model.PieceKind, error) {
	if len(s) == 1 {
		switch k, _ := model.ParsePieceKind(strings.ToUpper(s)[0]); k {
		case model.Knight, model.Bishop, model.Rook, model.Queen:
			return k, nil
		}
	}
	return model.NoKind, fmt.Errorf("invalid cpu promotion %q: want N, B, R or Q", s)
}

// splitList splits a comma-separated list. "*" or "" means no restriction.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" && part != "*" {
			out = append(out, part)
		}
	}
	return out
}

// CORSOrigins is the origin list in the form fiber's cors middleware takes.
func (c Config) CORSOrigins() string {
	if len(c.AllowedOrigins) == 0 {
		return "*"
	}
	return strings.Join(c.AllowedOrigins, ",")
}

// NewLogger builds the process logger from the log settings.
func (c Config) NewLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.LogDevelopment {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(c.LogLevel)
	return zc.Build()
}
