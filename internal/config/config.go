// Package config reads wavescape settings from the environment and an
// optional .env file.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/olivier-w/wavescape/internal/scene"
	"github.com/olivier-w/wavescape/internal/settings"
)

// Config stores the application configuration.
type Config struct {
	FFTSize    int
	BarCount   int
	Spread     float64
	Radius     float64
	Mode       string
	Projection string

	LogFile  string // empty disables logging
	LogLevel string

	Watch  bool // reload the file when it changes on disk
	Silent bool // play without an audio device

	EnvLoaded bool // a .env file was found
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return fallback
}

// Load reads configuration from environment variables, after loading the
// given .env files (or ./.env when none are named). Existing environment
// variables take precedence over .env entries.
func Load(envFiles ...string) *Config {
	err := godotenv.Load(envFiles...)

	d := settings.Defaults()
	return &Config{
		FFTSize:    getEnvInt("WAVESCAPE_FFT_SIZE", d.FFTSize),
		BarCount:   getEnvInt("WAVESCAPE_BARS", d.BarCount),
		Spread:     getEnvFloat("WAVESCAPE_SPREAD", d.Spread),
		Radius:     getEnvFloat("WAVESCAPE_RADIUS", d.Radius),
		Mode:       getEnv("WAVESCAPE_MODE", d.Mode.String()),
		Projection: getEnv("WAVESCAPE_PROJECTION", d.Projection.String()),
		LogFile:    getEnv("WAVESCAPE_LOG_FILE", ""),
		LogLevel:   getEnv("WAVESCAPE_LOG_LEVEL", "info"),
		Watch:      getEnvBool("WAVESCAPE_WATCH", false),
		Silent:     getEnvBool("WAVESCAPE_SILENT", false),
		EnvLoaded:  err == nil,
	}
}

// Apply pushes the configured view values through the coordinator's
// validating setters. Invalid values are logged and the defaults kept.
func (c *Config) Apply(coord *settings.Coordinator, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	coord.SetFFTSize(c.FFTSize)
	coord.SetBarCount(c.BarCount)
	coord.SetSpread(c.Spread)
	coord.SetRadius(c.Radius)

	if mode, err := settings.ParseMode(c.Mode); err != nil {
		log.Warn("ignoring configured mode", zap.Error(err))
	} else {
		coord.SetMode(mode)
	}
	if proj, err := scene.ParseProjection(c.Projection); err != nil {
		log.Warn("ignoring configured projection", zap.Error(err))
	} else {
		coord.SetProjection(proj)
	}
}
