package server

import (
	"fmt"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/leaf-doctor-mcp/internal/advisory"
	"github.com/ironsheep/leaf-doctor-mcp/internal/leaf"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLogLevel        = "LEAF_MCP_LOG_LEVEL"
	EnvAdvisoryPath    = "LEAF_MCP_ADVISORY_PATH"
	EnvCalibrationPath = "LEAF_MCP_CALIBRATION_PATH"
	EnvMaxDimension    = "LEAF_MCP_MAX_DIMENSION"
)

// Config holds the server settings.
type Config struct {
	// LogLevel is a logrus level name. Empty means info.
	LogLevel string

	// AdvisoryPath is an optional JSON advisory table replacing the
	// embedded one.
	AdvisoryPath string

	// CalibrationPath is an optional JSON calibration file. Fields it omits
	// keep their default.
	CalibrationPath string

	// MaxDimension downscales decoded images to fit this many pixels per
	// side before analysis. Zero disables downscaling.
	MaxDimension int
}

// ConfigFromEnv reads the configuration from the environment.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		LogLevel:        os.Getenv(EnvLogLevel),
		AdvisoryPath:    os.Getenv(EnvAdvisoryPath),
		CalibrationPath: os.Getenv(EnvCalibrationPath),
	}

	if v := os.Getenv(EnvMaxDimension); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("%s must be a non-negative integer, got %q", EnvMaxDimension, v)
		}
		cfg.MaxDimension = n
	}

	return cfg, nil
}

// Level parses LogLevel, defaulting to info.
func (c Config) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}
	return lvl, nil
}

// catalog loads the advisory table named by the config.
func (c Config) catalog() (*advisory.Catalog, error) {
	if c.AdvisoryPath == "" {
		return advisory.Default(), nil
	}
	return advisory.Load(c.AdvisoryPath)
}

// calibration loads the calibration named by the config.
func (c Config) calibration() (leaf.Calibration, error) {
	if c.CalibrationPath == "" {
		return leaf.DefaultCalibration(), nil
	}
	data, err := os.ReadFile(c.CalibrationPath)
	if err != nil {
		return leaf.Calibration{}, fmt.Errorf("failed to read calibration: %w", err)
	}
	return leaf.ParseCalibration(data)
}
