package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"somnoseg/internal/errors"
	"somnoseg/internal/segment"
	"somnoseg/internal/zeitgeber"
)

// Config represents the complete application configuration
type Config struct {
	Segmentation SegmentationConfig
	Schedule     ScheduleConfig
	Output       OutputConfig
	Workers      int
}

// SegmentationConfig holds the consolidation thresholds, in samples
type SegmentationConfig struct {
	MinPacketLen int
	MergeGapREM  int
	MergeGapNREM int
}

// ScheduleConfig holds the facility light schedule
type ScheduleConfig struct {
	LightsOnHour  int
	LightsOffHour int
}

// OutputConfig holds output locations
type OutputConfig struct {
	Dir    string
	Suffix string
}

// Load reads configuration from a .env file (when present) and environment
// variables, then validates it.
func Load() (*Config, error) {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := &Config{
		Segmentation: SegmentationConfig{
			MinPacketLen: getEnvIntOrDefault("MIN_PACKET_LEN", segment.DefaultMinPacketLen),
			MergeGapREM:  getEnvIntOrDefault("MERGE_GAP_REM", segment.DefaultMergeGapREM),
			MergeGapNREM: getEnvIntOrDefault("MERGE_GAP_NREM", segment.DefaultMergeGapNREM),
		},
		Schedule: ScheduleConfig{
			LightsOnHour:  getEnvIntOrDefault("LIGHTS_ON_HOUR", 9),
			LightsOffHour: getEnvIntOrDefault("LIGHTS_OFF_HOUR", 21),
		},
		Output: OutputConfig{
			Dir:    getEnvOrDefault("OUTPUT_DIR", "."),
			Suffix: getEnvOrDefault("OUTPUT_SUFFIX", "_consolidated"),
		},
		Workers: getEnvIntOrDefault("WORKERS", 4),
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// Validate checks all sections
func (c *Config) Validate() error {
	if err := c.SegmentOptions().Validate(); err != nil {
		return err
	}
	if err := c.Clock().Validate(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return errors.ConfigInvalid("WORKERS must be at least 1")
	}
	if c.Output.Suffix == "" {
		return errors.ConfigInvalid("OUTPUT_SUFFIX cannot be empty")
	}
	return nil
}

// SegmentOptions converts the segmentation section to pipeline options
func (c *Config) SegmentOptions() segment.Options {
	return segment.Options{
		MinPacketLen: c.Segmentation.MinPacketLen,
		MergeGapREM:  c.Segmentation.MergeGapREM,
		MergeGapNREM: c.Segmentation.MergeGapNREM,
	}
}

// Clock converts the schedule section to a zeitgeber clock
func (c *Config) Clock() zeitgeber.Clock {
	return zeitgeber.Clock{
		LightsOn:  c.Schedule.LightsOnHour,
		LightsOff: c.Schedule.LightsOffHour,
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
