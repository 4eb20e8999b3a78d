package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownKey is returned by SetKey for keys that are not in the key table.
var ErrUnknownKey = errors.New("unknown config key")

type Config struct {
	Timing   TimingConfig
	Waveform WaveformConfig
	Log      LogConfig
	Output   OutputConfig
}

// TimingConfig holds the stage durations of one analysis cycle.
type TimingConfig struct {
	Initialize time.Duration
	ScanStep   time.Duration
	ScanSteps  int
	Analyze    time.Duration
	Reset      time.Duration
}

type WaveformConfig struct {
	Interval time.Duration
	Capacity int
}

type LogConfig struct {
	Level string
}

type OutputConfig struct {
	Format string // "json" or "yaml"
	Color  bool
}

func defaults() Config {
	return Config{
		Timing: TimingConfig{
			Initialize: time.Second,
			ScanStep:   50 * time.Millisecond,
			ScanSteps:  51,
			Analyze:    2 * time.Second,
			Reset:      5 * time.Second,
		},
		Waveform: WaveformConfig{
			Interval: 100 * time.Millisecond,
			Capacity: 50,
		},
		Log: LogConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Format: "json",
			Color:  true,
		},
	}
}

// Load reads configuration from the platform-native backend and
// environment variables.
//
// On macOS the backend is UserDefaults (domain: com.biomatch.app).
// Elsewhere it is a JSON file at $XDG_CONFIG_HOME/biomatch/config.json.
//
// Environment variables (BIOMATCH_*) override backend values on all platforms.
func Load() (Config, error) {
	return loadWith(newPlatformBackend())
}

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot drive a cycle.
func (c Config) Validate() error {
	durations := []struct {
		key string
		d   time.Duration
	}{
		{"timing.initialize", c.Timing.Initialize},
		{"timing.scan_step", c.Timing.ScanStep},
		{"timing.analyze", c.Timing.Analyze},
		{"timing.reset", c.Timing.Reset},
	}
	for _, d := range durations {
		if d.d < 0 {
			return fmt.Errorf("invalid config: %s must not be negative, got %s", d.key, d.d)
		}
	}
	if c.Waveform.Interval <= 0 {
		return fmt.Errorf("invalid config: waveform.interval must be positive, got %s", c.Waveform.Interval)
	}
	if c.Timing.ScanSteps < 1 {
		return fmt.Errorf("invalid config: timing.scan_steps must be at least 1, got %d", c.Timing.ScanSteps)
	}
	if c.Waveform.Capacity < 1 {
		return fmt.Errorf("invalid config: waveform.capacity must be at least 1, got %d", c.Waveform.Capacity)
	}
	switch strings.ToLower(c.Output.Format) {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid config: output.format must be json or yaml, got %q", c.Output.Format)
	}
	return nil
}
