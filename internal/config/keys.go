package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type keyType int

const (
	kString keyType = iota
	kInt
	kBool
	kDuration
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "timing.initialize", typ: kDuration, env: "BIOMATCH_TIMING_INITIALIZE",
		apply:   func(cfg *Config, v any) { cfg.Timing.Initialize = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Timing.Initialize },
	},
	{
		key: "timing.scan_step", typ: kDuration, env: "BIOMATCH_TIMING_SCAN_STEP",
		apply:   func(cfg *Config, v any) { cfg.Timing.ScanStep = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Timing.ScanStep },
	},
	{
		key: "timing.scan_steps", typ: kInt, env: "BIOMATCH_TIMING_SCAN_STEPS",
		apply:   func(cfg *Config, v any) { cfg.Timing.ScanSteps = v.(int) },
		extract: func(cfg Config) any { return cfg.Timing.ScanSteps },
	},
	{
		key: "timing.analyze", typ: kDuration, env: "BIOMATCH_TIMING_ANALYZE",
		apply:   func(cfg *Config, v any) { cfg.Timing.Analyze = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Timing.Analyze },
	},
	{
		key: "timing.reset", typ: kDuration, env: "BIOMATCH_TIMING_RESET",
		apply:   func(cfg *Config, v any) { cfg.Timing.Reset = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Timing.Reset },
	},
	{
		key: "waveform.interval", typ: kDuration, env: "BIOMATCH_WAVEFORM_INTERVAL",
		apply:   func(cfg *Config, v any) { cfg.Waveform.Interval = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Waveform.Interval },
	},
	{
		key: "waveform.capacity", typ: kInt, env: "BIOMATCH_WAVEFORM_CAPACITY",
		apply:   func(cfg *Config, v any) { cfg.Waveform.Capacity = v.(int) },
		extract: func(cfg Config) any { return cfg.Waveform.Capacity },
	},
	{
		key: "log.level", typ: kString, env: "BIOMATCH_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
	{
		key: "output.format", typ: kString, env: "BIOMATCH_OUTPUT_FORMAT",
		apply:   func(cfg *Config, v any) { cfg.Output.Format = v.(string) },
		extract: func(cfg Config) any { return cfg.Output.Format },
	},
	{
		key: "output.color", typ: kBool, env: "BIOMATCH_OUTPUT_COLOR",
		apply:   func(cfg *Config, v any) { cfg.Output.Color = v.(bool) },
		extract: func(cfg Config) any { return cfg.Output.Color },
	},
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for _, s := range specs {
		switch s.typ {
		case kString:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kBool:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok && v != "" {
				if bv, err := strconv.ParseBool(v); err == nil {
					s.apply(cfg, bv)
				} else {
					fmt.Fprintf(os.Stderr, "[WARN] could not parse bool from config key %s=%q: %v. Using default value.\n", s.key, v, err)
				}
			}
		case kDuration:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok && v != "" {
				if d, err := time.ParseDuration(v); err == nil {
					s.apply(cfg, d)
				} else {
					fmt.Fprintf(os.Stderr, "[WARN] could not parse duration from config key %s=%q: %v. Using default value.\n", s.key, v, err)
				}
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		case kBool:
			if b, err := strconv.ParseBool(raw); err == nil {
				s.apply(cfg, b)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse bool from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		case kDuration:
			if d, err := time.ParseDuration(raw); err == nil {
				s.apply(cfg, d)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse duration from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
