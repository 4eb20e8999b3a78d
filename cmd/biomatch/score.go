package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kalambet/biomatch/internal/biorhythm"
	"github.com/kalambet/biomatch/internal/profile"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Derive a communication profile from given readings",
	Long: `Derive a communication profile from given readings, without running
the simulation.

Examples:
  biomatch score --physical 85 --emotional 75 --intellectual 60 --circadian 90 --stress 20 --hour 11
  biomatch score --stress 80 --format yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		physical, _ := flags.GetFloat64("physical")
		emotional, _ := flags.GetFloat64("emotional")
		intellectual, _ := flags.GetFloat64("intellectual")
		circadian, _ := flags.GetFloat64("circadian")
		heartRate, _ := flags.GetFloat64("heart-rate")
		stress, _ := flags.GetFloat64("stress")
		hour, _ := flags.GetInt("hour")
		format, _ := flags.GetString("format")

		now := time.Now()
		if !flags.Changed("hour") {
			hour = now.Hour()
		}
		if hour < 0 || hour > 23 {
			return fmt.Errorf("--hour must be between 0 and 23, got %d", hour)
		}
		if !flags.Changed("circadian") {
			circadian = biorhythm.Circadian(hour)
		}

		for _, p := range []struct {
			name  string
			value float64
		}{
			{"physical", physical},
			{"emotional", emotional},
			{"intellectual", intellectual},
			{"circadian", circadian},
			{"stress", stress},
		} {
			if p.value < 0 || p.value > 100 {
				return fmt.Errorf("--%s must be between 0 and 100, got %g", p.name, p.value)
			}
		}
		if heartRate <= 0 {
			return fmt.Errorf("--heart-rate must be positive, got %g", heartRate)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if format == "" {
			format = cfg.Output.Format
		}

		snap := biorhythm.Snapshot{
			Physical:     physical,
			Emotional:    emotional,
			Intellectual: intellectual,
			Circadian:    circadian,
			HeartRate:    heartRate,
			StressLevel:  stress,
		}
		return writeRecord(cmd.OutOrStdout(), format, profileRecord{
			GeneratedAt: now.UTC(),
			Hour:        hour,
			Metrics:     snap,
			Profile:     profile.Generate(snap, hour),
		})
	},
}

func init() {
	f := scoreCmd.Flags()
	f.Float64("physical", 50, "physical rhythm (0-100)")
	f.Float64("emotional", 50, "emotional rhythm (0-100)")
	f.Float64("intellectual", 50, "intellectual rhythm (0-100)")
	f.Float64("circadian", 0, "circadian alertness (0-100, default derived from --hour)")
	f.Float64("heart-rate", 70, "heart rate in BPM")
	f.Float64("stress", 30, "stress level (0-100)")
	f.Int("hour", 0, "hour of day 0-23 (default current hour)")
	f.String("format", "", "output format: json or yaml (default from config)")
}
