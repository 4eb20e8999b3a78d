package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kalambet/biomatch/internal/biorhythm"
	"github.com/kalambet/biomatch/internal/config"
	"github.com/kalambet/biomatch/internal/render"
	"github.com/kalambet/biomatch/internal/waveform"
)

// --- circadian ---

var circadianCmd = &cobra.Command{
	Use:   "circadian",
	Short: "Show the circadian alertness curve",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if cmd.Flags().Changed("hour") {
			hour, _ := cmd.Flags().GetInt("hour")
			if hour < 0 || hour > 23 {
				return fmt.Errorf("--hour must be between 0 and 23, got %d", hour)
			}
			fmt.Fprintf(out, "%.0f\n", biorhythm.Circadian(hour))
			return nil
		}

		now := time.Now().Hour()
		for h := 0; h < 24; h++ {
			c := biorhythm.Circadian(h)
			line := fmt.Sprintf("%02d:00  %3.0f  %s", h, c, strings.Repeat("█", int(c/5)))
			if h == now {
				line = colorize(colorBold, line+"  ← now")
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	circadianCmd.Flags().Int("hour", 0, "print the value for a single hour (0-23)")
}

// --- waveform ---

var waveformCmd = &cobra.Command{
	Use:   "waveform",
	Short: "Print the live bio-signal as SVG",
	Long: `Print the live bio-signal as SVG.

Samples are taken at the configured waveform interval starting now; only
the most recent samples that fit the display buffer are drawn.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, _ := cmd.Flags().GetInt("samples")
		if samples < 2 {
			return fmt.Errorf("--samples must be at least 2")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		buf := waveform.NewBuffer(cfg.Waveform.Capacity)
		start := time.Now()
		for i := 0; i < samples; i++ {
			buf.Push(waveform.Sample(start.Add(time.Duration(i) * cfg.Waveform.Interval)))
		}

		svg := render.SVG(buf.Values())
		if svg == "" {
			return fmt.Errorf("waveform buffer holds fewer than 2 samples; raise waveform.capacity")
		}
		fmt.Fprint(cmd.OutOrStdout(), svg)
		return nil
	},
}

func init() {
	waveformCmd.Flags().Int("samples", waveform.DefaultCapacity, "number of samples to generate")
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: "Set a configuration value.\n\nValid keys:\n  " +
		strings.Join(config.ValidKeys(), "\n  "),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
