package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kalambet/biomatch/internal/biorhythm"
	"github.com/kalambet/biomatch/internal/config"
	"github.com/kalambet/biomatch/internal/matcher"
	"github.com/kalambet/biomatch/internal/profile"
	"github.com/kalambet/biomatch/internal/render"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a bio-rhythm analysis and print the communication profile",
	Long: `Run a bio-rhythm analysis and print the communication profile.

Frames are drawn to stderr; one profile record per completed cycle is
written to stdout.

Examples:
  biomatch run
  biomatch run --cycles 3 --format yaml
  biomatch run --frames --no-color`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cycles, _ := cmd.Flags().GetInt("cycles")
		format, _ := cmd.Flags().GetString("format")
		frames, _ := cmd.Flags().GetBool("frames")

		if cycles < 1 {
			return fmt.Errorf("--cycles must be at least 1")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if format == "" {
			format = cfg.Output.Format
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return runCycles(ctx, runOptions{
			Timings: timingsFromConfig(cfg),
			Cycles:  cycles,
			Format:  format,
			Frames:  frames,
			Color:   !noColor,
		}, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	runCmd.Flags().Int("cycles", 1, "number of analysis cycles to run")
	runCmd.Flags().String("format", "", "profile output format: json or yaml (default from config)")
	runCmd.Flags().Bool("frames", false, "redraw on every update instead of on stage changes only")
}

func timingsFromConfig(cfg config.Config) matcher.Timings {
	return matcher.Timings{
		Initialize:       cfg.Timing.Initialize,
		ScanStep:         cfg.Timing.ScanStep,
		ScanSteps:        cfg.Timing.ScanSteps,
		Analyze:          cfg.Timing.Analyze,
		Reset:            cfg.Timing.Reset,
		SampleInterval:   cfg.Waveform.Interval,
		WaveformCapacity: cfg.Waveform.Capacity,
	}
}

type runOptions struct {
	Timings matcher.Timings
	Cycles  int
	Format  string
	Frames  bool
	Color   bool
	Clock   matcher.Clock
	Source  biorhythm.Source
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// runCycles activates the matcher once per cycle, writes each profile to
// stdout and draws frames to stderr. Cancelling ctx deactivates the
// matcher and ends the run without error.
func runCycles(ctx context.Context, opts runOptions, stdout, stderr io.Writer) error {
	if opts.Clock == nil {
		opts.Clock = wallClock{}
	}
	renderer := render.NewRenderer(stderr, opts.Color)
	separator := strings.Repeat("─", 56)

	var (
		m         *matcher.Matcher
		lastStage = matcher.Stage(-1)
		profiles  = make(chan profileRecord, 1)
	)
	m = matcher.New(matcher.Options{
		Timings: opts.Timings,
		Clock:   opts.Clock,
		Source:  opts.Source,
		OnChange: func(st matcher.State) {
			if !opts.Frames && st.Stage == lastStage {
				return
			}
			lastStage = st.Stage
			view := render.NewView(st, opts.Clock.Now().Hour())
			if !view.Visible {
				return
			}
			fmt.Fprintln(stderr, separator)
			if err := renderer.Draw(view); err != nil {
				printError("drawing frame: %v", err)
			}
		},
		OnProfile: func(p profile.CommunicationProfile) {
			st := m.State()
			now := opts.Clock.Now()
			profiles <- profileRecord{
				CycleID:     st.CycleID,
				GeneratedAt: now.UTC(),
				Hour:        now.Hour(),
				Metrics:     st.Metrics,
				Profile:     p,
			}
		},
	})
	defer m.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gCtx := errgroup.WithContext(runCtx)

	// Deactivation is the only way to stop a cycle early.
	g.Go(func() error {
		<-gCtx.Done()
		m.SetActive(false)
		return nil
	})

	g.Go(func() error {
		defer cancel()
		for i := 1; i <= opts.Cycles; i++ {
			if opts.Cycles > 1 {
				printStep("cycle %d/%d", i, opts.Cycles)
			}
			m.SetActive(true)

			select {
			case rec := <-profiles:
				if err := writeRecord(stdout, opts.Format, rec); err != nil {
					return fmt.Errorf("writing profile: %w", err)
				}
			case <-gCtx.Done():
				return gCtx.Err()
			}

			// Let the result stay on screen until the cycle resets to idle.
			if err := m.Wait(gCtx); err != nil {
				return err
			}
			m.SetActive(false)
		}
		return nil
	})

	err := g.Wait()
	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		printWarning("analysis interrupted")
		return nil
	}
	return err
}
