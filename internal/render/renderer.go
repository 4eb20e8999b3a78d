package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

const barWidth = 20

// Renderer writes text frames.
type Renderer struct {
	w     io.Writer
	color bool
	title cases.Caser
}

// NewRenderer creates a Renderer writing to w, with ANSI colour if color
// is set.
func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{
		w:     w,
		color: color,
		title: cases.Title(language.English),
	}
}

func (r *Renderer) colorize(color, text string) string {
	if !r.color {
		return text
	}
	return color + text + colorReset
}

// Draw writes one frame for v. Invisible views produce no output.
func (r *Renderer) Draw(v View) error {
	if !v.Visible {
		return nil
	}
	var sb strings.Builder

	sb.WriteString(r.colorize(colorBold, "Bio-Rhythmic Communication Matcher") + "\n")
	sb.WriteString(r.colorize(colorGreen, "Analyzing biological patterns for optimal communication") + "\n")

	if v.ShowMetrics {
		sb.WriteString("\n")
		for _, m := range v.Metrics {
			sb.WriteString(r.metricLine(m))
		}
	}

	if v.ShowWaveform {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%s  %s\n", r.colorize(colorGreen, "Live Bio-Signal"), r.colorize(colorGreen, "● Recording"))
		fmt.Fprintf(&sb, "  %s\n", r.colorize(colorCyan, Sparkline(v.Waveform, WaveWidth/7)))
	}

	if v.ShowProfile {
		p := v.Profile
		sb.WriteString("\n")
		sb.WriteString(r.colorize(colorBold, "Optimal Communication Profile") + "\n")
		fmt.Fprintf(&sb, "  %-19s %s\n", r.colorize(colorBlue, "Preferred Tone:"), r.title.String(p.PreferredTone))
		fmt.Fprintf(&sb, "  %-19s %s\n", r.colorize(colorBlue, "Timing Assessment:"), p.OptimalTiming)
		fmt.Fprintf(&sb, "  %s %s   %s %s   %s %s\n",
			r.colorize(colorGreen, percent(p.EnergyLevel)), "Energy",
			r.colorize(colorBlue, percent(p.FocusCapacity)), "Focus",
			r.colorize(colorCyan, percent(p.SocialReadiness)), "Social",
		)
		if len(p.Recommendations) > 0 {
			sb.WriteString("  " + r.colorize(colorBlue, "Personalized Recommendations:") + "\n")
			for _, rec := range p.Recommendations {
				fmt.Fprintf(&sb, "    %s\n", rec)
			}
		}
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s Bio-rhythmic analysis %s\n", r.colorize(colorGreen, "●"), v.Stage)

	_, err := io.WriteString(r.w, sb.String())
	return err
}

func (r *Renderer) metricLine(m MetricLine) string {
	if !m.Bar {
		return fmt.Sprintf("  %s %-13s %s\n", m.Icon, m.Label, r.colorize(colorGreen, fmt.Sprintf("%.0f %s", m.Value, m.Unit)))
	}
	valueColor := colorGreen
	if m.Label == "Stress Level" {
		valueColor = colorYellow
		if m.Value > 70 {
			valueColor = colorRed
		}
	}
	return fmt.Sprintf("  %s %-13s %s %s\n", m.Icon, m.Label, bar(m.Value), r.colorize(valueColor, percent(m.Value)))
}

// bar draws a fixed-width progress bar for a value in [0,100].
func bar(v float64) string {
	filled := int(math.Round(math.Max(0, math.Min(100, v)) / 100 * barWidth))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}
