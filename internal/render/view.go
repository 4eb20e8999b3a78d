// Package render turns matcher state into something a person can look at:
// a text frame for terminals and an SVG polyline for the live waveform.
package render

import (
	"github.com/kalambet/biomatch/internal/matcher"
	"github.com/kalambet/biomatch/internal/profile"
)

// MetricLine is one row of the metrics panel.
type MetricLine struct {
	Label string
	Icon  string
	Value float64
	Unit  string // "%" for bar metrics, "BPM" for heart rate
	Bar   bool
}

// View is what should be on screen for a given state.
type View struct {
	Visible      bool
	ShowMetrics  bool
	ShowWaveform bool
	ShowProfile  bool

	Stage    matcher.Stage
	Metrics  []MetricLine
	Waveform []float64
	Profile  *profile.CommunicationProfile
}

// NewView applies the visibility rules to st. hour selects the sun or moon
// icon for the circadian row.
func NewView(st matcher.State, hour int) View {
	v := View{
		Visible: st.Active,
		Stage:   st.Stage,
	}
	if !v.Visible {
		return v
	}

	v.ShowMetrics = st.Stage != matcher.StageIdle
	v.ShowWaveform = st.Stage == matcher.StageAnalyzing
	v.ShowProfile = st.Stage == matcher.StageComplete && st.Profile != nil

	if v.ShowMetrics {
		circadianIcon := "☀"
		if hour >= 18 {
			circadianIcon = "☾"
		}
		m := st.Metrics
		v.Metrics = []MetricLine{
			{Label: "Physical", Icon: "♥", Value: m.Physical, Unit: "%", Bar: true},
			{Label: "Emotional", Icon: "≈", Value: m.Emotional, Unit: "%", Bar: true},
			{Label: "Intellectual", Icon: "✦", Value: m.Intellectual, Unit: "%", Bar: true},
			{Label: "Circadian", Icon: circadianIcon, Value: m.Circadian, Unit: "%", Bar: true},
			{Label: "Heart Rate", Icon: "∿", Value: m.HeartRate, Unit: "BPM"},
			{Label: "Stress Level", Icon: "⚡", Value: m.StressLevel, Unit: "%", Bar: true},
		}
	}
	if v.ShowWaveform {
		v.Waveform = st.Waveform
	}
	if v.ShowProfile {
		v.Profile = st.Profile
	}
	return v
}
