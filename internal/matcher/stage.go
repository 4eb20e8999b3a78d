package matcher

import (
	"time"

	"github.com/kalambet/biomatch/internal/biorhythm"
	"github.com/kalambet/biomatch/internal/profile"
	"github.com/kalambet/biomatch/internal/waveform"
)

// Stage is one phase of an analysis cycle.
type Stage int

const (
	StageIdle Stage = iota
	StageInitializing
	StageScanning
	StageAnalyzing
	StageComplete
)

var stageNames = [...]string{
	StageIdle:         "idle",
	StageInitializing: "initializing",
	StageScanning:     "scanning",
	StageAnalyzing:    "analyzing",
	StageComplete:     "complete",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// Timings controls how long each stage lasts.
type Timings struct {
	Initialize time.Duration // initializing -> scanning
	ScanStep   time.Duration // pause after each scan step
	ScanSteps  int           // number of snapshots taken while scanning
	Analyze    time.Duration // analyzing -> complete
	Reset      time.Duration // complete -> idle

	SampleInterval   time.Duration // waveform sampling period while analyzing
	WaveformCapacity int
}

// DefaultTimings returns the standard cycle: 1s warm-up, 51 scan steps
// 50ms apart, 2s of analysis sampled every 100ms, and a 5s result display.
func DefaultTimings() Timings {
	return Timings{
		Initialize:       time.Second,
		ScanStep:         50 * time.Millisecond,
		ScanSteps:        51,
		Analyze:          2 * time.Second,
		Reset:            5 * time.Second,
		SampleInterval:   100 * time.Millisecond,
		WaveformCapacity: waveform.DefaultCapacity,
	}
}

func (t Timings) withDefaults() Timings {
	d := DefaultTimings()
	if t.ScanSteps <= 0 {
		t.ScanSteps = d.ScanSteps
	}
	if t.SampleInterval <= 0 {
		t.SampleInterval = d.SampleInterval
	}
	if t.WaveformCapacity <= 0 {
		t.WaveformCapacity = d.WaveformCapacity
	}
	return t
}

// State is a point-in-time copy of a Matcher, suitable for rendering.
type State struct {
	Active   bool
	Stage    Stage
	CycleID  string
	Metrics  biorhythm.Snapshot
	Profile  *profile.CommunicationProfile
	Waveform []float64
}
