package biorhythm

import (
	"math"
	"math/rand/v2"
)

// Circadian returns the alertness estimate for an hour of the day.
// The curve peaks at 100 around 10:00 and at 80 around 18:00.
func Circadian(hour int) float64 {
	morning := math.Max(0, 100-math.Abs(float64(hour-10))*8)
	evening := math.Max(0, 80-math.Abs(float64(hour-18))*6)
	return math.Max(morning, evening)
}

// Simulator produces synthetic snapshots for the scanning stage.
type Simulator struct {
	src Source
}

// NewSimulator creates a Simulator drawing from src. A nil src uses the
// global math/rand/v2 generator.
func NewSimulator(src Source) *Simulator {
	if src == nil {
		src = globalSource{}
	}
	return &Simulator{src: src}
}

// Sample returns the reading for scan step (0-based) out of steps total.
// Percentage metrics are capped by a ramp that climbs linearly from 0 to
// 100 across the scan, so the readings fill in as the scan progresses.
func (s *Simulator) Sample(step, steps, hour int) Snapshot {
	ramp := Ramp(step, steps)
	return Snapshot{
		Physical:     math.Min(ramp, 70+s.src.Float64()*30),
		Emotional:    math.Min(ramp, 60+s.src.Float64()*40),
		Intellectual: math.Min(ramp, 80+s.src.Float64()*20),
		Circadian:    math.Min(ramp, Circadian(hour)),
		HeartRate:    60 + s.src.Float64()*40,
		StressLevel:  s.src.Float64() * 100,
	}
}

// Ramp is the progress ceiling for a scan step: 0 on the first step and
// 100 on the last.
func Ramp(step, steps int) float64 {
	if steps <= 1 {
		return 100
	}
	if step <= 0 {
		return 0
	}
	if step >= steps-1 {
		return 100
	}
	return 100 * float64(step) / float64(steps-1)
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
