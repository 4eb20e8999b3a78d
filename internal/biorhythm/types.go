package biorhythm

// Snapshot is one instant's set of simulated biological readings.
// All fields are percentages in [0,100] except HeartRate, which is in BPM.
type Snapshot struct {
	Physical     float64 `json:"physical" yaml:"physical"`
	Emotional    float64 `json:"emotional" yaml:"emotional"`
	Intellectual float64 `json:"intellectual" yaml:"intellectual"`
	Circadian    float64 `json:"circadian" yaml:"circadian"`
	HeartRate    float64 `json:"heart_rate" yaml:"heart_rate"`
	StressLevel  float64 `json:"stress_level" yaml:"stress_level"`
}

// Source yields uniformly distributed values in [0,1).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}
