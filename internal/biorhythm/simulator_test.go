package biorhythm

import (
	"math"
	"testing"
)

// fixedSource replays values in order and repeats the last one.
type fixedSource struct {
	values []float64
	pos    int
}

func (f *fixedSource) Float64() float64 {
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.pos]
	if f.pos < len(f.values)-1 {
		f.pos++
	}
	return v
}

func TestCircadian_Range(t *testing.T) {
	for h := 0; h < 24; h++ {
		c := Circadian(h)
		if c < 0 || c > 100 {
			t.Errorf("Circadian(%d) = %v, want within [0,100]", h, c)
		}
	}
}

func TestCircadian_Peaks(t *testing.T) {
	if got := Circadian(10); got != 100 {
		t.Errorf("Circadian(10) = %v, want 100", got)
	}
	if got := Circadian(18); got != 80 {
		t.Errorf("Circadian(18) = %v, want 80", got)
	}
	for _, peak := range []int{10, 18} {
		if Circadian(peak-1) >= Circadian(peak) || Circadian(peak+1) >= Circadian(peak) {
			t.Errorf("hour %d is not a local maximum: %v %v %v",
				peak, Circadian(peak-1), Circadian(peak), Circadian(peak+1))
		}
	}
}

func TestCircadian_Values(t *testing.T) {
	tests := []struct {
		hour int
		want float64
	}{
		{0, 20},
		{3, 44},
		{8, 84},
		{11, 92},
		{14, 68},
		{15, 62},
		{16, 68},
		{21, 62},
		{23, 50},
	}
	for _, tt := range tests {
		if got := Circadian(tt.hour); got != tt.want {
			t.Errorf("Circadian(%d) = %v, want %v", tt.hour, got, tt.want)
		}
	}
}

func TestRamp(t *testing.T) {
	tests := []struct {
		step, steps int
		want        float64
	}{
		{0, 51, 0},
		{1, 51, 2},
		{25, 51, 50},
		{50, 51, 100},
		{60, 51, 100},
		{0, 1, 100},
	}
	for _, tt := range tests {
		if got := Ramp(tt.step, tt.steps); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Ramp(%d, %d) = %v, want %v", tt.step, tt.steps, got, tt.want)
		}
	}
}

func TestSample_FinalStep(t *testing.T) {
	src := &fixedSource{values: []float64{0.5, 0.25, 1, 0.5, 0.9}}
	sim := NewSimulator(src)

	got := sim.Sample(50, 51, 10)

	want := Snapshot{
		Physical:     85,
		Emotional:    70,
		Intellectual: 100,
		Circadian:    100,
		HeartRate:    80,
		StressLevel:  90,
	}
	if got != want {
		t.Errorf("Sample = %+v, want %+v", got, want)
	}
}

func TestSample_RampCapsPercentages(t *testing.T) {
	src := &fixedSource{values: []float64{0.99}}
	sim := NewSimulator(src)

	got := sim.Sample(5, 51, 10)

	for name, v := range map[string]float64{
		"physical":     got.Physical,
		"emotional":    got.Emotional,
		"intellectual": got.Intellectual,
		"circadian":    got.Circadian,
	} {
		if v != 10 {
			t.Errorf("%s = %v, want ramp ceiling 10", name, v)
		}
	}
	if got.HeartRate < 99 {
		t.Errorf("HeartRate = %v, heart rate must not be ramped", got.HeartRate)
	}
	if got.StressLevel < 98 {
		t.Errorf("StressLevel = %v, stress must not be ramped", got.StressLevel)
	}
}

func TestSample_Bounds(t *testing.T) {
	sim := NewSimulator(nil)
	for step := 0; step < 51; step++ {
		s := sim.Sample(step, 51, step%24)
		for _, v := range []float64{s.Physical, s.Emotional, s.Intellectual, s.Circadian, s.StressLevel} {
			if v < 0 || v > 100 {
				t.Fatalf("step %d: value %v out of [0,100] in %+v", step, v, s)
			}
		}
		if s.HeartRate < 60 || s.HeartRate > 100 {
			t.Fatalf("step %d: heart rate %v out of [60,100]", step, s.HeartRate)
		}
	}
}
