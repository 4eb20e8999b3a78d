package matcher

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/kalambet/biomatch/internal/biorhythm"
	"github.com/kalambet/biomatch/internal/profile"
	"github.com/kalambet/biomatch/internal/waveform"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

type recorder struct {
	mu       sync.Mutex
	states   []State
	profiles []profile.CommunicationProfile
}

func (r *recorder) onChange(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) onProfile(p profile.CommunicationProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = append(r.profiles, p)
}

// stages returns the observed stage sequence with consecutive duplicates removed.
func (r *recorder) stages() []Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Stage
	for _, s := range r.states {
		if len(out) > 0 && out[len(out)-1] == s.Stage {
			continue
		}
		out = append(out, s.Stage)
	}
	return out
}

func (r *recorder) profileCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.profiles)
}

var elevenAM = time.Date(2026, 10, 17, 11, 0, 0, 0, time.Local)

func fastTimings() Timings {
	return Timings{
		Initialize:       time.Millisecond,
		ScanStep:         100 * time.Microsecond,
		ScanSteps:        51,
		Analyze:          20 * time.Millisecond,
		Reset:            5 * time.Millisecond,
		SampleInterval:   time.Millisecond,
		WaveformCapacity: waveform.DefaultCapacity,
	}
}

func newTestMatcher(t *testing.T, timings Timings, rec *recorder) *Matcher {
	t.Helper()
	m := New(Options{
		Timings:   timings,
		Clock:     fixedClock{t: elevenAM},
		Source:    constSource(0.5),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnProfile: rec.onProfile,
		OnChange:  rec.onChange,
	})
	t.Cleanup(m.Close)
	return m
}

func waitCycle(t *testing.T, m *Matcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestMatcher_FullCycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := &recorder{}
	m := newTestMatcher(t, fastTimings(), rec)

	m.SetActive(true)
	waitCycle(t, m)

	want := []Stage{StageInitializing, StageScanning, StageAnalyzing, StageComplete, StageIdle}
	if got := rec.stages(); !reflect.DeepEqual(got, want) {
		t.Errorf("stages = %v, want %v", got, want)
	}

	if n := rec.profileCount(); n != 1 {
		t.Fatalf("OnProfile called %d times, want 1", n)
	}
	got := rec.profiles[0]
	wantProfile := profile.CommunicationProfile{
		PreferredTone:   profile.ToneEnergetic,
		OptimalTiming:   profile.TimingOptimal,
		EnergyLevel:     88.5,
		FocusCapacity:   90,
		SocialReadiness: 80,
		Recommendations: []string{
			"🧠 Engage with complex topics and details",
			"📊 Provide comprehensive information",
			"💝 Emphasize emotional connection and empathy",
			"🤝 Focus on collaborative approaches",
		},
	}
	if !reflect.DeepEqual(got, wantProfile) {
		t.Errorf("profile = %+v, want %+v", got, wantProfile)
	}

	st := m.State()
	if !st.Active {
		t.Error("matcher should stay active after the cycle returns to idle")
	}
	if st.Stage != StageIdle || st.Profile != nil || len(st.Waveform) != 0 {
		t.Errorf("after reset: stage=%v profile=%v waveform=%d", st.Stage, st.Profile, len(st.Waveform))
	}
	wantMetrics := biorhythm.Snapshot{
		Physical: 85, Emotional: 80, Intellectual: 90, Circadian: 92, HeartRate: 80, StressLevel: 50,
	}
	if st.Metrics != wantMetrics {
		t.Errorf("metrics after reset = %+v, want last scan %+v", st.Metrics, wantMetrics)
	}
}

func TestMatcher_CompleteStateCarriesProfile(t *testing.T) {
	rec := &recorder{}
	m := newTestMatcher(t, fastTimings(), rec)

	m.SetActive(true)
	waitCycle(t, m)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	var seen bool
	for _, s := range rec.states {
		if s.Profile != nil && s.Stage != StageComplete {
			t.Errorf("profile present in stage %v", s.Stage)
		}
		if s.Stage == StageComplete {
			seen = true
			if s.Profile == nil {
				t.Error("complete state without profile")
			}
		}
	}
	if !seen {
		t.Error("never observed complete stage")
	}
}

func TestMatcher_DeactivateDuringScanning(t *testing.T) {
	defer goleak.VerifyNone(t)

	timings := fastTimings()
	timings.ScanStep = 5 * time.Millisecond

	scanning := make(chan struct{}, 1)
	rec := &recorder{}
	m := New(Options{
		Timings:   timings,
		Clock:     fixedClock{t: elevenAM},
		Source:    constSource(0.5),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnProfile: rec.onProfile,
		OnChange: func(s State) {
			rec.onChange(s)
			if s.Stage == StageScanning {
				select {
				case scanning <- struct{}{}:
				default:
				}
			}
		},
	})
	defer m.Close()

	m.SetActive(true)
	select {
	case <-scanning:
	case <-time.After(5 * time.Second):
		t.Fatal("never reached scanning")
	}
	m.SetActive(false)
	waitCycle(t, m)

	if n := rec.profileCount(); n != 0 {
		t.Errorf("OnProfile called %d times after deactivation, want 0", n)
	}
	st := m.State()
	if st.Active || st.Stage != StageIdle || st.CycleID != "" {
		t.Errorf("state after deactivation = %+v", st)
	}
	if st.Metrics != (biorhythm.Snapshot{}) {
		t.Errorf("metrics not discarded: %+v", st.Metrics)
	}

	stages := rec.stages()
	if last := stages[len(stages)-1]; last != StageIdle {
		t.Errorf("last observed stage = %v, want idle", last)
	}
	for _, s := range stages {
		if s == StageAnalyzing || s == StageComplete {
			t.Errorf("cancelled cycle reached %v", s)
		}
	}
}

func TestMatcher_RedundantActivationIgnored(t *testing.T) {
	rec := &recorder{}
	m := newTestMatcher(t, fastTimings(), rec)

	m.SetActive(true)
	id := m.State().CycleID
	if id == "" {
		t.Fatal("cycle ID not assigned on activation")
	}
	m.SetActive(true)
	if got := m.State().CycleID; got != id {
		t.Errorf("redundant activation restarted cycle: %s -> %s", id, got)
	}
	waitCycle(t, m)

	if n := rec.profileCount(); n != 1 {
		t.Errorf("OnProfile called %d times, want 1", n)
	}
}

func TestMatcher_Reactivation(t *testing.T) {
	rec := &recorder{}
	m := newTestMatcher(t, fastTimings(), rec)

	m.SetActive(true)
	first := m.State().CycleID
	waitCycle(t, m)

	m.SetActive(false)
	m.SetActive(true)
	second := m.State().CycleID
	waitCycle(t, m)

	if first == second {
		t.Errorf("reactivation reused cycle ID %s", first)
	}
	if n := rec.profileCount(); n != 2 {
		t.Errorf("OnProfile called %d times, want 2", n)
	}
}

func TestMatcher_WaveformOnlyWhileAnalyzing(t *testing.T) {
	timings := fastTimings()
	timings.WaveformCapacity = 5
	timings.Analyze = 30 * time.Millisecond

	rec := &recorder{}
	m := newTestMatcher(t, timings, rec)

	m.SetActive(true)
	waitCycle(t, m)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	want := waveform.Sample(elevenAM)
	var sampled bool
	for _, s := range rec.states {
		if len(s.Waveform) > timings.WaveformCapacity {
			t.Fatalf("waveform length %d exceeds capacity %d", len(s.Waveform), timings.WaveformCapacity)
		}
		if len(s.Waveform) == 0 {
			continue
		}
		if s.Stage != StageAnalyzing && s.Stage != StageComplete {
			t.Errorf("waveform samples present in stage %v", s.Stage)
		}
		if s.Stage == StageAnalyzing {
			sampled = true
		}
		for _, v := range s.Waveform {
			if v != want {
				t.Fatalf("sample = %v, want %v from the fixed clock", v, want)
			}
		}
	}
	if !sampled {
		t.Error("no waveform samples recorded while analyzing")
	}
	if last := rec.states[len(rec.states)-1]; len(last.Waveform) != 0 {
		t.Errorf("waveform not cleared on reset: %d samples", len(last.Waveform))
	}
}

func TestMatcher_StaleWritesDropped(t *testing.T) {
	rec := &recorder{}
	m := newTestMatcher(t, Timings{Initialize: time.Hour}, rec)

	m.SetActive(true)
	m.mu.Lock()
	stale := m.gen
	m.mu.Unlock()
	m.SetActive(false)

	called := false
	if m.update(stale, func() { called = true }) {
		t.Error("update with stale generation reported success")
	}
	if called {
		t.Error("stale write was applied")
	}
	if m.live(stale) {
		t.Error("stale generation reported live")
	}
}

func TestMatcher_CloseCancelsPendingTimers(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := New(Options{
		Timings: Timings{Initialize: time.Hour, Reset: time.Hour},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	m.SetActive(true)
	if got := m.State().Stage; got != StageInitializing {
		t.Fatalf("stage = %v, want initializing", got)
	}

	done := make(chan struct{})
	go func() {
		m.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return; stage timer not cancelled")
	}
}

func TestMatcher_WaitWithoutActivation(t *testing.T) {
	m := New(Options{})
	if err := m.Wait(context.Background()); err != nil {
		t.Errorf("Wait on fresh matcher = %v, want nil", err)
	}
	if st := m.State(); st.Active || st.Stage != StageIdle {
		t.Errorf("fresh state = %+v", st)
	}
}

func TestMatcher_WaitHonoursContext(t *testing.T) {
	m := New(Options{
		Timings: Timings{Initialize: time.Hour},
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	defer m.Close()
	m.SetActive(true)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := m.Wait(ctx); err != context.DeadlineExceeded {
		t.Errorf("Wait = %v, want %v", err, context.DeadlineExceeded)
	}
}

func TestStage_String(t *testing.T) {
	tests := map[Stage]string{
		StageIdle:         "idle",
		StageInitializing: "initializing",
		StageScanning:     "scanning",
		StageAnalyzing:    "analyzing",
		StageComplete:     "complete",
		Stage(42):         "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Stage(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}

func TestDefaultTimings(t *testing.T) {
	d := DefaultTimings()
	if d.Initialize != time.Second || d.ScanStep != 50*time.Millisecond || d.ScanSteps != 51 ||
		d.Analyze != 2*time.Second || d.Reset != 5*time.Second ||
		d.SampleInterval != 100*time.Millisecond || d.WaveformCapacity != 50 {
		t.Errorf("DefaultTimings = %+v", d)
	}
}
