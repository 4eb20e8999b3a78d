// Package matcher drives the bio-rhythm analysis cycle: a timer-driven
// state machine that simulates readings, samples the live waveform and
// emits one communication profile per completed cycle.
package matcher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kalambet/biomatch/internal/biorhythm"
	"github.com/kalambet/biomatch/internal/profile"
	"github.com/kalambet/biomatch/internal/waveform"
)

// Clock abstracts wall-clock time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Options configures a Matcher. The zero value is usable.
type Options struct {
	// Timings defaults to DefaultTimings when left zero.
	Timings Timings
	Clock   Clock
	Source  biorhythm.Source
	Logger  *slog.Logger

	// OnProfile receives the profile of every completed cycle, exactly once
	// per cycle, on the driver goroutine.
	OnProfile func(profile.CommunicationProfile)

	// OnChange is called after every state change. Calls are serialized.
	// It must not call SetActive or Close.
	OnChange func(State)
}

// Matcher runs one analysis cycle per activation. It is safe for
// concurrent use.
type Matcher struct {
	timings   Timings
	clock     Clock
	sim       *biorhythm.Simulator
	logger    *slog.Logger
	onProfile func(profile.CommunicationProfile)
	onChange  func(State)

	// notifyMu orders OnChange calls with the state writes that caused them.
	notifyMu sync.Mutex

	mu      sync.Mutex
	active  bool
	gen     uint64
	cancel  context.CancelFunc
	done    chan struct{}
	stage   Stage
	cycleID string
	metrics biorhythm.Snapshot
	profile *profile.CommunicationProfile
	wave    *waveform.Buffer
}

// New creates an idle, inactive Matcher.
func New(opts Options) *Matcher {
	t := opts.Timings
	if t == (Timings{}) {
		t = DefaultTimings()
	}
	t = t.withDefaults()

	clock := opts.Clock
	if clock == nil {
		clock = realClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Matcher{
		timings:   t,
		clock:     clock,
		sim:       biorhythm.NewSimulator(opts.Source),
		logger:    logger,
		onProfile: opts.OnProfile,
		onChange:  opts.OnChange,
		wave:      waveform.NewBuffer(t.WaveformCapacity),
	}
}

// SetActive feeds the activation flag. A false->true transition starts a
// new cycle; repeating the current value does nothing. Deactivating
// cancels any pending stage transition and discards all cycle state.
func (m *Matcher) SetActive(active bool) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	if active == m.active {
		m.mu.Unlock()
		return
	}
	m.active = active
	m.gen++
	gen := m.gen

	prevCancel := m.cancel
	m.cancel = nil
	m.resetLocked()

	var (
		ctx  context.Context
		done chan struct{}
	)
	if active {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(context.Background())
		m.cancel = cancel
		done = make(chan struct{})
		m.done = done
		m.cycleID = uuid.NewString()
		m.stage = StageInitializing
	}
	cycleID := m.cycleID
	st := m.stateLocked()
	m.mu.Unlock()

	if prevCancel != nil {
		prevCancel()
	}
	if active {
		m.logger.Info("bio-rhythm analysis started", "cycle_id", cycleID)
		go m.drive(ctx, gen, cycleID, done)
	} else {
		m.logger.Debug("bio-rhythm matcher deactivated")
	}
	m.notify(st)
}

// State returns a copy of the current state.
func (m *Matcher) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

// Wait blocks until the most recent cycle's driver has exited, either
// because the cycle returned to idle or because it was cancelled.
func (m *Matcher) Wait(ctx context.Context) error {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close deactivates the matcher and waits for its driver to exit. It must
// not be called from OnProfile or OnChange.
func (m *Matcher) Close() {
	m.SetActive(false)
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (m *Matcher) drive(ctx context.Context, gen uint64, cycleID string, done chan struct{}) {
	defer close(done)
	log := m.logger.With("cycle_id", cycleID)
	t := m.timings

	if !sleep(ctx, t.Initialize) {
		log.Debug("cycle cancelled", "stage", StageInitializing)
		return
	}
	if !m.update(gen, func() { m.stage = StageScanning }) {
		return
	}
	log.Debug("stage changed", "stage", StageScanning)

	for step := 0; step < t.ScanSteps; step++ {
		ok := m.update(gen, func() {
			m.metrics = m.sim.Sample(step, t.ScanSteps, m.clock.Now().Hour())
		})
		if !ok || !sleep(ctx, t.ScanStep) {
			log.Debug("cycle cancelled", "stage", StageScanning, "step", step)
			return
		}
	}

	if !m.update(gen, func() { m.stage = StageAnalyzing }) {
		return
	}
	log.Debug("stage changed", "stage", StageAnalyzing)
	if !m.analyze(ctx, gen) {
		log.Debug("cycle cancelled", "stage", StageAnalyzing)
		return
	}

	var result profile.CommunicationProfile
	ok := m.update(gen, func() {
		result = profile.Generate(m.metrics, m.clock.Now().Hour())
		stored := result.Clone()
		m.profile = &stored
		m.stage = StageComplete
	})
	if !ok {
		return
	}
	log.Info("communication profile generated",
		"tone", result.PreferredTone,
		"timing", result.OptimalTiming,
		"energy", result.EnergyLevel,
	)
	m.emit(gen, result)

	if !sleep(ctx, t.Reset) {
		log.Debug("cycle cancelled", "stage", StageComplete)
		return
	}
	if m.update(gen, func() {
		m.stage = StageIdle
		m.profile = nil
		m.wave.Reset()
	}) {
		log.Debug("stage changed", "stage", StageIdle)
	}
}

// analyze samples the waveform until the analysis period elapses.
// It returns false if the cycle was cancelled first.
func (m *Matcher) analyze(ctx context.Context, gen uint64) bool {
	ticker := time.NewTicker(m.timings.SampleInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(m.timings.Analyze)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-deadline.C:
			return true
		case <-ticker.C:
			if !m.update(gen, func() { m.wave.Push(waveform.Sample(m.clock.Now())) }) {
				return false
			}
		}
	}
}

// update applies fn if gen is still the live cycle and then notifies the
// observer. Writes from cancelled cycles are dropped.
func (m *Matcher) update(gen uint64, fn func()) bool {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return false
	}
	fn()
	st := m.stateLocked()
	m.mu.Unlock()

	m.notify(st)
	return true
}

func (m *Matcher) live(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return gen == m.gen
}

func (m *Matcher) emit(gen uint64, p profile.CommunicationProfile) {
	if m.onProfile == nil || !m.live(gen) {
		return
	}
	m.onProfile(p)
}

func (m *Matcher) notify(st State) {
	if m.onChange != nil {
		m.onChange(st)
	}
}

func (m *Matcher) resetLocked() {
	m.stage = StageIdle
	m.cycleID = ""
	m.metrics = biorhythm.Snapshot{}
	m.profile = nil
	m.wave.Reset()
}

func (m *Matcher) stateLocked() State {
	st := State{
		Active:   m.active,
		Stage:    m.stage,
		CycleID:  m.cycleID,
		Metrics:  m.metrics,
		Waveform: m.wave.Values(),
	}
	if m.profile != nil {
		p := m.profile.Clone()
		st.Profile = &p
	}
	return st
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
