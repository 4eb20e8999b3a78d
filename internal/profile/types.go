package profile

// CommunicationProfile describes how to talk to the user right now, derived
// from one biorhythm snapshot. It is never modified after Generate returns.
type CommunicationProfile struct {
	PreferredTone   string   `json:"preferred_tone" yaml:"preferred_tone"`
	OptimalTiming   string   `json:"optimal_timing" yaml:"optimal_timing"`
	EnergyLevel     float64  `json:"energy_level" yaml:"energy_level"`
	FocusCapacity   float64  `json:"focus_capacity" yaml:"focus_capacity"`
	SocialReadiness float64  `json:"social_readiness" yaml:"social_readiness"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}

// Clone returns a copy that shares no slices with p.
func (p CommunicationProfile) Clone() CommunicationProfile {
	out := p
	if p.Recommendations != nil {
		out.Recommendations = make([]string, len(p.Recommendations))
		copy(out.Recommendations, p.Recommendations)
	}
	return out
}

// Tones.
const (
	ToneGentle     = "gentle and reassuring"
	ToneEnergetic  = "energetic and enthusiastic"
	ToneAnalytical = "detailed and analytical"
	ToneCalm       = "calm and soothing"
	ToneBalanced   = "balanced"
)

// Timing assessments.
const (
	TimingOptimal    = "optimal - high alertness detected"
	TimingModerate   = "moderate - proceed with awareness"
	TimingSuboptimal = "suboptimal - consider rescheduling"
)

// MaxRecommendations caps the recommendation list.
const MaxRecommendations = 4
