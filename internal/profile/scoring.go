package profile

import "github.com/kalambet/biomatch/internal/biorhythm"

// Generate derives a CommunicationProfile from a snapshot and the hour of
// day (0-23). It is a pure function.
func Generate(bio biorhythm.Snapshot, hour int) CommunicationProfile {
	return CommunicationProfile{
		PreferredTone:   Tone(bio, hour),
		OptimalTiming:   Timing(bio.Circadian),
		EnergyLevel:     (bio.Physical + bio.Circadian) / 2,
		FocusCapacity:   bio.Intellectual,
		SocialReadiness: bio.Emotional,
		Recommendations: Recommendations(bio, hour),
	}
}

// Tone picks the preferred communication tone. Rules are checked in
// priority order and the first match wins.
func Tone(bio biorhythm.Snapshot, hour int) string {
	switch {
	case bio.StressLevel > 70:
		return ToneGentle
	case bio.Physical > 80 && bio.Emotional > 70:
		return ToneEnergetic
	case bio.Intellectual > 85:
		return ToneAnalytical
	case hour < 9 || hour > 21:
		return ToneCalm
	default:
		return ToneBalanced
	}
}

// Timing assesses how good a moment it is to communicate.
func Timing(circadian float64) string {
	switch {
	case circadian > 80:
		return TimingOptimal
	case circadian < 40:
		return TimingSuboptimal
	default:
		return TimingModerate
	}
}

type recommendationRule struct {
	match func(bio biorhythm.Snapshot, hour int) bool
	tips  [2]string
}

// rules are evaluated in order; the morning and evening rules are mutually
// exclusive by construction.
var rules = []recommendationRule{
	{
		match: func(b biorhythm.Snapshot, _ int) bool { return b.StressLevel > 60 },
		tips:  [2]string{"🧘 Start with calming breathing exercises", "💙 Use supportive and patient language"},
	},
	{
		match: func(b biorhythm.Snapshot, _ int) bool { return b.Intellectual > 80 },
		tips:  [2]string{"🧠 Engage with complex topics and details", "📊 Provide comprehensive information"},
	},
	{
		match: func(b biorhythm.Snapshot, _ int) bool { return b.Physical < 50 },
		tips:  [2]string{"⚡ Keep interactions brief and focused", "🎯 Prioritize essential communication only"},
	},
	{
		match: func(b biorhythm.Snapshot, _ int) bool { return b.Emotional > 75 },
		tips:  [2]string{"💝 Emphasize emotional connection and empathy", "🤝 Focus on collaborative approaches"},
	},
	{
		match: func(_ biorhythm.Snapshot, h int) bool { return h < 9 },
		tips:  [2]string{"🌅 Use gentle morning greetings", "☕ Allow time for mental activation"},
	},
	{
		match: func(_ biorhythm.Snapshot, h int) bool { return h > 20 },
		tips:  [2]string{"🌙 Keep conversations calm and brief", "😴 Avoid overly stimulating content"},
	},
	{
		match: func(b biorhythm.Snapshot, _ int) bool { return b.Circadian > 85 },
		tips:  [2]string{"🚀 Perfect time for important discussions", "⭐ Utilize peak cognitive performance"},
	},
}

// Recommendations returns up to MaxRecommendations tips in rule order.
func Recommendations(bio biorhythm.Snapshot, hour int) []string {
	recs := make([]string, 0, MaxRecommendations)
	for _, r := range rules {
		if !r.match(bio, hour) {
			continue
		}
		for _, tip := range r.tips {
			if len(recs) == MaxRecommendations {
				return recs
			}
			recs = append(recs, tip)
		}
	}
	return recs
}
