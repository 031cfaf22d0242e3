package workflow

import (
	"sort"

	"digital.vasic.sweepbot/pkg/settings"
)

// Filler builds the form value the platform expects for entries
// of one provider.
type Filler func(prefs settings.Preferences) any

// FillerRegistry maps a provider to its filler.
type FillerRegistry map[string]Filler

// DefaultFillers returns the built-in fillers.
func DefaultFillers() FillerRegistry {
	return FillerRegistry{
		settings.ProviderTwitter: func(p settings.Preferences) any {
			return map[string]any{"twitter_username": p.TwitterUsername}
		},
	}
}

// Register adds or replaces the filler of provider.
func (r FillerRegistry) Register(provider string, f Filler) {
	r[provider] = f
}

// Fill returns the value for provider.
func (r FillerRegistry) Fill(
	provider string,
	prefs settings.Preferences,
) (any, bool) {
	f, ok := r[provider]
	if !ok {
		return nil, false
	}
	return f(prefs), true
}

// Providers returns the registered providers, sorted.
func (r FillerRegistry) Providers() []string {
	out := make([]string, 0, len(r))
	for p := range r {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
