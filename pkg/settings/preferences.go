// Package settings holds the user preferences that gate automated
// actions, the checks run before a campaign is processed, and the
// stores that persist preferences between runs.
package settings

import (
	"errors"
	"strings"
)

// DefaultTextInputSentence is sent for free-text questions when
// the user has not configured a sentence.
const DefaultTextInputSentence = "I'm sorry, I don't understand what I should write here."

// Preferences is the persisted user configuration.
type Preferences struct {
	// TwitterUsername is sent as the form value of Twitter
	// entries.
	TwitterUsername string `json:"twitter_username" yaml:"twitter_username"`

	// TotalEntries accumulates the worth of accepted entries
	// across runs.
	TotalEntries int `json:"total_entries" yaml:"total_entries"`

	AutoFollowTwitter  bool `json:"auto_follow_twitter" yaml:"auto_follow_twitter"`
	AutoRetweet        bool `json:"auto_retweet" yaml:"auto_retweet"`
	AutoTweet          bool `json:"auto_tweet" yaml:"auto_tweet"`
	AutoTweetShare     bool `json:"auto_tweet_share" yaml:"auto_tweet_share"`
	AutoFollowTwitch   bool `json:"auto_follow_twitch" yaml:"auto_follow_twitch"`
	AutoEmailSubscribe bool `json:"auto_email_subscribe" yaml:"auto_email_subscribe"`

	// TextInputSentence answers free-text and unanswerable
	// questions.
	TextInputSentence string `json:"text_input_sentence" yaml:"text_input_sentence"`

	// DisplayDevMessages forwards classifier diagnostics to the
	// notification stream.
	DisplayDevMessages bool `json:"display_dev_messages" yaml:"display_dev_messages"`
}

// DefaultPreferences returns preferences with every automation
// disabled.
func DefaultPreferences() Preferences {
	return Preferences{
		TextInputSentence: DefaultTextInputSentence,
	}
}

// TwitterAutomation reports whether any Twitter intent action is
// enabled.
func (p Preferences) TwitterAutomation() bool {
	return p.AutoFollowTwitter || p.AutoRetweet || p.AutoTweet
}

// Pre-run refusals.
var (
	ErrTwitterUsernameRequired = errors.New(
		"a Twitter automation is enabled but no Twitter username is set",
	)
	ErrTwitterNotLinked = errors.New(
		"a Twitter automation is enabled but no Twitter account is linked to the platform",
	)
	ErrTwitchNotLinked = errors.New(
		"automatic Twitch following is enabled but no Twitch account is linked to the platform",
	)
)

// Preflight checks the preferences against the linked providers
// before a run. It returns an error when the run must not start
// and warnings the user should see either way. linked reports
// whether a provider has any authentication, expired or not.
func (p Preferences) Preflight(
	linked func(provider string) bool,
) (warnings []string, err error) {
	if p.TwitterAutomation() && strings.TrimSpace(p.TwitterUsername) == "" {
		return nil, ErrTwitterUsernameRequired
	}
	if p.TextInputSentence == "" {
		warnings = append(warnings,
			`no default "text input" sentence is set`)
	}
	if p.TwitterAutomation() && !linked(ProviderTwitter) {
		return warnings, ErrTwitterNotLinked
	}
	if p.AutoFollowTwitch && !linked(ProviderTwitch) {
		return warnings, ErrTwitchNotLinked
	}
	return warnings, nil
}

// Provider names used by the platform.
const (
	ProviderTwitter = "twitter"
	ProviderTwitch  = "twitchtv"
)
