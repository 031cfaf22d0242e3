package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.sweepbot/pkg/classifier"
)

func linkedTo(providers ...string) func(string) bool {
	set := make(map[string]bool)
	for _, p := range providers {
		set[p] = true
	}
	return func(p string) bool { return set[p] }
}

func TestPreferences_Preflight(t *testing.T) {
	tests := []struct {
		name     string
		prefs    Preferences
		linked   []string
		err      error
		warnings int
	}{
		{
			name:  "defaults pass",
			prefs: DefaultPreferences(),
		},
		{
			name:  "twitter automation without username",
			prefs: Preferences{AutoRetweet: true, TextInputSentence: "x"},
			err:   ErrTwitterUsernameRequired,
		},
		{
			name: "twitter automation without link",
			prefs: Preferences{
				AutoTweet: true, TwitterUsername: "me",
				TextInputSentence: "x",
			},
			err: ErrTwitterNotLinked,
		},
		{
			name: "twitter automation linked",
			prefs: Preferences{
				AutoFollowTwitter: true, TwitterUsername: "me",
				TextInputSentence: "x",
			},
			linked: []string{"twitter"},
		},
		{
			name:  "twitch without link",
			prefs: Preferences{AutoFollowTwitch: true, TextInputSentence: "x"},
			err:   ErrTwitchNotLinked,
		},
		{
			name:   "twitch linked",
			prefs:  Preferences{AutoFollowTwitch: true, TextInputSentence: "x"},
			linked: []string{"twitchtv"},
		},
		{
			name:     "empty sentence only warns",
			prefs:    Preferences{},
			warnings: 1,
		},
		{
			name:     "share alone needs no twitter link",
			prefs:    Preferences{AutoTweetShare: true},
			warnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings, err := tt.prefs.Preflight(linkedTo(tt.linked...))
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, warnings, tt.warnings)
		})
	}
}

func TestGate_Allows(t *testing.T) {
	all := Preferences{
		AutoFollowTwitter: true, AutoRetweet: true, AutoTweet: true,
		AutoTweetShare: true, AutoFollowTwitch: true,
		AutoEmailSubscribe: true,
	}

	gated := []struct {
		kind classifier.Kind
		pref string
	}{
		{classifier.TwitterFollow, "auto_follow_twitter"},
		{classifier.TwitterRetweet, "auto_retweet"},
		{classifier.TwitterTweet, "auto_tweet"},
		{classifier.ShareAction, "auto_tweet_share"},
		{classifier.TwitchFollow, "auto_follow_twitch"},
		{classifier.EmailSubscribe, "auto_email_subscribe"},
	}

	for _, g := range gated {
		t.Run(g.kind.String(), func(t *testing.T) {
			shape := classifier.ShapeFor(g.kind)

			ok, pref := NewGate(Preferences{}).Allows(g.kind, shape)
			assert.False(t, ok)
			assert.Equal(t, g.pref, pref)

			ok, _ = NewGate(all).Allows(g.kind, shape)
			assert.True(t, ok)
			assert.True(t, Gated(g.kind, shape))
		})
	}
}

func TestGate_UngatedKinds(t *testing.T) {
	gate := NewGate(Preferences{})
	for _, k := range []classifier.Kind{
		classifier.TwitterEnter,
		classifier.FacebookVisitLike,
		classifier.CustomActionBlogComment,
		classifier.TwitchEnter,
	} {
		ok, pref := gate.Allows(k, classifier.ShapeFor(k))
		assert.True(t, ok, k.String())
		assert.Empty(t, pref)
		assert.False(t, Gated(k, classifier.ShapeFor(k)))
	}
}
