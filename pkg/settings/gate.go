package settings

import "digital.vasic.sweepbot/pkg/classifier"

// Gate vetoes actions the user has not enabled.
type Gate struct {
	prefs Preferences
}

// NewGate creates a gate over prefs.
func NewGate(prefs Preferences) *Gate {
	return &Gate{prefs: prefs}
}

// Allows reports whether an entry of kind with shape may run. A
// disabled action carries the name of the preference that
// disables it.
func (g *Gate) Allows(
	kind classifier.Kind,
	shape classifier.Shape,
) (bool, string) {
	switch shape.Type {
	case classifier.ShapeTwitterFollow:
		return g.prefs.AutoFollowTwitter, "auto_follow_twitter"
	case classifier.ShapeTwitterRetweet:
		return g.prefs.AutoRetweet, "auto_retweet"
	case classifier.ShapeTwitterTweet:
		if shape.WithText {
			return g.prefs.AutoTweet, "auto_tweet"
		}
		return g.prefs.AutoTweetShare, "auto_tweet_share"
	}

	switch kind {
	case classifier.TwitchFollow:
		return g.prefs.AutoFollowTwitch, "auto_follow_twitch"
	case classifier.EmailSubscribe:
		return g.prefs.AutoEmailSubscribe, "auto_email_subscribe"
	}
	return true, ""
}

// Gated reports whether kind or shape depends on a preference at
// all.
func Gated(kind classifier.Kind, shape classifier.Shape) bool {
	_, pref := (&Gate{}).Allows(kind, shape)
	return pref != ""
}
