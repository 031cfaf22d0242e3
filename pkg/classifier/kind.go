package classifier

import "fmt"

// Kind is the canonical action kind an entry method resolves to.
type Kind int

// Action kinds. Unknown is the zero value and never produced by
// a successful classification.
const (
	Unknown Kind = iota
	InstagramEnter
	InstagramViewPost
	InstagramVisitProfile
	InstagramVisitProfileWithQuestion
	CustomActionAskQuestion
	CustomActionQuestion
	CustomActionChooseOption
	CustomActionVisitQuestion
	CustomActionBlogComment
	CustomActionBasic
	CustomActionVisitAuto
	CustomActionVisitDelay
	CustomActionBonus
	EmailSubscribe
	FacebookEnter
	FacebookVisitComplete
	FacebookVisitLike
	FacebookVisitWithQuestion
	FacebookViewPost
	PinterestVisitComplete
	PinterestVisitFollow
	TwitterEnter
	TwitterRetweet
	TwitterTweet
	TwitterFollow
	YoutubeVisitChannel
	YoutubeVisitChannelWithDelay
	YoutubeVisitChannelWithQuestion
	YoutubeEnter
	TwitchEnter
	TwitchFollow
	DiscordJoinServer
	LinkedInFollow
	SteamJoinGroup
	Loyalty
	ShareAction
)

var kindNames = map[Kind]string{
	Unknown:                           "Unknown",
	InstagramEnter:                    "InstagramEnter",
	InstagramViewPost:                 "InstagramViewPost",
	InstagramVisitProfile:             "InstagramVisitProfile",
	InstagramVisitProfileWithQuestion: "InstagramVisitProfileWithQuestion",
	CustomActionAskQuestion:           "CustomActionAskQuestion",
	CustomActionQuestion:              "CustomActionQuestion",
	CustomActionChooseOption:          "CustomActionChooseOption",
	CustomActionVisitQuestion:         "CustomActionVisitQuestion",
	CustomActionBlogComment:           "CustomActionBlogComment",
	CustomActionBasic:                 "CustomActionBasic",
	CustomActionVisitAuto:             "CustomActionVisitAuto",
	CustomActionVisitDelay:            "CustomActionVisitDelay",
	CustomActionBonus:                 "CustomActionBonus",
	EmailSubscribe:                    "EmailSubscribe",
	FacebookEnter:                     "FacebookEnter",
	FacebookVisitComplete:             "FacebookVisitComplete",
	FacebookVisitLike:                 "FacebookVisitLike",
	FacebookVisitWithQuestion:         "FacebookVisitWithQuestion",
	FacebookViewPost:                  "FacebookViewPost",
	PinterestVisitComplete:            "PinterestVisitComplete",
	PinterestVisitFollow:              "PinterestVisitFollow",
	TwitterEnter:                      "TwitterEnter",
	TwitterRetweet:                    "TwitterRetweet",
	TwitterTweet:                      "TwitterTweet",
	TwitterFollow:                     "TwitterFollow",
	YoutubeVisitChannel:               "YoutubeVisitChannel",
	YoutubeVisitChannelWithDelay:      "YoutubeVisitChannelWithDelay",
	YoutubeVisitChannelWithQuestion:   "YoutubeVisitChannelWithQuestion",
	YoutubeEnter:                      "YoutubeEnter",
	TwitchEnter:                       "TwitchEnter",
	TwitchFollow:                      "TwitchFollow",
	DiscordJoinServer:                 "DiscordJoinServer",
	LinkedInFollow:                    "LinkedInFollow",
	SteamJoinGroup:                    "SteamJoinGroup",
	Loyalty:                           "Loyalty",
	ShareAction:                       "ShareAction",
}

// String returns the kind's name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a kind by name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name && k != Unknown {
			return k, nil
		}
	}
	return Unknown, fmt.Errorf("unknown action kind: %q", name)
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames)-1)
	for k := InstagramEnter; k <= ShareAction; k++ {
		out = append(out, k)
	}
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
