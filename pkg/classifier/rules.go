package classifier

import "digital.vasic.sweepbot/pkg/entry"

type configs = [entry.ConfigSlots]Arg

// Built-in rules. Comments name the observed meaning of a slot
// where it is known.
var (
	instagramVisitProfile = NewRule(
		"instagram_visit_profile", Lacks, IsEmpty, Lacks,
		configs{
			IsURL,
			Or(Lacks, IsNumber),
			IsNotEmpty,
			Or(Lacks, IsNotEmpty),
			IsIn("Complete", "Delay"),
			IsNumber,
			Lacks,
			Lacks,
			IsEmpty,
		},
	)

	instagramVisitProfileWithQuestion = NewRule(
		"instagram_visit_profile", Lacks, IsEmpty, Lacks,
		configs{
			IsURL,
			Or(Lacks, IsNumber),
			IsNotEmpty,
			Or(Lacks, IsNotEmpty),
			Is("Question"),
			IsNumber,
			IsNotEmpty,
			IsNotEmpty,
			IsEmpty,
		},
	)

	instagramViewPost = NewRule(
		"instagram_view_post", Lacks, IsEmpty, Lacks,
		configs{
			IsURL,
			Lacks,
			Lacks,
			Or(Lacks, IsNumber),
			Or(Lacks, IsNumber),
			Lacks,
			Lacks,
			Lacks,
			IsEmpty,
		},
	)

	instagramEnter = NewRule(
		"instagram_enter", Lacks, IsEmpty, Lacks,
		configs{
			IsURL, Lacks, Lacks, Lacks, Lacks,
			Lacks, Lacks, Lacks, IsEmpty,
		},
	)

	customActionQuestion = NewRule(
		"custom_action", Lacks, Is("question"), Is("Ask a question"),
		configs{
			IsNotEmpty,
			Lacks,
			Or(Lacks, IsNotEmpty),
			IsNotEmpty,
			Lacks,
			Lacks,
			Lacks,
			Lacks,
			Is("50"),
		},
	)

	customActionAskQuestion = NewRule(
		"custom_action", Lacks, IsEmpty, Is("Ask a question"),
		configs{
			IsNotEmpty,
			Lacks,
			IsNotEmpty,
			IsNotEmpty,
			Lacks,
			Lacks,
			Is("0"),
			Lacks,
			Lacks,
		},
	)

	customActionVisitQuestion = NewRule(
		"custom_action",
		Is("VisitQuestion"),
		Is("visit"),
		Is("Allow question or tracking"),
		configs{
			IsNotEmpty,
			IsNotEmpty,
			IsNotEmpty,
			IsNotEmpty,
			Or(IsNotEmpty, Lacks),
			Is("simple"),
			Lacks,
			Or(IsNotEmpty, Lacks),
			Lacks,
		},
	)

	customActionChooseOption = NewRule(
		"custom_action", Lacks, Is("choose_option"), Is("Use tracking"),
		configs{
			IsNotEmpty,
			Is("unique"),
			IsNotEmpty,
			Lacks,
			IsNotEmpty,
			Lacks,
			Lacks,
			Lacks,
			Lacks,
		},
	)

	customActionBlogComment = NewRule(
		"custom_action",
		Lacks,
		Is("blog_comment"),
		Is("Allow question or tracking"),
		configs{
			IsNotEmpty,
			Is("comment"),
			Anything,
			IsNotEmpty,
			Lacks,
			Lacks,
			Lacks,
			Lacks,
			Lacks,
		},
	)

	customActionBasic = NewRule(
		"custom_action", Lacks, IsEmpty, Is("None"),
		configs{
			IsNotEmpty,
			Lacks,
			IsNotEmpty,
			Lacks,
			Lacks,
			Lacks,
			IsNumber,
			Lacks,
			Lacks,
		},
	)

	customActionVisitAuto = NewRule(
		"custom_action",
		Or(IsEmpty, Is("VisitAuto")),
		Is("visit"),
		Is("Use tracking"),
		configs{
			IsNotEmpty,
			IsNotEmpty,
			IsNotEmpty,
			Lacks,
			Lacks,
			Is("simple"),
			Lacks,
			Or(IsNotEmpty, Lacks),
			Lacks,
		},
	)

	customActionVisitDelay = NewRule(
		"custom_action", Is("VisitDelay"), Is("visit"), Is("Use tracking"),
		configs{
			IsNotEmpty, // text to display
			IsNotEmpty, // visit uid
			IsNotEmpty, // html to display
			Lacks,
			Lacks,
			Is("simple"),
			IsNumber,   // seconds to wait
			IsNotEmpty, // link object
			Lacks,
		},
	)

	customActionBonus = NewRule(
		"custom_action", Lacks, Is("bonus"), Is("None"),
		configs{
			IsNotEmpty, Lacks, Lacks, Lacks, Lacks,
			Lacks, Lacks, Lacks, Lacks,
		},
	)

	emailSubscribe = NewRule(
		"email_subscribe", Lacks, IsEmpty, Lacks,
		configs{
			IsNotEmpty,
			Or(IsNotEmpty, Lacks),
			Lacks,
			Is("Off"),
			Lacks,
			Lacks,
			Lacks,
			Lacks,
			Lacks,
		},
	)

	facebookEnter = NewRule(
		"facebook_enter", Lacks, IsEmpty, Lacks,
		configs{
			Or(IsNotEmpty, IsURL),
			IsIn("Complete", "Like"),
			Or(Lacks, IsURL),
			Or(Lacks, IsNotEmpty),
			Or(Lacks, IsNumber),
			Lacks,
			Lacks,
			Lacks,
			IsEmpty,
		},
	)

	facebookVisitComplete = NewRule(
		"facebook_visit", Lacks, IsEmpty, Lacks,
		configs{
			IsURL,
			IsNotEmpty,
			IsNumber,
			Is("Complete"),
			Is("Complete"),
			IsNumber,
			Lacks,
			Lacks,
			IsEmpty,
		},
	)

	facebookVisitLike = NewRule(
		"facebook_visit", Lacks, IsEmpty, Lacks,
		configs{
			IsURL,
			IsNotEmpty,
			IsNumber,
			Is("Like"),
			Is("Complete"),
			IsNumber,
			Lacks,
			Lacks,
			IsEmpty,
		},
	)

	facebookVisitLikeWithQuestion = NewRule(
		"facebook_visit", Lacks, IsEmpty, Lacks,
		configs{
			IsURL,
			IsNotEmpty,
			IsNumber,
			Is("Like"),
			Is("Question"),
			IsNumber,
			IsNotEmpty, // question
			IsNotEmpty, // options
			IsEmpty,
		},
	)

	facebookViewPost = NewRule(
		"facebook_view_post", Lacks, IsEmpty, Lacks,
		configs{
			IsURL,
			IsNotEmpty,
			IsIn("post", "photo", "video"),
			IsNumber,
			Lacks,
			Lacks,
			Lacks,
			Lacks,
			IsEmpty,
		},
	)

	pinterestVisitComplete = NewRule(
		"pinterest_visit", Lacks, IsEmpty, Lacks,
		configs{
			IsNotEmpty,
			Is("Complete"),
			Is("Complete"),
			IsNumber,
			Lacks, Lacks, Lacks, Lacks,
			IsEmpty,
		},
	)

	pinterestVisitFollow = NewRule(
		"pinterest_visit", Lacks, IsEmpty, Lacks,
		configs{
			IsNotEmpty,
			Is("Follow"),
			Is("Complete"),
			IsNumber,
			Lacks, Lacks, Lacks, Lacks,
			IsEmpty,
		},
	)

	youtubeVisitChannel = NewRule(
		"youtube_visit_channel", Lacks, IsEmpty, Lacks,
		configs{
			IsNotEmpty,
			Anything,
			Is("Complete"),
			IsNumber,
			Lacks, Lacks, Lacks, Lacks,
			IsEmpty,
		},
	)

	youtubeVisitChannelWithDelay = NewRule(
		"youtube_visit_channel", Lacks, IsEmpty, Lacks,
		configs{
			IsURL,      // channel url
			IsNotEmpty, // channel name
			Is("Delay"),
			IsNumber, // seconds to wait
			Lacks, Lacks, Lacks, Lacks,
			IsEmpty,
		},
	)

	youtubeVisitChannelWithQuestion = NewRule(
		"youtube_visit_channel", Lacks, IsEmpty, Lacks,
		configs{
			IsURL,      // channel url
			IsNotEmpty, // username
			Is("Question"),
			IsNumber,
			IsNotEmpty,            // question
			Or(IsNotEmpty, Lacks), // options
			Lacks,
			Lacks,
			IsEmpty,
		},
	)

	youtubeEnter = NewRule(
		"youtube_enter", Lacks, IsEmpty, Lacks,
		configs{
			IsNotEmpty, Lacks, Lacks, Lacks, Lacks,
			Lacks, Lacks, Lacks, IsEmpty,
		},
	)

	twitchFollow = NewRule(
		"twitchtv_follow", Lacks, IsEmpty, Lacks,
		configs{
			IsNotEmpty, IsNumber, Lacks, Lacks, Lacks,
			Lacks, Lacks, Lacks, IsEmpty,
		},
	)

	twitchEnter = NewRule(
		"twitchtv_enter", Lacks, IsEmpty, Lacks,
		configs{
			IsNotEmpty, Lacks, Lacks, Lacks, Lacks,
			Lacks, Lacks, Lacks, IsEmpty,
		},
	)

	twitterEnter = NewRule(
		"twitter_enter", Lacks, IsEmpty, Lacks,
		configs{
			IsNotEmpty, IsNumber, Lacks, Lacks, Lacks,
			Lacks, Lacks, Lacks, Lacks,
		},
	)

	twitterRetweet = NewRule(
		"twitter_retweet", Lacks, IsEmpty, Lacks,
		configs{
			IsURL, IsNotEmpty, IsNumber, Lacks, Lacks,
			Lacks, Lacks, Lacks, Lacks,
		},
	)

	twitterTweet = NewRule(
		"twitter_tweet", Lacks, IsEmpty, Lacks,
		configs{
			IsNotEmpty, IsNumber, Lacks, Lacks, Lacks,
			Lacks, Lacks, Lacks, Lacks,
		},
	)

	twitterFollow = NewRule(
		"twitter_follow", Lacks, IsEmpty, Lacks,
		configs{
			IsNotEmpty, IsNumber, Lacks, Lacks, Lacks,
			Lacks, Lacks, Lacks, Lacks,
		},
	)

	discordJoinServer = NewRule(
		"discord_join_server", Lacks, IsEmpty, Lacks,
		configs{
			IsNotEmpty, // text to display
			IsURL,      // invitation link
			IsNumber,
			IsNotEmpty, // server name
			IsNotEmpty,
			IsNotEmpty, // channel name
			Lacks,
			Lacks,
			Lacks,
		},
	)

	linkedInFollow = NewRule(
		"linkedin_follow", Lacks, IsEmpty, Lacks,
		configs{
			IsURL,      // profile url
			IsNotEmpty, // text to display
			IsNotEmpty, // user name
			IsNumber,
			Lacks, Lacks, Lacks, Lacks,
			IsEmpty,
		},
	)

	steamJoinGroup = NewRule(
		"steam_join_group", Lacks, IsEmpty, Lacks,
		configs{
			IsURL,      // group url
			IsNotEmpty, // group name
			IsNotEmpty,
			IsNumber,
			IsNumber,
			Lacks, Lacks, Lacks, Lacks,
		},
	)

	loyalty = NewRule(
		"loyalty", Lacks, IsEmpty, Lacks,
		configs{
			IsNotEmpty, Lacks, Lacks, Lacks, Lacks,
			Lacks, Lacks, Lacks, Lacks,
		},
	)

	shareAction = NewRule(
		"share_action", Lacks, IsEmpty, Lacks,
		configs{
			IsNotEmpty, // text to display
			Lacks,
			IsNotEmpty,
			Lacks, Lacks, Lacks, Lacks, Lacks, Lacks,
		},
	)
)

// builtinEntries is the classification order. It is load-bearing:
// rules sharing a tag are ordered so that the first match is the
// intended one.
var builtinEntries = []Entry{
	{Name: "pinterest_visit_complete", Rule: pinterestVisitComplete, Kind: PinterestVisitComplete},
	{Name: "pinterest_visit_follow", Rule: pinterestVisitFollow, Kind: PinterestVisitFollow},
	{Name: "instagram_enter", Rule: instagramEnter, Kind: InstagramEnter},
	{Name: "instagram_view_post", Rule: instagramViewPost, Kind: InstagramViewPost},
	{Name: "instagram_visit_profile", Rule: instagramVisitProfile, Kind: InstagramVisitProfile},
	{Name: "instagram_visit_profile_with_question", Rule: instagramVisitProfileWithQuestion, Kind: InstagramVisitProfileWithQuestion},
	{Name: "custom_action_question", Rule: customActionQuestion, Kind: CustomActionQuestion},
	{Name: "custom_action_ask_question", Rule: customActionAskQuestion, Kind: CustomActionAskQuestion},
	{Name: "custom_action_visit_question", Rule: customActionVisitQuestion, Kind: CustomActionVisitQuestion},
	{Name: "custom_action_choose_option", Rule: customActionChooseOption, Kind: CustomActionChooseOption},
	{Name: "custom_action_blog_comment", Rule: customActionBlogComment, Kind: CustomActionBlogComment},
	{Name: "custom_action_basic", Rule: customActionBasic, Kind: CustomActionBasic},
	{Name: "custom_action_visit_auto", Rule: customActionVisitAuto, Kind: CustomActionVisitAuto},
	{Name: "custom_action_visit_delay", Rule: customActionVisitDelay, Kind: CustomActionVisitDelay},
	{Name: "custom_action_bonus", Rule: customActionBonus, Kind: CustomActionBonus},
	{Name: "email_subscribe", Rule: emailSubscribe, Kind: EmailSubscribe},
	{Name: "facebook_enter", Rule: facebookEnter, Kind: FacebookEnter},
	{Name: "facebook_visit_complete", Rule: facebookVisitComplete, Kind: FacebookVisitComplete},
	{Name: "facebook_visit_like_with_question", Rule: facebookVisitLikeWithQuestion, Kind: FacebookVisitWithQuestion},
	{Name: "facebook_visit_like", Rule: facebookVisitLike, Kind: FacebookVisitLike},
	{Name: "facebook_view_post", Rule: facebookViewPost, Kind: FacebookViewPost},
	{Name: "twitter_enter", Rule: twitterEnter, Kind: TwitterEnter},
	{Name: "twitter_retweet", Rule: twitterRetweet, Kind: TwitterRetweet},
	{Name: "twitter_tweet", Rule: twitterTweet, Kind: TwitterTweet},
	{Name: "twitter_follow", Rule: twitterFollow, Kind: TwitterFollow},
	{Name: "youtube_visit_channel", Rule: youtubeVisitChannel, Kind: YoutubeVisitChannel},
	{Name: "youtube_visit_channel_with_question", Rule: youtubeVisitChannelWithQuestion, Kind: YoutubeVisitChannelWithQuestion},
	{Name: "youtube_visit_channel_with_delay", Rule: youtubeVisitChannelWithDelay, Kind: YoutubeVisitChannelWithDelay},
	{Name: "youtube_enter", Rule: youtubeEnter, Kind: YoutubeEnter},
	{Name: "twitchtv_enter", Rule: twitchEnter, Kind: TwitchEnter},
	{Name: "twitchtv_follow", Rule: twitchFollow, Kind: TwitchFollow},
	{Name: "discord_join_server", Rule: discordJoinServer, Kind: DiscordJoinServer},
	{Name: "linkedin_follow", Rule: linkedInFollow, Kind: LinkedInFollow},
	{Name: "steam_join_group", Rule: steamJoinGroup, Kind: SteamJoinGroup},
	{Name: "loyalty", Rule: loyalty, Kind: Loyalty},
	{Name: "share_action", Rule: shareAction, Kind: ShareAction},
}
