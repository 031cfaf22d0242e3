package classifier

import "fmt"

// ShapeType enumerates the request shapes.
type ShapeType int

const (
	// ShapeEnter sends no details.
	ShapeEnter ShapeType = iota
	// ShapeTextInput sends the fallback sentence.
	ShapeTextInput
	// ShapeAnswer sends the first option of a delimited config
	// slot.
	ShapeAnswer
	// ShapeSimple sends a declared constant.
	ShapeSimple
	// ShapeSimpleWithDelay waits for the seconds held in a config
	// slot, then behaves like ShapeSimple.
	ShapeSimpleWithDelay
	// ShapeUnimplemented is never submitted.
	ShapeUnimplemented
	ShapeTwitterFollow
	ShapeTwitterRetweet
	// ShapeTwitterTweet tweets the entry text, or shares the
	// campaign link when WithText is false.
	ShapeTwitterTweet
)

var shapeNames = map[ShapeType]string{
	ShapeEnter:           "Enter",
	ShapeTextInput:       "TextInput",
	ShapeAnswer:          "Answer",
	ShapeSimple:          "Simple",
	ShapeSimpleWithDelay: "SimpleWithDelay",
	ShapeUnimplemented:   "Unimplemented",
	ShapeTwitterFollow:   "TwitterFollow",
	ShapeTwitterRetweet:  "TwitterRetweet",
	ShapeTwitterTweet:    "TwitterTweet",
}

// String returns the shape type's name.
func (t ShapeType) String() string {
	if name, ok := shapeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ShapeType(%d)", int(t))
}

// Shape describes the payload an action kind needs. Run-time
// values (the answer text, the delay) are resolved by the
// workflow from the slot named here.
type Shape struct {
	Type ShapeType

	// Value is the constant sent by Simple shapes; nil is JSON
	// null.
	Value *string
	// Explicit and Form select which payload maps receive the
	// value.
	Explicit bool
	Form     bool

	// Separator and Slot drive Answer shapes; Slot alone drives
	// SimpleWithDelay.
	Separator string
	Slot      int

	// Reason explains an Unimplemented shape.
	Reason string

	// WithText distinguishes a tweet from a share.
	WithText bool
}

// Enter is the bare entry shape.
func Enter() Shape { return Shape{Type: ShapeEnter} }

// TextInput sends the fallback sentence.
func TextInput() Shape { return Shape{Type: ShapeTextInput} }

// Answer extracts the first option of config slot.
func Answer(separator string, slot int) Shape {
	return Shape{Type: ShapeAnswer, Separator: separator, Slot: slot}
}

// Simple sends value.
func Simple(value *string, explicit, form bool) Shape {
	if value != nil {
		v := *value
		value = &v
	}
	return Shape{
		Type: ShapeSimple, Value: value,
		Explicit: explicit, Form: form,
	}
}

// SimpleWithDelay waits for the seconds in slot, then sends the
// simple shape's value.
func SimpleWithDelay(s Shape, slot int) Shape {
	s.Type = ShapeSimpleWithDelay
	s.Slot = slot
	return s
}

// Unimplemented marks a recognised kind the bot cannot perform.
func Unimplemented(reason string) Shape {
	return Shape{Type: ShapeUnimplemented, Reason: reason}
}

// Tweet posts the entry text (withText) or shares the campaign.
func Tweet(withText bool) Shape {
	return Shape{Type: ShapeTwitterTweet, WithText: withText}
}

// String renders the shape for diagnostics.
func (s Shape) String() string {
	value := "null"
	if s.Value != nil {
		value = fmt.Sprintf("%q", *s.Value)
	}
	switch s.Type {
	case ShapeAnswer:
		return fmt.Sprintf("Answer(%q, %d)", s.Separator, s.Slot)
	case ShapeSimple:
		return fmt.Sprintf("Simple(%s, %t, %t)", value, s.Explicit, s.Form)
	case ShapeSimpleWithDelay:
		return fmt.Sprintf(
			"SimpleWithDelay((%s, %t, %t), %d)",
			value, s.Explicit, s.Form, s.Slot,
		)
	case ShapeUnimplemented:
		return fmt.Sprintf("Unimplemented(%q)", s.Reason)
	case ShapeTwitterTweet:
		return fmt.Sprintf("TwitterTweet(%t)", s.WithText)
	}
	return s.Type.String()
}

// External reports whether the shape opens an external action
// before submitting.
func (s Shape) External() bool {
	switch s.Type {
	case ShapeTwitterFollow, ShapeTwitterRetweet, ShapeTwitterTweet:
		return true
	}
	return false
}

var (
	done    = "Done"
	visited = "V"
)

// ShapeFor returns the request shape of kind. It is total: kinds
// outside the enumeration map to Unimplemented.
func ShapeFor(k Kind) Shape {
	switch k {
	case InstagramEnter:
		return Enter()
	case InstagramViewPost:
		return Simple(&done, true, false)
	case InstagramVisitProfile:
		return Simple(&visited, false, false)
	case InstagramVisitProfileWithQuestion:
		return Answer(",", 8)
	case CustomActionAskQuestion, CustomActionQuestion,
		CustomActionVisitQuestion:
		return Answer(",", 5)
	case CustomActionChooseOption:
		return Answer("\r\n", 5)
	case CustomActionBlogComment:
		return TextInput()
	case CustomActionBasic:
		return Simple(&done, true, false)
	case CustomActionVisitAuto:
		return Simple(&visited, false, false)
	case CustomActionVisitDelay:
		return SimpleWithDelay(Simple(&visited, false, false), 7)
	case CustomActionBonus, EmailSubscribe:
		return Simple(nil, false, false)
	case FacebookEnter:
		return Enter()
	case FacebookVisitComplete:
		return Simple(&visited, false, false)
	case FacebookVisitLike:
		return Simple(&visited, true, false)
	case FacebookVisitWithQuestion:
		return Answer(",", 6)
	case FacebookViewPost:
		return Simple(nil, false, false)
	case PinterestVisitComplete:
		return Simple(&visited, false, false)
	case PinterestVisitFollow:
		return Simple(&visited, true, false)
	case TwitterEnter:
		return Enter()
	case TwitterRetweet:
		return Shape{Type: ShapeTwitterRetweet}
	case TwitterTweet:
		return Tweet(true)
	case TwitterFollow:
		return Shape{Type: ShapeTwitterFollow}
	case YoutubeVisitChannel:
		return Simple(&visited, false, false)
	case YoutubeVisitChannelWithQuestion:
		return Answer(",", 6)
	case YoutubeVisitChannelWithDelay:
		return SimpleWithDelay(Simple(&visited, true, false), 4)
	case YoutubeEnter, TwitchEnter:
		return Enter()
	case TwitchFollow:
		return Simple(nil, false, false)
	case LinkedInFollow:
		return Simple(&visited, false, false)
	case DiscordJoinServer:
		return Unimplemented("The bot does not support Discord yet.")
	case SteamJoinGroup:
		return Unimplemented("The bot does not support Steam groups auto-join yet.")
	case Loyalty:
		return Unimplemented("The bot does not support loyalty entries yet.")
	case ShareAction:
		return Tweet(false)
	}
	return Unimplemented(fmt.Sprintf("no request shape for %s", k))
}
