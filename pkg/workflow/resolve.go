package workflow

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"digital.vasic.sweepbot/pkg/classifier"
	"digital.vasic.sweepbot/pkg/entry"
	"digital.vasic.sweepbot/pkg/settings"
)

const intentBase = "https://twitter.com/intent/"

// resolve computes the value of m. A non-nil step means the entry
// is finished and nothing is submitted.
func (r *run) resolve(
	ctx context.Context,
	m *entry.Method,
	shape classifier.Shape,
) (Details, *step) {
	switch shape.Type {
	case classifier.ShapeEnter:
		return Details{}, nil

	case classifier.ShapeTextInput:
		return Details{
			Value:    r.prefs.TextInputSentence,
			Explicit: true,
			Form:     true,
		}, nil

	case classifier.ShapeAnswer:
		return Details{
			Value:    r.answer(m, shape),
			Explicit: true,
			Form:     true,
		}, nil

	case classifier.ShapeSimple:
		return simpleDetails(shape), nil

	case classifier.ShapeSimpleWithDelay:
		secs, err := strconv.ParseUint(
			entry.Deref(m.Config(shape.Slot)), 10, 32,
		)
		if err != nil {
			st := r.fail("Invalid delay in entry method %s", m.ID)
			return Details{}, &st
		}
		if a := r.sleep(ctx, time.Duration(secs)*time.Second); a != nil {
			st := aborted(a)
			return Details{}, &st
		}
		return simpleDetails(shape), nil

	case classifier.ShapeTwitterFollow:
		if m.Config1 == nil {
			st := r.fail("Invalid twitter entry method: no account to follow")
			return Details{}, &st
		}
		return r.external(ctx, intentBase+"follow?screen_name="+
			*m.Config1+"&gleambot=true")

	case classifier.ShapeTwitterRetweet:
		id, ok := tweetID(entry.Deref(m.Config1))
		if !ok {
			st := r.fail("Invalid twitter entry method: no tweet to retweet")
			return Details{}, &st
		}
		return r.external(ctx, intentBase+"retweet?tweet_id="+
			id+"&gleambot=true")

	case classifier.ShapeTwitterTweet:
		if !shape.WithText {
			st := r.share(ctx)
			return Details{}, &st
		}
		if m.Config1 == nil {
			st := r.fail("Invalid twitter entry method: no text to tweet")
			return Details{}, &st
		}
		text := strings.ReplaceAll(*m.Config1, "&#39;", "'")
		return r.external(ctx, intentBase+"tweet?text="+
			queryEscape(text)+"%20"+r.in.PageURL+"&gleambot=true")
	}

	st := r.fail("Unsupported request shape %s", shape)
	return Details{}, &st
}

// answer picks the first option of the shape's config slot, or
// the fallback sentence when the slot is absent.
func (r *run) answer(m *entry.Method, shape classifier.Shape) string {
	c := m.Config(shape.Slot)
	if c == nil {
		return r.prefs.TextInputSentence
	}
	first, _, _ := strings.Cut(*c, shape.Separator)
	return strings.ReplaceAll(strings.TrimSpace(first), "&#39;", "'")
}

func simpleDetails(shape classifier.Shape) Details {
	d := Details{Explicit: shape.Explicit, Form: shape.Form}
	if shape.Value != nil {
		d.Value = *shape.Value
	}
	return d
}

// external opens an intent and waits for the user, or the
// browser, to complete it. The value is the Twitter filler.
func (r *run) external(ctx context.Context, target string) (Details, *step) {
	if err := r.opener.Open(ctx, target); err != nil {
		if ctx.Err() != nil {
			st := aborted(cancelled(ctx.Err()))
			return Details{}, &st
		}
		st := r.fail("Failed to open a new window: %v", err)
		return Details{}, &st
	}
	if a := r.sleep(ctx, r.delays.PostAction); a != nil {
		st := aborted(a)
		return Details{}, &st
	}
	v, _ := r.fillers.Fill(settings.ProviderTwitter, r.prefs)
	return Details{Value: v, Explicit: true, Form: true}, nil
}

// share tweets a shortened link to the contestant's share page.
// Nothing is submitted to the platform.
func (r *run) share(ctx context.Context) step {
	sh := r.in.Giveaway.Campaign.Shortener
	if !sh.WellKnown() {
		r.warn("The shortener of this giveaway is not supported.")
		return skip(entry.StatusSkipped, "unsupported shortener", "shortener")
	}
	path, ok := r.in.Contestant.FirstSharePath()
	if !ok {
		return r.fail("No viral share path set for the contestant")
	}
	if r.shortener == nil {
		return r.fail("Failed to exec request to shortener: no shortener client")
	}

	short, err := r.shortener.Shorten(ctx, sh, r.baseURL+path)
	if err != nil {
		if ctx.Err() != nil {
			return aborted(cancelled(ctx.Err()))
		}
		return r.fail("Failed to exec request to shortener: %v", err)
	}

	target := intentBase + "tweet?text=I%20found%20the%20best%20giveaway%21%20" +
		short + "&gleambot=true"
	if err := r.opener.Open(ctx, target); err != nil {
		if ctx.Err() != nil {
			return aborted(cancelled(ctx.Err()))
		}
		return r.fail("Failed to open a new window: %v", err)
	}
	return step{
		control: ctlNext,
		status:  entry.StatusShared,
		reason:  short,
		cause:   "shared",
	}
}

// tweetID extracts the status id of a tweet URL.
func tweetID(link string) (string, bool) {
	_, after, ok := strings.Cut(link, "/status/")
	if !ok {
		return "", false
	}
	id, _, _ := strings.Cut(after, "?")
	return id, true
}

// queryEscape percent-encodes s, spaces as %20.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
