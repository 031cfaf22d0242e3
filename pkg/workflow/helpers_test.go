package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"digital.vasic.sweepbot/pkg/entry"
	"digital.vasic.sweepbot/pkg/platform"
)

type submission struct {
	key     string
	entryID string
	payload *platform.Payload
}

// fakeTransport replies from a queue, then with Success{worth 1}.
type fakeTransport struct {
	mu      sync.Mutex
	replies []platform.Response
	err     error
	calls   []submission
}

func (f *fakeTransport) Submit(
	ctx context.Context,
	key, entryID string,
	payload *platform.Payload,
) (platform.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, submission{key, entryID, payload})
	if f.err != nil {
		return platform.Response{}, f.err
	}
	if len(f.replies) == 0 {
		return platform.Response{Kind: platform.ResponseSuccess, Worth: 1}, nil
	}
	resp := f.replies[0]
	f.replies = f.replies[1:]
	return resp, nil
}

func (f *fakeTransport) submitted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, len(f.calls))
	for i, c := range f.calls {
		ids[i] = c.entryID
	}
	return ids
}

// recordingSleeper records waits without sleeping.
type recordingSleeper struct {
	mu      sync.Mutex
	waits   []time.Duration
	onSleep func()
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.waits = append(s.waits, d)
	hook := s.onSleep
	s.mu.Unlock()
	if hook != nil {
		hook()
	}
	return ctx.Err()
}

func (s *recordingSleeper) recorded() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.waits...)
}

type fakeShortener struct {
	short   string
	err     error
	longURL string
}

func (f *fakeShortener) Shorten(
	_ context.Context,
	_ entry.Shortener,
	longURL string,
) (string, error) {
	f.longURL = longURL
	return f.short, f.err
}

type failingOpener struct{}

func (failingOpener) Open(context.Context, string) error {
	return errors.New("popup blocked")
}

const campaignKey = "abCD1"

func method(id, tag string, configs map[int]string) entry.Method {
	m := entry.Method{ID: id, EntryType: tag}
	for slot, v := range configs {
		m.SetConfig(slot, entry.Str(v))
	}
	return m
}

func youtubeEnter(id string) entry.Method {
	return method(id, "youtube_enter", map[int]string{1: "channel", 9: ""})
}

func twitchFollow(id string) entry.Method {
	m := method(id, "twitchtv_follow", map[int]string{1: "channel", 2: "42", 9: ""})
	m.Provider = "twitchtv"
	return m
}

func emailSubscribe(id string) entry.Method {
	return method(id, "email_subscribe", map[int]string{1: "news", 4: "Off"})
}

func loyalty(id string) entry.Method {
	return method(id, "loyalty", map[int]string{1: "points"})
}

func blogComment(id string) entry.Method {
	m := method(id, "custom_action", map[int]string{
		1: "Leave a comment", 2: "comment", 4: "Tell us why",
	})
	m.Template = "blog_comment"
	m.MethodType = entry.Str("Allow question or tracking")
	m.RequiresDetails = true
	return m
}

func twitterMethod(id, tag string, configs map[int]string) entry.Method {
	m := method(id, tag, configs)
	m.Provider = "twitter"
	m.RequiresDetails = true
	return m
}

func giveaway(methods ...entry.Method) entry.Giveaway {
	return entry.Giveaway{
		Campaign: entry.Campaign{
			Key:  campaignKey,
			Name: "Win a thing",
		},
		EntryMethods: methods,
	}
}

func contestant(providers ...string) entry.Contestant {
	c := entry.Contestant{ID: 42, Name: "Ada"}
	for i, p := range providers {
		c.Authentications = append(c.Authentications, entry.Authentication{
			ID: uint64(i + 1), Provider: p, UID: "uid-" + p,
		})
	}
	return c
}

type fraudFunc func(ctx context.Context) (string, error)

func (f fraudFunc) FraudToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// fakeUpdater records contestant details and replies with reply.
type fakeUpdater struct {
	mu      sync.Mutex
	reply   *entry.Contestant
	err     error
	keys    []string
	details []entry.ContestantDetails
}

func (f *fakeUpdater) SetContestant(
	ctx context.Context,
	campaignKey string,
	details entry.ContestantDetails,
) (*entry.Contestant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, campaignKey)
	f.details = append(f.details, details)
	return f.reply, f.err
}
