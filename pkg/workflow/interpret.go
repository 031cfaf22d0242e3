package workflow

import (
	"context"
	"fmt"
	"time"

	"digital.vasic.sweepbot/pkg/entry"
	"digital.vasic.sweepbot/pkg/logging"
	"digital.vasic.sweepbot/pkg/notify"
	"digital.vasic.sweepbot/pkg/platform"
)

const errAuthExpired = "error_auth_expired"

// Danger messages.
const (
	msgRefreshRequired = "I'm sorry. The bot made a mistake. I think this kind of mistake may result in a fraud suspicion. You should stop using the bot for a little while."
	msgBotSpotted      = "I'm sorry. Gleam.io says you are a cheater. You should stop using the bot for a while. Your account may have been banned for a few weeks. If the problem persists, try changing your ip (use your 4g) and your account."
	msgIPBan           = "I'm sorry. Gleam.io banned your IP. There is nothing you can do. If you are using a VPN, don't."
)

// submit builds the payload of m and sends it.
func (r *run) submit(ctx context.Context, m *entry.Method, d Details) step {
	g := &r.in.Giveaway
	explicit, form := r.state.BuildMaps(
		g.EntryMethods, m, d,
		func(provider string) (any, bool) {
			return r.fillers.Fill(provider, r.prefs)
		},
	)
	payload := &platform.Payload{
		Details: d.Value,
		H: r.signer.Sign(
			r.in.Contestant.ID, m.ID, m.EntryType, g.Campaign.Key,
		),
		Dbg:  explicit,
		Efd:  form,
		Dbge: platform.NewDebugMetadata(m.ID),
		F:    r.fraudToken,
	}

	r.log.Debug("submitting entry",
		logging.StringField("entry_id", m.ID),
		logging.StringField("entry_type", m.EntryType),
		logging.StringField("kind", r.kind.String()),
	)

	start := time.Now()
	resp, err := r.transport.Submit(ctx, g.Campaign.Key, m.ID, payload)
	elapsed := time.Since(start)
	if err != nil {
		if ctx.Err() != nil {
			return aborted(cancelled(ctx.Err()))
		}
		return aborted(fatal(
			SeverityError, "Invalid response to HTTP request!", err,
		))
	}

	st := r.interpret(ctx, m, resp)
	st.response = resp.Kind.String()
	st.elapsed = elapsed
	return st
}

// interpret maps a decoded reply to the next step.
func (r *run) interpret(
	ctx context.Context,
	m *entry.Method,
	resp platform.Response,
) step {
	submitted := step{control: ctlSubmitted, status: entry.StatusSubmitted}

	switch resp.Kind {
	case platform.ResponseError:
		if resp.Error == errAuthExpired {
			r.warn(
				"Gleam.io is unable to check the action. Please login to %s.",
				m.Provider,
			)
			return step{
				control: ctlSubmitted,
				status:  entry.StatusError,
				reason:  resp.Error,
			}
		}
		st := r.fail(
			"An unknown error occurred while trying to get entries with the method %q: %q",
			m.EntryType, resp.Error,
		)
		st.control = ctlBreak
		return st

	case platform.ResponseRefreshRequired:
		if resp.RequireCampaignRefresh {
			return aborted(fatal(SeverityDanger, msgRefreshRequired, nil))
		}
		return submitted

	case platform.ResponseAlreadyEntered:
		r.warn("Gleam.io says you have already entered, but they are highly unlikely to be right.")
		return step{control: ctlSubmitted, status: entry.StatusAlreadyEntered}

	case platform.ResponseSuccess:
		worth := int(resp.Worth)
		r.state.Accept(m, worth)
		total, err := r.store.AddEntries(ctx, worth)
		if err != nil {
			r.log.Error("failed to save preferences",
				logging.ErrorField(err),
			)
			r.notify(notify.LevelError, "Failed to save your settings: %v", err)
		}
		r.log.Info("entry accepted",
			logging.StringField("entry_id", m.ID),
			logging.IntField("worth", worth),
			logging.IntField("total_entries", total),
		)
		r.notify(notify.LevelSuccess, "Entry %s accepted (+%d)", m.ID, worth)
		return step{
			control: ctlSubmitted,
			status:  entry.StatusAccepted,
			worth:   worth,
		}

	case platform.ResponseBotSpotted:
		if resp.Cheater {
			return aborted(fatal(SeverityDanger, msgBotSpotted, nil))
		}
		return submitted

	case platform.ResponseIPBan:
		if resp.IPBan {
			return aborted(fatal(SeverityDanger, msgIPBan, nil))
		}
		return submitted
	}

	return aborted(fatal(
		SeverityError,
		"Invalid response to HTTP request!",
		fmt.Errorf("unexpected response kind %s", resp.Kind),
	))
}
