package platform

import (
	"context"
	"sync"

	"digital.vasic.sweepbot/pkg/entry"
	"digital.vasic.sweepbot/pkg/logging"
)

// DryRunTransport logs payloads instead of sending them and
// answers every submission with RefreshRequired{false}, which the
// workflow treats as "continue".
type DryRunTransport struct {
	logger logging.Logger

	mu        sync.Mutex
	submitted []Submission
}

// Submission is one payload recorded by DryRunTransport.
type Submission struct {
	CampaignKey string
	EntryID     string
	Payload     Payload
}

// NewDryRunTransport creates a DryRunTransport logging to l; nil
// discards the logs.
func NewDryRunTransport(l logging.Logger) *DryRunTransport {
	if l == nil {
		l = logging.NullLogger{}
	}
	return &DryRunTransport{logger: l}
}

// Submit records the payload.
func (d *DryRunTransport) Submit(
	ctx context.Context,
	campaignKey, entryID string,
	payload *Payload,
) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	body, err := payload.Marshal()
	if err != nil {
		return Response{}, err
	}
	d.logger.Info("dry run: entry not submitted",
		logging.StringField("campaign", campaignKey),
		logging.StringField("entry_id", entryID),
		logging.StringField("payload", string(body)),
	)

	d.mu.Lock()
	d.submitted = append(d.submitted, Submission{
		CampaignKey: campaignKey,
		EntryID:     entryID,
		Payload:     *payload,
	})
	d.mu.Unlock()

	return Response{Kind: ResponseRefreshRequired}, nil
}

// SetContestant logs the details and leaves the contestant
// unchanged, which a nil contestant signals.
func (d *DryRunTransport) SetContestant(
	ctx context.Context,
	campaignKey string,
	details entry.ContestantDetails,
) (*entry.Contestant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.logger.Info("dry run: contestant details not sent",
		logging.StringField("campaign", campaignKey),
		logging.StringField("name", details.Name),
	)
	return nil, nil
}

// Submissions returns the recorded payloads in order.
func (d *DryRunTransport) Submissions() []Submission {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Submission, len(d.submitted))
	copy(out, d.submitted)
	return out
}
