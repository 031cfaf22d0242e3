package platform

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ResponseKind identifies which variant a submission response
// decoded to.
type ResponseKind int

const (
	// ResponseUnknown is the zero value; DecodeResponse never
	// returns it without an error.
	ResponseUnknown ResponseKind = iota
	ResponseSuccess
	ResponseAlreadyEntered
	ResponseRefreshRequired
	ResponseError
	ResponseBotSpotted
	ResponseIPBan
)

var responseKindNames = map[ResponseKind]string{
	ResponseUnknown:         "unknown",
	ResponseSuccess:         "success",
	ResponseAlreadyEntered:  "already_entered",
	ResponseRefreshRequired: "refresh_required",
	ResponseError:           "error",
	ResponseBotSpotted:      "bot_spotted",
	ResponseIPBan:           "ip_ban",
}

// String returns the snake_case name of the kind.
func (k ResponseKind) String() string {
	if name, ok := responseKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ResponseKind(%d)", int(k))
}

// ErrUndecodableResponse is returned when a body matches none of
// the response variants.
var ErrUndecodableResponse = errors.New("response matches no known variant")

// Response is the decoded reply to an entry submission. Only the
// fields of Kind's variant are meaningful.
type Response struct {
	Kind ResponseKind

	// Success.
	New   uint64
	Worth uint64

	// AlreadyEntered (Worth is shared with Success).
	ExistingAt      uint64
	Difference      uint64
	IntervalSeconds uint64

	// RefreshRequired.
	RequireCampaignRefresh bool

	// Error.
	Error string

	// BotSpotted.
	Cheater bool

	// IpBan.
	IPBan bool
}

// Flagged reports whether a RefreshRequired, BotSpotted or IpBan
// response carries a true flag.
func (r Response) Flagged() bool {
	switch r.Kind {
	case ResponseRefreshRequired:
		return r.RequireCampaignRefresh
	case ResponseBotSpotted:
		return r.Cheater
	case ResponseIPBan:
		return r.IPBan
	}
	return false
}

type variant struct {
	kind   ResponseKind
	decode func(fields map[string]json.RawMessage, r *Response) bool
}

// variants are tried in this order; the first whose fields are
// all present with compatible types wins. Extra fields are
// ignored.
var variants = []variant{
	{ResponseSuccess, func(f map[string]json.RawMessage, r *Response) bool {
		return field(f, "new", &r.New) && field(f, "worth", &r.Worth)
	}},
	{ResponseAlreadyEntered, func(f map[string]json.RawMessage, r *Response) bool {
		return field(f, "existing_at", &r.ExistingAt) &&
			field(f, "worth", &r.Worth) &&
			field(f, "difference", &r.Difference) &&
			field(f, "interval_seconds", &r.IntervalSeconds)
	}},
	{ResponseRefreshRequired, func(f map[string]json.RawMessage, r *Response) bool {
		return field(f, "require_campaign_refresh", &r.RequireCampaignRefresh)
	}},
	{ResponseError, func(f map[string]json.RawMessage, r *Response) bool {
		return field(f, "error", &r.Error)
	}},
	{ResponseBotSpotted, func(f map[string]json.RawMessage, r *Response) bool {
		return field(f, "cheater", &r.Cheater)
	}},
	{ResponseIPBan, func(f map[string]json.RawMessage, r *Response) bool {
		return field(f, "ip_ban", &r.IPBan)
	}},
}

// field decodes fields[key] into dst. Missing keys, null and
// type mismatches all fail.
func field(fields map[string]json.RawMessage, key string, dst any) bool {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// DecodeResponse decodes a submission response body.
func DecodeResponse(data []byte) (Response, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Response{}, fmt.Errorf(
			"%w: %v", ErrUndecodableResponse, err,
		)
	}
	for _, v := range variants {
		var r Response
		if v.decode(fields, &r) {
			r.Kind = v.kind
			return r, nil
		}
	}
	return Response{}, fmt.Errorf(
		"%w: %s", ErrUndecodableResponse, preview(data, 200),
	)
}

func preview(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
