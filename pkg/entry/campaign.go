package entry

import "encoding/json"

// Campaign is the sweepstake a set of entry methods belongs to.
type Campaign struct {
	Key           string    `json:"key"`
	Name          string    `json:"name"`
	StandAloneURL string    `json:"stand_alone_url"`
	SiteURL       string    `json:"site_url,omitempty"`
	Finished      bool      `json:"finished"`
	Paused        bool      `json:"paused"`
	EndsAt        int64     `json:"ends_at,omitempty"`
	Shortener     Shortener `json:"shortener"`

	// AdditionalContestantDetails asks for the contestant's full
	// details before any entry is accepted.
	AdditionalContestantDetails bool `json:"additional_contestant_details"`
}

// Shortener describes the campaign's URL shortener. Only the
// well-known form (url, username and api key all present) can be
// used for share actions; anything else is kept raw.
type Shortener struct {
	URL      string `json:"url,omitempty"`
	Username string `json:"username,omitempty"`
	APIKey   string `json:"api_key,omitempty"`

	// Raw is the original JSON value.
	Raw json.RawMessage `json:"-"`

	wellKnown bool
}

// UnmarshalJSON records whether the value has the well-known
// shape before keeping the raw bytes.
func (s *Shortener) UnmarshalJSON(data []byte) error {
	s.Raw = append(s.Raw[:0], data...)
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Non-object shorteners are legal and simply unusable.
		return nil
	}
	url, okURL := stringField(fields, "url")
	user, okUser := stringField(fields, "username")
	key, okKey := stringField(fields, "api_key")
	s.URL, s.Username, s.APIKey = url, user, key
	s.wellKnown = okURL && okUser && okKey
	return nil
}

// MarshalJSON writes the raw value back when one was decoded.
func (s Shortener) MarshalJSON() ([]byte, error) {
	if len(s.Raw) > 0 {
		return s.Raw, nil
	}
	if !s.wellKnown {
		return []byte("null"), nil
	}
	return json.Marshal(map[string]string{
		"url": s.URL, "username": s.Username, "api_key": s.APIKey,
	})
}

// WellKnown reports whether the shortener can be called.
func (s Shortener) WellKnown() bool {
	return s.wellKnown
}

// NewWellKnownShortener builds a usable shortener.
func NewWellKnownShortener(url, username, apiKey string) Shortener {
	return Shortener{
		URL: url, Username: username, APIKey: apiKey,
		wellKnown: true,
	}
}

func stringField(
	fields map[string]json.RawMessage,
	key string,
) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Incentive is the prize advertised by the campaign.
type Incentive struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	ActionsRequired int    `json:"actions_required"`
	Description     string `json:"description,omitempty"`
}

// Giveaway is the campaign payload embedded in the page.
type Giveaway struct {
	Campaign     Campaign  `json:"campaign"`
	EntryMethods []Method  `json:"entry_methods"`
	Incentive    Incentive `json:"incentive"`
}

// TotalMandatory counts the mandatory entry methods.
func (g *Giveaway) TotalMandatory() int {
	n := 0
	for i := range g.EntryMethods {
		if g.EntryMethods[i].Mandatory {
			n++
		}
	}
	return n
}
