package entry

import (
	"encoding/json"
	"strings"
)

// Authentication is one linked provider account.
type Authentication struct {
	ID       uint64 `json:"id"`
	Provider string `json:"provider"`
	UID      string `json:"uid"`
	Expired  bool   `json:"expired"`
}

// Contestant is the logged-in user as described by the page. A
// disconnected contestant carries no id.
type Contestant struct {
	ID              uint64                     `json:"id"`
	Name            string                     `json:"name"`
	Email           string                     `json:"email"`
	Entered         map[string]json.RawMessage `json:"entered"`
	Authentications []Authentication           `json:"authentications"`
	ViralSharePaths map[string]string          `json:"viral_share_paths"`
	StoredDOB       *string                    `json:"stored_dob,omitempty"`
}

// LoggedIn reports whether the page identified a contestant.
func (c *Contestant) LoggedIn() bool {
	return c != nil && c.ID != 0
}

// FirstSharePath returns one viral share path, preferring the
// smallest key so the choice is stable.
func (c *Contestant) FirstSharePath() (string, bool) {
	best := ""
	found := false
	for k := range c.ViralSharePaths {
		if !found || k < best {
			best = k
			found = true
		}
	}
	if !found {
		return "", false
	}
	return c.ViralSharePaths[best], true
}

// DefaultDateOfBirth is sent when the contestant has no stored
// date of birth.
const DefaultDateOfBirth = "1950-01-01"

// ContestantDetails is the form sent to complete a contestant.
type ContestantDetails struct {
	CompetitionSubscription any    `json:"competition_subscription"`
	DateOfBirth             string `json:"date_of_birth"`
	Email                   string `json:"email"`
	FirstName               string `json:"firstname"`
	LastName                string `json:"lastname"`
	Name                    string `json:"name"`
	SendConfirmation        bool   `json:"send_confirmation"`
	StoredDOB               string `json:"stored_dob"`
}

// Details builds the completion form. The name is split on its
// first space; a single word is all first name.
func (c *Contestant) Details() ContestantDetails {
	dob := DefaultDateOfBirth
	if c.StoredDOB != nil && *c.StoredDOB != "" {
		dob = *c.StoredDOB
	}
	first, last, _ := strings.Cut(c.Name, " ")
	return ContestantDetails{
		DateOfBirth: dob,
		Email:       c.Email,
		FirstName:   first,
		LastName:    last,
		Name:        c.Name,
		StoredDOB:   dob,
	}
}

// InitContestant is the contestant payload embedded in the page.
type InitContestant struct {
	Contestant Contestant `json:"contestant"`
}

// Session is the subset of the contestant the workflow reads:
// completed entry ids, linked providers and the signing identity.
type Session struct {
	ContestantID uint64
	Completed    map[string]bool
	// Providers maps a provider to its expired flag.
	Providers map[string]bool
}

// NewSession derives a Session from a contestant.
func NewSession(c *Contestant) *Session {
	s := &Session{
		Completed: make(map[string]bool),
		Providers: make(map[string]bool),
	}
	if c == nil {
		return s
	}
	s.ContestantID = c.ID
	for id := range c.Entered {
		s.Completed[id] = true
	}
	for _, a := range c.Authentications {
		expired, seen := s.Providers[a.Provider]
		// One live link is enough.
		if seen && !expired {
			continue
		}
		s.Providers[a.Provider] = a.Expired
	}
	return s
}

// Linked reports whether provider has a non-expired link.
func (s *Session) Linked(provider string) bool {
	expired, ok := s.Providers[provider]
	return ok && !expired
}
