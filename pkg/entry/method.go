// Package entry defines the campaign data model shared by the
// classifier and the workflow: entry methods, campaigns,
// contestants and the per-entry results of a run.
package entry

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ConfigSlots is the number of generic config slots carried by an
// entry method.
const ConfigSlots = 9

// Method is one candidate action a contestant can perform. It is
// loaded once per run and never mutated.
type Method struct {
	// ID is the stable identifier assigned by the platform.
	ID string `json:"id"`

	// EntryType is the action-type tag (e.g. "twitter_follow").
	// It is not unique: several shapes share one tag.
	EntryType string `json:"entry_type"`

	// TypeWithoutProvider is the tag without its provider prefix.
	TypeWithoutProvider string `json:"type_without_provider,omitempty"`

	// Provider names the linked account the action needs, or is
	// empty ("twitter", "twitchtv", "email").
	Provider string `json:"provider"`

	Mandatory              bool `json:"mandatory"`
	RequiresDetails        bool `json:"requires_details"`
	RequiresAuthentication bool `json:"requires_authentication"`

	// ActionsRequired is the number of accepted actions needed
	// before this entry unlocks.
	ActionsRequired int `json:"actions_required"`

	// TimerAction is the optional wait, in seconds, declared by
	// the entry. The platform sends it as a number or a string.
	TimerAction json.RawMessage `json:"timer_action,omitempty"`

	Worth int `json:"worth"`

	Config1 *string `json:"config1"`
	Config2 *string `json:"config2"`
	Config3 *string `json:"config3"`
	Config4 *string `json:"config4"`
	Config5 *string `json:"config5"`
	Config6 *string `json:"config6"`
	Config7 *string `json:"config7"`
	Config8 *string `json:"config8"`
	Config9 *string `json:"config9"`

	Workflow   *string `json:"workflow"`
	MethodType *string `json:"method_type"`

	// Template is always present on the wire; the rules match it
	// as a present string.
	Template string `json:"template"`

	ActionDescription string `json:"action_description,omitempty"`
}

// UnmarshalJSON accepts the id as a JSON number or string.
func (m *Method) UnmarshalJSON(data []byte) error {
	type plain Method
	aux := struct {
		*plain
		ID json.RawMessage `json:"id"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.ID = ""
	raw := strings.TrimSpace(string(aux.ID))
	if raw == "" || raw == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(aux.ID, &s); err == nil {
		m.ID = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(aux.ID, &n); err != nil {
		return fmt.Errorf("entry method id: %w", err)
	}
	m.ID = n.String()
	return nil
}

// Config returns config slot i (1-based). Out-of-range slots read
// as absent.
func (m *Method) Config(i int) *string {
	switch i {
	case 1:
		return m.Config1
	case 2:
		return m.Config2
	case 3:
		return m.Config3
	case 4:
		return m.Config4
	case 5:
		return m.Config5
	case 6:
		return m.Config6
	case 7:
		return m.Config7
	case 8:
		return m.Config8
	case 9:
		return m.Config9
	}
	return nil
}

// SetConfig assigns config slot i (1-based). Out-of-range slots
// are ignored.
func (m *Method) SetConfig(i int, v *string) {
	switch i {
	case 1:
		m.Config1 = v
	case 2:
		m.Config2 = v
	case 3:
		m.Config3 = v
	case 4:
		m.Config4 = v
	case 5:
		m.Config5 = v
	case 6:
		m.Config6 = v
	case 7:
		m.Config7 = v
	case 8:
		m.Config8 = v
	case 9:
		m.Config9 = v
	}
}

// Configs returns the nine config slots in order.
func (m *Method) Configs() [ConfigSlots]*string {
	return [ConfigSlots]*string{
		m.Config1, m.Config2, m.Config3,
		m.Config4, m.Config5, m.Config6,
		m.Config7, m.Config8, m.Config9,
	}
}

// TimerSeconds returns the declared timer when it is a
// non-negative integer, either as a JSON number or a numeric
// string.
func (m *Method) TimerSeconds() (int, bool) {
	raw := strings.TrimSpace(string(m.TimerAction))
	if raw == "" || raw == "null" {
		return 0, false
	}
	var s string
	if err := json.Unmarshal(m.TimerAction, &s); err == nil {
		raw = s
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// Str returns a pointer to s. It keeps record literals in tests
// and rule files short.
func Str(s string) *string {
	return &s
}

// Deref returns the pointed-to string or "" when absent.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
