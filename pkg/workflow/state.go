package workflow

import (
	"digital.vasic.sweepbot/pkg/entry"
)

// Details is a resolved entry value and the payload maps it goes
// into. A nil Value is sent as JSON null.
type Details struct {
	Value    any
	Explicit bool
	Form     bool
}

// RunState is the mutable state of one run. It is owned by the
// engine and threaded through every step.
type RunState struct {
	session *entry.Session

	// MadeRequests lists the submitted entry ids in order.
	MadeRequests []string

	// CompletedMandatory counts mandatory entries completed
	// before or during the run.
	CompletedMandatory int
	TotalMandatory     int

	// ActionsNumber counts entries accepted during the run.
	ActionsNumber int

	Processed int
	Total     int

	// WorthGained sums the worth of accepted entries.
	WorthGained int
}

// NewRunState derives the initial state of a run over g.
func NewRunState(g *entry.Giveaway, session *entry.Session) *RunState {
	st := &RunState{
		session: session,
		Total:   len(g.EntryMethods),
	}
	for i := range g.EntryMethods {
		m := &g.EntryMethods[i]
		if !m.Mandatory {
			continue
		}
		st.TotalMandatory++
		if session.Completed[m.ID] {
			st.CompletedMandatory++
		}
	}
	return st
}

// Completed reports whether the session already completed id.
func (s *RunState) Completed(id string) bool {
	return s.session.Completed[id]
}

// MandatoryPending reports whether some mandatory entry is still
// incomplete.
func (s *RunState) MandatoryPending() bool {
	return s.CompletedMandatory < s.TotalMandatory
}

// Linked reports whether provider has a live link.
func (s *RunState) Linked(provider string) bool {
	return s.session.Linked(provider)
}

// Advance marks one more entry processed and returns the
// progress percentage.
func (s *RunState) Advance() int {
	s.Processed++
	return s.Percent()
}

// Percent returns the integer progress percentage.
func (s *RunState) Percent() int {
	if s.Total <= 0 {
		return 100
	}
	return s.Processed * 100 / s.Total
}

// Accept records an accepted entry.
func (s *RunState) Accept(m *entry.Method, worth int) {
	if m.Mandatory {
		s.CompletedMandatory++
	}
	s.ActionsNumber++
	s.WorthGained += worth
}

// Order returns the processing order of methods: mandatory
// entries first, then optional ones, each group in its original
// relative order.
func Order(methods []entry.Method) []*entry.Method {
	out := make([]*entry.Method, 0, len(methods))
	for i := range methods {
		if methods[i].Mandatory {
			out = append(out, &methods[i])
		}
	}
	for i := range methods {
		if !methods[i].Mandatory {
			out = append(out, &methods[i])
		}
	}
	return out
}

// BuildMaps returns the explicit-state and form-state maps sent
// with the submission of m, then records m as made.
//
// Both maps hold null for every entry already submitted. The
// form map also holds the provider filler of every
// details-requiring entry not yet submitted. The current value
// goes into the maps selected by d.
func (s *RunState) BuildMaps(
	all []entry.Method,
	m *entry.Method,
	d Details,
	fill func(provider string) (any, bool),
) (explicit, form map[string]any) {
	explicit = make(map[string]any, len(s.MadeRequests)+1)
	form = make(map[string]any, len(all))

	made := make(map[string]bool, len(s.MadeRequests))
	for _, id := range s.MadeRequests {
		explicit[id] = nil
		form[id] = nil
		made[id] = true
	}

	for i := range all {
		other := &all[i]
		if !other.RequiresDetails || made[other.ID] {
			continue
		}
		if v, ok := fill(other.Provider); ok {
			form[other.ID] = v
		}
	}

	if d.Explicit {
		explicit[m.ID] = d.Value
	}
	if d.Form {
		form[m.ID] = d.Value
	}
	s.MadeRequests = append(s.MadeRequests, m.ID)
	return explicit, form
}
