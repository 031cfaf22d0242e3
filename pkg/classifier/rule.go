package classifier

import (
	"fmt"
	"strconv"

	"digital.vasic.sweepbot/pkg/entry"
)

// Rule is a fixed conjunction of predicates over the ten
// classification fields of an entry method, guarded by an exact
// action-type tag.
type Rule struct {
	Tag        string
	Workflow   Arg
	Template   Arg
	MethodType Arg
	Configs    [entry.ConfigSlots]Arg
}

// Mismatch names the first field that failed to match and why.
type Mismatch struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (m *Mismatch) Error() string {
	return fmt.Sprintf("%s: %s", m.Field, m.Reason)
}

// NewRule builds a rule. It mirrors the column order of the
// classification table.
func NewRule(
	tag string,
	workflow, template, methodType Arg,
	configs [entry.ConfigSlots]Arg,
) Rule {
	return Rule{
		Tag:        tag,
		Workflow:   workflow,
		Template:   template,
		MethodType: methodType,
		Configs:    configs,
	}
}

// Match checks m against the rule and returns nil on success.
// The tag is compared first; predicates are then evaluated in
// field order and the first failure is returned.
func (r Rule) Match(m *entry.Method) *Mismatch {
	if r.Tag != m.EntryType {
		return &Mismatch{Field: "entry_type", Reason: "does not match"}
	}
	if ok, msg := r.Workflow.Match(m.Workflow); !ok {
		return &Mismatch{Field: "workflow", Reason: msg}
	}
	template := m.Template
	if ok, msg := r.Template.Match(&template); !ok {
		return &Mismatch{Field: "template", Reason: msg}
	}
	if ok, msg := r.MethodType.Match(m.MethodType); !ok {
		return &Mismatch{Field: "method_type", Reason: msg}
	}
	for i, arg := range r.Configs {
		if ok, msg := arg.Match(m.Config(i + 1)); !ok {
			return &Mismatch{
				Field:  "config" + strconv.Itoa(i+1),
				Reason: msg,
			}
		}
	}
	return nil
}

// Matches reports whether m satisfies every predicate.
func (r Rule) Matches(m *entry.Method) bool {
	return r.Match(m) == nil
}
