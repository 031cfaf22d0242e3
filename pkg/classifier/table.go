package classifier

import "digital.vasic.sweepbot/pkg/entry"

// Classifier resolves the action kind of an entry method.
type Classifier interface {
	// Classify returns the kind of the first matching rule.
	Classify(m *entry.Method) (Kind, bool)
}

// Entry is one row of a classification table.
type Entry struct {
	// Name identifies the rule in diagnostics.
	Name string
	Rule Rule
	Kind Kind
}

// Diagnostic explains why a rule sharing the entry's tag did not
// match.
type Diagnostic struct {
	Name     string
	Kind     Kind
	Mismatch *Mismatch
}

// Table is an ordered list of rules evaluated top to bottom; the
// first match wins. A Table is immutable and safe for concurrent
// use.
type Table struct {
	entries []Entry
}

// NewTable creates a table from entries in evaluation order.
func NewTable(entries ...Entry) *Table {
	return &Table{entries: append([]Entry(nil), entries...)}
}

// DefaultTable returns the built-in classification table.
func DefaultTable() *Table {
	return NewTable(builtinEntries...)
}

// With returns a new table with extra entries evaluated after the
// existing ones. Appending never changes which rule wins for an
// entry the table already classifies.
func (t *Table) With(extra ...Entry) *Table {
	entries := make([]Entry, 0, len(t.entries)+len(extra))
	entries = append(entries, t.entries...)
	entries = append(entries, extra...)
	return &Table{entries: entries}
}

// Entries returns a copy of the rows in evaluation order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.entries)
}

// Classify returns the kind of the first matching rule.
func (t *Table) Classify(m *entry.Method) (Kind, bool) {
	e, ok := t.Lookup(m)
	if !ok {
		return Unknown, false
	}
	return e.Kind, true
}

// Lookup returns the first matching row.
func (t *Table) Lookup(m *entry.Method) (Entry, bool) {
	for _, e := range t.entries {
		if e.Rule.Matches(m) {
			return e, true
		}
	}
	return Entry{}, false
}

// Explain reports, for every rule whose tag equals the entry's,
// the first predicate that failed. Matching rules are reported
// with a nil Mismatch.
func (t *Table) Explain(m *entry.Method) []Diagnostic {
	var out []Diagnostic
	for _, e := range t.entries {
		if e.Rule.Tag != m.EntryType {
			continue
		}
		out = append(out, Diagnostic{
			Name:     e.Name,
			Kind:     e.Kind,
			Mismatch: e.Rule.Match(m),
		})
	}
	return out
}
