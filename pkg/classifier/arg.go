// Package classifier maps raw entry methods to action kinds. An
// entry is matched against an ordered table of rules; each rule
// is a conjunction of predicates over the entry's discriminator
// fields and the first matching rule decides the kind.
package classifier

import (
	"fmt"
	"strconv"
	"strings"
)

type op int

const (
	opAnything op = iota
	opIsNumber
	opIs
	opIsIn
	opExists
	opLacks
	opIsEmpty
	opIsNotEmpty
	opIsURL
	opOr
)

// Arg is a predicate over an optional string value. The zero
// value matches anything.
type Arg struct {
	op    op
	value string
	set   []string
	left  *Arg
	right *Arg
}

// Nullary predicates.
var (
	// IsNumber matches a non-negative integer.
	IsNumber = Arg{op: opIsNumber}
	// Exists matches any present value.
	Exists = Arg{op: opExists}
	// Lacks matches an absent value.
	Lacks = Arg{op: opLacks}
	// IsEmpty matches a present empty string.
	IsEmpty = Arg{op: opIsEmpty}
	// IsNotEmpty matches a present non-empty string.
	IsNotEmpty = Arg{op: opIsNotEmpty}
	// IsURL is IsNotEmpty under a name that documents the slot.
	// No URL validation is performed.
	IsURL = Arg{op: opIsURL}
	// Anything always matches.
	Anything = Arg{op: opAnything}
)

// Is matches exactly expected.
func Is(expected string) Arg {
	return Arg{op: opIs, value: expected}
}

// IsIn matches any of values.
func IsIn(values ...string) Arg {
	return Arg{op: opIsIn, set: values}
}

// Or matches when either a or b matches. b is tried first; when
// both fail the reason reported is a's.
func Or(a, b Arg) Arg {
	return Arg{op: opOr, left: &a, right: &b}
}

// Match evaluates the predicate. On failure the message is a
// static description of what was expected.
func (a Arg) Match(value *string) (bool, string) {
	switch a.op {
	case opAnything:
		return true, "anything matches"
	case opIsNumber:
		if value == nil {
			return false, "expected number, found null"
		}
		if _, err := strconv.ParseUint(*value, 10, 64); err != nil {
			return false, "expected number, found string"
		}
		return true, "value is a number"
	case opIs:
		if value == nil || *value != a.value {
			return false, "expected a specific value, got something else"
		}
		return true, "value matches"
	case opIsIn:
		if value != nil {
			for _, v := range a.set {
				if *value == v {
					return true, "value is in set"
				}
			}
		}
		return false, "unexpected value"
	case opExists:
		if value == nil {
			return false, "expected something, found null"
		}
		return true, "value exists"
	case opLacks:
		if value != nil {
			return false, "unexpected value"
		}
		return true, "value is absent"
	case opIsEmpty:
		if value == nil || *value != "" {
			return false, "expected an empty value, got something else"
		}
		return true, "value is empty"
	case opIsNotEmpty, opIsURL:
		if value == nil {
			return false, "expected string, found null"
		}
		if *value == "" {
			return false, "expected non-empty string"
		}
		return true, "value is not empty"
	case opOr:
		if ok, msg := a.right.Match(value); ok {
			return true, msg
		}
		return a.left.Match(value)
	}
	return false, "unknown predicate"
}

// Matches is Match without the message.
func (a Arg) Matches(value *string) bool {
	ok, _ := a.Match(value)
	return ok
}

// String renders the predicate in the compact form accepted by
// ParseArg.
func (a Arg) String() string {
	switch a.op {
	case opIsNumber:
		return "is_number"
	case opIs:
		return "is:" + a.value
	case opIsIn:
		return "is_in:" + strings.Join(a.set, "|")
	case opExists:
		return "exists"
	case opLacks:
		return "lacks"
	case opIsEmpty:
		return "is_empty"
	case opIsNotEmpty:
		return "is_not_empty"
	case opIsURL:
		return "is_url"
	case opOr:
		return "or(" + a.left.String() + "," + a.right.String() + ")"
	}
	return "anything"
}

// ParseArg parses the compact predicate form produced by
// Arg.String.
//
// Examples:
//
//	"lacks"                  -> Lacks
//	"is:Complete"            -> Is("Complete")
//	"is_in:Complete|Delay"   -> IsIn("Complete", "Delay")
//	"or(lacks,is_number)"    -> Or(Lacks, IsNumber)
func ParseArg(s string) (Arg, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "or(") && strings.HasSuffix(s, ")") {
		inner := s[len("or(") : len(s)-1]
		left, right, ok := splitTopLevel(inner)
		if !ok {
			return Arg{}, fmt.Errorf("malformed or predicate: %q", s)
		}
		l, err := ParseArg(left)
		if err != nil {
			return Arg{}, err
		}
		r, err := ParseArg(right)
		if err != nil {
			return Arg{}, err
		}
		return Or(l, r), nil
	}

	name, value, hasValue := strings.Cut(s, ":")
	switch name {
	case "is":
		if !hasValue {
			return Arg{}, fmt.Errorf("predicate %q needs a value", s)
		}
		return Is(value), nil
	case "is_in":
		if !hasValue || value == "" {
			return Arg{}, fmt.Errorf("predicate %q needs values", s)
		}
		return IsIn(strings.Split(value, "|")...), nil
	}

	if hasValue {
		return Arg{}, fmt.Errorf("predicate %q takes no value", name)
	}

	switch name {
	case "is_number":
		return IsNumber, nil
	case "exists":
		return Exists, nil
	case "lacks":
		return Lacks, nil
	case "is_empty":
		return IsEmpty, nil
	case "is_not_empty":
		return IsNotEmpty, nil
	case "is_url":
		return IsURL, nil
	case "anything", "":
		return Anything, nil
	}

	return Arg{}, fmt.Errorf("unknown predicate: %q", name)
}

// splitTopLevel splits s at its first comma outside parentheses.
func splitTopLevel(s string) (string, string, bool) {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}
