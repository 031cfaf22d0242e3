package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.sweepbot/pkg/entry"
)

func TestArg_Match(t *testing.T) {
	s := entry.Str

	tests := []struct {
		name     string
		arg      Arg
		value    *string
		expected bool
	}{
		{"is_number digits", IsNumber, s("42"), true},
		{"is_number zero", IsNumber, s("0"), true},
		{"is_number negative", IsNumber, s("-1"), false},
		{"is_number text", IsNumber, s("4a"), false},
		{"is_number empty", IsNumber, s(""), false},
		{"is_number null", IsNumber, nil, false},
		{"is exact", Is("Complete"), s("Complete"), true},
		{"is other", Is("Complete"), s("complete"), false},
		{"is null", Is("Complete"), nil, false},
		{"is_in member", IsIn("a", "b"), s("b"), true},
		{"is_in other", IsIn("a", "b"), s("c"), false},
		{"is_in null", IsIn("a", "b"), nil, false},
		{"exists empty", Exists, s(""), true},
		{"exists null", Exists, nil, false},
		{"lacks null", Lacks, nil, true},
		{"lacks empty", Lacks, s(""), false},
		{"is_empty empty", IsEmpty, s(""), true},
		{"is_empty text", IsEmpty, s("x"), false},
		{"is_empty null", IsEmpty, nil, false},
		{"is_not_empty text", IsNotEmpty, s("x"), true},
		{"is_not_empty empty", IsNotEmpty, s(""), false},
		{"is_not_empty null", IsNotEmpty, nil, false},
		{"is_url accepts any text", IsURL, s("not a url"), true},
		{"is_url null", IsURL, nil, false},
		{"anything null", Anything, nil, true},
		{"anything text", Anything, s("x"), true},
		{"zero value", Arg{}, nil, true},
		{"or left", Or(Lacks, IsNumber), nil, true},
		{"or right", Or(Lacks, IsNumber), s("3"), true},
		{"or neither", Or(Lacks, IsNumber), s("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := tt.arg.Match(tt.value)
			assert.Equal(t, tt.expected, ok)
			assert.NotEmpty(t, msg)
			assert.Equal(t, tt.expected, tt.arg.Matches(tt.value))
		})
	}
}

func TestArg_Or_ReportsLeftReason(t *testing.T) {
	_, msg := Or(IsNumber, IsEmpty).Match(entry.Str("x"))
	assert.Equal(t, "expected number, found string", msg)
}

func TestArg_Match_IsPure(t *testing.T) {
	v := entry.Str("12")
	first, firstMsg := IsNumber.Match(v)
	second, secondMsg := IsNumber.Match(v)
	assert.Equal(t, first, second)
	assert.Equal(t, firstMsg, secondMsg)
	assert.Equal(t, "12", *v)
}

func TestArg_StringParseRoundTrip(t *testing.T) {
	args := []Arg{
		IsNumber, Exists, Lacks, IsEmpty, IsNotEmpty, IsURL, Anything,
		Is("Ask a question"),
		IsIn("post", "photo", "video"),
		Or(Lacks, IsNumber),
		Or(IsEmpty, Is("VisitAuto")),
		Or(Or(Lacks, IsEmpty), IsIn("a", "b")),
	}

	for _, a := range args {
		t.Run(a.String(), func(t *testing.T) {
			parsed, err := ParseArg(a.String())
			require.NoError(t, err)
			assert.Equal(t, a.String(), parsed.String())
		})
	}
}

func TestParseArg_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown", "is_a_teapot"},
		{"is without value", "is"},
		{"is_in without values", "is_in:"},
		{"value on nullary", "lacks:x"},
		{"or without comma", "or(lacks)"},
		{"or with bad child", "or(lacks,nope)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArg(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParseArg_EmptyIsAnything(t *testing.T) {
	a, err := ParseArg("  ")
	require.NoError(t, err)
	assert.Equal(t, "anything", a.String())
}
