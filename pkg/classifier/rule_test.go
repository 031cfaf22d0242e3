package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.sweepbot/pkg/entry"
)

func TestRule_Match_TagShortCircuits(t *testing.T) {
	m := record("twitter_follow", nil, "", nil)

	mm := twitchFollow.Match(m)
	require.NotNil(t, mm)
	assert.Equal(t, "entry_type", mm.Field)
	assert.Equal(t, "entry_type: does not match", mm.Error())
}

func TestRule_Match_ReportsFirstFailingField(t *testing.T) {
	s := entry.Str

	tests := []struct {
		name  string
		m     *entry.Method
		field string
	}{
		{
			name:  "workflow",
			m:     record("twitchtv_follow", s("x"), "", nil),
			field: "workflow",
		},
		{
			name:  "template",
			m:     record("twitchtv_follow", nil, "x", nil),
			field: "template",
		},
		{
			name:  "method_type",
			m:     record("twitchtv_follow", nil, "", s("x")),
			field: "method_type",
		},
		{
			name:  "config1 before config2",
			m:     record("twitchtv_follow", nil, "", nil, nil, s("x")),
			field: "config1",
		},
		{
			name: "config9",
			m: record("twitchtv_follow", nil, "", nil,
				s("ch"), s("1"), nil, nil, nil, nil, nil, nil, nil),
			field: "config9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mm := twitchFollow.Match(tt.m)
			require.NotNil(t, mm)
			assert.Equal(t, tt.field, mm.Field)
			assert.NotEmpty(t, mm.Reason)
		})
	}
}

func TestRule_Match_AllFieldsRequired(t *testing.T) {
	s := entry.Str
	m := record("twitchtv_follow", nil, "", nil,
		s("ch"), s("1"), nil, nil, nil, nil, nil, nil, s(""))

	assert.Nil(t, twitchFollow.Match(m))
	assert.True(t, twitchFollow.Matches(m))
}
