package entry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethod_UnmarshalJSON(t *testing.T) {
	raw := `{
		"id": "123",
		"entry_type": "twitter_follow",
		"provider": "twitter",
		"mandatory": true,
		"requires_details": true,
		"requires_authentication": true,
		"actions_required": 2,
		"timer_action": 10,
		"worth": 3,
		"config1": "gleamapp",
		"config2": "5",
		"config3": null,
		"workflow": null,
		"template": ""
	}`

	var m Method
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	assert.Equal(t, "123", m.ID)
	assert.Equal(t, "twitter_follow", m.EntryType)
	assert.True(t, m.Mandatory)
	assert.Equal(t, 2, m.ActionsRequired)
	assert.Equal(t, "gleamapp", Deref(m.Config(1)))
	assert.Nil(t, m.Config(3))
	assert.Nil(t, m.Workflow)
	assert.Equal(t, "", m.Template)

	secs, ok := m.TimerSeconds()
	assert.True(t, ok)
	assert.Equal(t, 10, secs)
}

func TestMethod_Config_Slots(t *testing.T) {
	var m Method
	for i := 1; i <= ConfigSlots; i++ {
		m.SetConfig(i, Str(string(rune('a'+i-1))))
	}

	configs := m.Configs()
	for i := 1; i <= ConfigSlots; i++ {
		require.NotNil(t, m.Config(i))
		assert.Equal(t, string(rune('a'+i-1)), *m.Config(i))
		assert.Same(t, m.Config(i), configs[i-1])
	}
	assert.Nil(t, m.Config(0))
	assert.Nil(t, m.Config(10))
}

func TestMethod_TimerSeconds(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
		ok       bool
	}{
		{name: "absent", raw: "", ok: false},
		{name: "null", raw: "null", ok: false},
		{name: "number", raw: "30", expected: 30, ok: true},
		{name: "numeric string", raw: `"12"`, expected: 12, ok: true},
		{name: "text", raw: `"soon"`, ok: false},
		{name: "negative", raw: "-4", ok: false},
		{name: "object", raw: `{"s":1}`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Method{}
			if tt.raw != "" {
				m.TimerAction = json.RawMessage(tt.raw)
			}
			secs, ok := m.TimerSeconds()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, secs)
		})
	}
}

func TestShortener_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wellKnown bool
	}{
		{
			name:      "well known",
			raw:       `{"url":"https://wn.nr","username":"u","api_key":"k"}`,
			wellKnown: true,
		},
		{
			name:      "strange",
			raw:       `{"url":"https://x","method":"GET","type":"json"}`,
			wellKnown: false,
		},
		{name: "null", raw: `null`, wellKnown: false},
		{name: "string", raw: `"bitly"`, wellKnown: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Campaign
			err := json.Unmarshal(
				[]byte(`{"key":"abc","shortener":`+tt.raw+`}`), &c,
			)
			require.NoError(t, err)
			assert.Equal(t, tt.wellKnown, c.Shortener.WellKnown())
			assert.JSONEq(t, tt.raw, string(c.Shortener.Raw))
		})
	}
}

func TestGiveaway_TotalMandatory(t *testing.T) {
	g := Giveaway{EntryMethods: []Method{
		{ID: "a", Mandatory: true},
		{ID: "b"},
		{ID: "c", Mandatory: true},
	}}
	assert.Equal(t, 2, g.TotalMandatory())
}

func TestMethod_UnmarshalJSON_NumericID(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`{"id": 987654, "entry_type": "x"}`, "987654"},
		{`{"id": "abc", "entry_type": "x"}`, "abc"},
		{`{"entry_type": "x"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var m Method
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &m))
			assert.Equal(t, tt.want, m.ID)
			assert.Equal(t, "x", m.EntryType)
		})
	}

	var m Method
	assert.Error(t, json.Unmarshal([]byte(`{"id": true}`), &m))
}
