package entry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_FromContestant(t *testing.T) {
	raw := `{
		"id": 4242,
		"name": "Jo",
		"entered": {"e1": [], "e2": []},
		"authentications": [
			{"id": 1, "provider": "twitter", "uid": "1", "expired": false},
			{"id": 2, "provider": "twitchtv", "uid": "2", "expired": true}
		],
		"viral_share_paths": {"b": "/s/b", "a": "/s/a"}
	}`

	var c Contestant
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	require.True(t, c.LoggedIn())

	s := NewSession(&c)
	assert.Equal(t, uint64(4242), s.ContestantID)
	assert.True(t, s.Completed["e1"])
	assert.True(t, s.Completed["e2"])
	assert.False(t, s.Completed["e3"])
	assert.True(t, s.Linked("twitter"))
	assert.False(t, s.Linked("twitchtv"))
	assert.False(t, s.Linked("facebook"))

	path, ok := c.FirstSharePath()
	assert.True(t, ok)
	assert.Equal(t, "/s/a", path)
}

func TestNewSession_LiveLinkWins(t *testing.T) {
	c := &Contestant{
		ID: 1,
		Authentications: []Authentication{
			{Provider: "twitter", Expired: false},
			{Provider: "twitter", Expired: true},
		},
	}
	assert.True(t, NewSession(c).Linked("twitter"))
}

func TestContestant_Disconnected(t *testing.T) {
	var ic InitContestant
	err := json.Unmarshal(
		[]byte(`{"contestant":{"entered":{},"claims":{}}}`), &ic,
	)
	require.NoError(t, err)
	assert.False(t, ic.Contestant.LoggedIn())

	var nilContestant *Contestant
	assert.False(t, nilContestant.LoggedIn())
	assert.Empty(t, NewSession(nil).Completed)
}

func TestContestant_Details(t *testing.T) {
	dob := "1984-02-29"
	tests := []struct {
		name       string
		contestant Contestant
		wantFirst  string
		wantLast   string
		wantDOB    string
	}{
		{
			name:       "full name without stored birth date",
			contestant: Contestant{Name: "Ada King Lovelace", Email: "ada@example.com"},
			wantFirst:  "Ada",
			wantLast:   "King Lovelace",
			wantDOB:    DefaultDateOfBirth,
		},
		{
			name:       "single word with stored birth date",
			contestant: Contestant{Name: "Ada", StoredDOB: &dob},
			wantFirst:  "Ada",
			wantLast:   "",
			wantDOB:    dob,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.contestant.Details()
			assert.Equal(t, tt.wantFirst, d.FirstName)
			assert.Equal(t, tt.wantLast, d.LastName)
			assert.Equal(t, tt.contestant.Name, d.Name)
			assert.Equal(t, tt.contestant.Email, d.Email)
			assert.Equal(t, tt.wantDOB, d.DateOfBirth)
			assert.Equal(t, tt.wantDOB, d.StoredDOB)
			assert.False(t, d.SendConfirmation)
		})
	}
}

func TestContestantDetails_JSON(t *testing.T) {
	c := Contestant{Name: "Jo Doe", Email: "jo@example.com"}
	data, err := json.Marshal(c.Details())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"competition_subscription": null,
		"date_of_birth": "1950-01-01",
		"email": "jo@example.com",
		"firstname": "Jo",
		"lastname": "Doe",
		"name": "Jo Doe",
		"send_confirmation": false,
		"stored_dob": "1950-01-01"
	}`, string(data))
}
