package workflow

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"digital.vasic.sweepbot/pkg/entry"
	"digital.vasic.sweepbot/pkg/settings"
)

func ids(ms []*entry.Method) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func TestOrder_StablePartition(t *testing.T) {
	methods := []entry.Method{
		{ID: "A"},
		{ID: "B", Mandatory: true},
		{ID: "C", ActionsRequired: 0},
		{ID: "D", Mandatory: true},
	}
	assert.Equal(t, []string{"B", "D", "A", "C"}, ids(Order(methods)))
}

func TestOrder_KeepsActionsRequiredOrder(t *testing.T) {
	methods := []entry.Method{
		{ID: "A", ActionsRequired: 3},
		{ID: "B", ActionsRequired: 0},
	}
	assert.Equal(t, []string{"A", "B"}, ids(Order(methods)))
}

func TestNewRunState_CountsMandatory(t *testing.T) {
	g := giveaway(
		entry.Method{ID: "1", Mandatory: true},
		entry.Method{ID: "2", Mandatory: true},
		entry.Method{ID: "3"},
	)
	c := contestant()
	c.Entered = map[string]json.RawMessage{"1": json.RawMessage("{}")}
	st := NewRunState(&g, entry.NewSession(&c))

	assert.Equal(t, 2, st.TotalMandatory)
	assert.Equal(t, 1, st.CompletedMandatory)
	assert.True(t, st.MandatoryPending())
	assert.True(t, st.Completed("1"))
	assert.False(t, st.Completed("3"))

	st.Accept(&g.EntryMethods[1], 5)
	assert.False(t, st.MandatoryPending())
	assert.Equal(t, 1, st.ActionsNumber)
	assert.Equal(t, 5, st.WorthGained)
}

func TestRunState_Percent(t *testing.T) {
	g := giveaway(entry.Method{ID: "1"}, entry.Method{ID: "2"}, entry.Method{ID: "3"})
	st := NewRunState(&g, entry.NewSession(nil))
	assert.Equal(t, 33, st.Advance())
	assert.Equal(t, 66, st.Advance())
	assert.Equal(t, 100, st.Advance())

	empty := NewRunState(&entry.Giveaway{}, entry.NewSession(nil))
	assert.Equal(t, 100, empty.Percent())
}

func TestRunState_BuildMaps(t *testing.T) {
	all := []entry.Method{
		{ID: "X"},
		{ID: "Y", Provider: "twitter", RequiresDetails: true},
		{ID: "Z"},
		{ID: "W", Provider: "twitter", RequiresDetails: true},
		{ID: "V", Provider: "instagram", RequiresDetails: true},
	}
	prefs := settings.Preferences{TwitterUsername: "me"}
	fill := func(p string) (any, bool) { return DefaultFillers().Fill(p, prefs) }
	filler := map[string]any{"twitter_username": "me"}

	st := NewRunState(&entry.Giveaway{EntryMethods: all}, entry.NewSession(nil))

	explicit, form := st.BuildMaps(all, &all[0], Details{}, fill)
	assert.Empty(t, explicit)
	if diff := cmp.Diff(map[string]any{"Y": filler, "W": filler}, form); diff != "" {
		t.Errorf("first form map mismatch (-want +got):\n%s", diff)
	}

	st.BuildMaps(all, &all[1], Details{Value: filler, Explicit: true, Form: true}, fill)

	explicit, form = st.BuildMaps(
		all, &all[2], Details{Value: "Done", Explicit: true}, fill,
	)
	wantExplicit := map[string]any{"X": nil, "Y": nil, "Z": "Done"}
	wantForm := map[string]any{"X": nil, "Y": nil, "W": filler}
	if diff := cmp.Diff(wantExplicit, explicit); diff != "" {
		t.Errorf("explicit map mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantForm, form); diff != "" {
		t.Errorf("form map mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"X", "Y", "Z"}, st.MadeRequests)
}

func TestFillerRegistry(t *testing.T) {
	r := DefaultFillers()
	v, ok := r.Fill("twitter", settings.Preferences{TwitterUsername: "me"})
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"twitter_username": "me"}, v)

	_, ok = r.Fill("instagram", settings.Preferences{})
	assert.False(t, ok)

	r.Register("instagram", func(p settings.Preferences) any { return "ig" })
	v, ok = r.Fill("instagram", settings.Preferences{})
	assert.True(t, ok)
	assert.Equal(t, "ig", v)
	assert.Equal(t, []string{"instagram", "twitter"}, r.Providers())
}
