package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueMarshalBareJSON(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{String("pebble_blue"), `"pebble_blue"`},
		{Bool(true), `true`},
		{Int(2), `2`},
		{List("rock_waterfall", "deck_jets"), `["rock_waterfall","deck_jets"]`},
		{List(), `[]`},
	}

	for _, tc := range cases {
		data, err := json.Marshal(tc.value)
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(data))
	}
}

func TestValueUnmarshalRoundTrip(t *testing.T) {
	original := Selections{
		"finish":         String("pebble_blue"),
		"attached_spa":   Bool(true),
		"lounger_count":  Int(3),
		"water_features": List("rock_waterfall"),
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var restored Selections
	require.NoError(t, json.Unmarshal(data, &restored))

	require.Len(t, restored, len(original))
	for key, want := range original {
		assert.True(t, restored[key].Equal(want), "key %s: got %+v", key, restored[key])
	}
}

func TestValueUnmarshalNumberBecomesInt(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`4`), &v))

	assert.Equal(t, KindInt, v.Kind)
	assert.Equal(t, 4, v.Int)
}

func TestValueUnmarshalNullBecomesEmptyString(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`null`), &v))

	assert.Equal(t, KindString, v.Kind)
	assert.True(t, v.IsZero())
}

func TestValueIsZero(t *testing.T) {
	assert.True(t, String("").IsZero())
	assert.False(t, String("rectangle").IsZero())
	assert.True(t, List().IsZero())
	assert.False(t, List("bubblers").IsZero())

	// Explicit false and zero are deliberate answers, not unset.
	assert.False(t, Bool(false).IsZero())
	assert.False(t, Int(0).IsZero())
}

func TestSelectionsCloneIsIndependent(t *testing.T) {
	original := Selections{"size": String("classic")}
	clone := original.Clone()

	clone["size"] = String("grand")

	assert.True(t, original["size"].Equal(String("classic")))
}
