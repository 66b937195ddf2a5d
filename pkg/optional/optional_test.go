package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profilePatch struct {
	Birthday Update[string] `json:"birthday"`
	City     Update[string] `json:"birth_city"`
	Country  Update[string] `json:"birth_country"`
	Message  Value[string]  `json:"message"`
}

func TestUpdate_WireStates(t *testing.T) {
	var patch profilePatch
	require.NoError(t, json.Unmarshal([]byte(`{"birthday":[["1990-05-01"]],"birth_city":[[]],"message":[]}`), &patch))

	assert.Equal(t, SetTo, patch.Birthday.Kind())
	v, ok := patch.Birthday.Value()
	assert.True(t, ok)
	assert.Equal(t, "1990-05-01", v)

	assert.Equal(t, Cleared, patch.City.Kind())
	assert.Equal(t, Unchanged, patch.Country.Kind(), "absent field is unchanged")
	assert.False(t, patch.Message.IsSet())
}

func TestUpdate_Apply(t *testing.T) {
	current := Some("Lyon")

	assert.Equal(t, current, Keep[string]().Apply(current))
	assert.False(t, Clear[string]().Apply(current).IsSet())
	assert.Equal(t, "Paris", Set("Paris").Apply(current).OrElse(""))

	_, ok := Clear[string]().ApplyRequired("Jane")
	assert.False(t, ok, "required fields cannot be cleared")
	got, ok := Set("Janet").ApplyRequired("Jane")
	assert.True(t, ok)
	assert.Equal(t, "Janet", got)
}

func TestUpdate_MarshalRoundTrip(t *testing.T) {
	for name, u := range map[string]Update[int]{
		"unchanged": Keep[int](),
		"cleared":   Clear[int](),
		"set":       Set(7),
	} {
		t.Run(name, func(t *testing.T) {
			raw, err := json.Marshal(u)
			require.NoError(t, err)
			var back Update[int]
			require.NoError(t, json.Unmarshal(raw, &back))
			assert.Equal(t, u, back)
		})
	}
}

func TestValue_JSON(t *testing.T) {
	raw, err := json.Marshal(Some("hello"))
	require.NoError(t, err)
	assert.JSONEq(t, `["hello"]`, string(raw))

	raw, err = json.Marshal(None[string]())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))

	var v Value[string]
	require.Error(t, json.Unmarshal([]byte(`["a","b"]`), &v))
	require.Error(t, json.Unmarshal([]byte(`"a"`), &v))

	assert.Nil(t, None[string]().Ptr())
	s := "x"
	assert.Equal(t, Some("x"), FromPtr(&s))
}
