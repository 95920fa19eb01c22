package omit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalAbsentKey(t *testing.T) {
	var data struct {
		Name Omit[string] `json:"name"`
		Open Omit[bool]   `json:"open"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"name":"basement"}`), &data))

	assert.True(t, data.Name.OK)
	assert.Equal(t, "basement", data.Name.Value)
	assert.False(t, data.Open.OK)
}

func TestUnmarshalZeroValues(t *testing.T) {
	var data struct {
		Name Omit[string] `json:"name"`
		Open Omit[bool]   `json:"open"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"name":"","open":false}`), &data))

	assert.True(t, data.Name.OK, "empty string should still count as set")
	assert.Equal(t, "", data.Name.Value)
	assert.True(t, data.Open.OK, "false should still count as set")
	assert.False(t, data.Open.Value)
}

func TestUnmarshalNull(t *testing.T) {
	var data struct {
		Name Omit[string] `json:"name"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"name":null}`), &data))

	assert.True(t, data.Name.OK)
	assert.Equal(t, "", data.Name.Value)
}

func TestUnmarshalTypeMismatch(t *testing.T) {
	var data struct {
		Open Omit[bool] `json:"open"`
	}

	assert.Error(t, json.Unmarshal([]byte(`{"open":"yes"}`), &data))
}

func TestMarshal(t *testing.T) {
	data := struct {
		Name Omit[string] `json:"name,omitzero"`
		Open Omit[bool]   `json:"open,omitzero"`
	}{
		Open: New(false),
	}

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	assert.JSONEq(t, `{"open":false}`, string(raw))
}

func TestNewZero(t *testing.T) {
	o := NewZero[int]()

	assert.False(t, o.OK)
	assert.True(t, o.IsZero())
}
