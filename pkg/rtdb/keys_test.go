package rtdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareKeys(t *testing.T) {
	keys := []string{"b", "10", "-3", "a", "2", "007", "1718000000"}
	SortKeys(keys)
	assert.Equal(t, []string{"-3", "2", "10", "1718000000", "007", "a", "b"}, keys)
}

func TestApplyQuery(t *testing.T) {
	keys := []string{"1", "2", "3", "4", "5"}

	assert.Equal(t, []string{"4", "5"}, ApplyQuery(keys, Query{LimitToLast: 2}))
	assert.Equal(t, []string{"1", "2"}, ApplyQuery(keys, Query{LimitToFirst: 2}))
	assert.Equal(t, []string{"2", "3"}, ApplyQuery(keys, Query{EndBefore: "4", LimitToLast: 2}))
	assert.Equal(t, []string{"2", "3", "4"}, ApplyQuery(keys, Query{StartAt: "2", EndAt: "4"}))
	assert.Empty(t, ApplyQuery(keys, Query{StartAt: "9"}))
}

func TestNormalizePath(t *testing.T) {
	p, err := NormalizePath("/helmets/H1/latest/")
	require.NoError(t, err)
	assert.Equal(t, "helmets/H1/latest", p)

	p, err = NormalizePath("")
	require.NoError(t, err)
	assert.Equal(t, "", p)

	_, err = NormalizePath("helmets//H1")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = NormalizePath("users/a.b")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "helmets/H1/sensorData", Join("helmets", "/H1/", "", "sensorData"))
	assert.Equal(t, "", Join())
}

func TestFlattenAndBuild(t *testing.T) {
	generic, err := toGeneric(map[string]any{
		"location": "Shaft 2",
		"latest":   map[string]any{"temperature": 30.5, "panicAlert": false},
		"tags":     []string{"x", "y"},
		"empty":    map[string]any{},
		"gone":     nil,
	})
	require.NoError(t, err)

	leaves := map[string][]byte{}
	require.NoError(t, flatten("helmets/H1", generic, leaves))
	assert.Len(t, leaves, 5)
	assert.Equal(t, `"Shaft 2"`, string(leaves["helmets/H1/location"]))
	assert.Equal(t, `30.5`, string(leaves["helmets/H1/latest/temperature"]))

	v, err := encode(build("helmets/H1", leaves))
	require.NoError(t, err)
	assert.JSONEq(t, `{"location":"Shaft 2","latest":{"temperature":30.5,"panicAlert":false},"tags":["x","y"]}`, string(v))

	v, err = encode(build("helmets/H1/location", map[string][]byte{"helmets/H1/location": leaves["helmets/H1/location"]}))
	require.NoError(t, err)
	assert.JSONEq(t, `"Shaft 2"`, string(v))
}

func TestFlattenRejectsBadKeysAndRootScalar(t *testing.T) {
	leaves := map[string][]byte{}
	assert.ErrorIs(t, flatten("users", map[string]any{"a.b": 1}, leaves), ErrInvalidKey)
	assert.ErrorIs(t, flatten("", "scalar", leaves), ErrInvalidPath)
}

func TestValueExists(t *testing.T) {
	assert.False(t, Value(nil).Exists())
	assert.False(t, Value("null").Exists())
	assert.True(t, Value(`{}`).Exists())

	var out map[string]any
	require.NoError(t, Value(nil).Unmarshal(&out))
	assert.Nil(t, out)
}
