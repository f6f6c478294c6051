// Package storetest holds the behaviour every rtdb.Store backend must share.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/rtdb"
)

type Factory func(t *testing.T) rtdb.Store

type reading struct {
	Timestamp   int64    `json:"timestamp"`
	Temperature float64  `json:"temperature"`
	PanicAlert  bool     `json:"panicAlert"`
	Tags        []string `json:"tags,omitempty"`
}

func Run(t *testing.T, newStore Factory) {
	t.Run("SetGet", func(t *testing.T) { testSetGet(t, newStore(t)) })
	t.Run("SetReplacesSubtree", func(t *testing.T) { testSetReplacesSubtree(t, newStore(t)) })
	t.Run("UpdateMergesAndDeletes", func(t *testing.T) { testUpdate(t, newStore(t)) })
	t.Run("Remove", func(t *testing.T) { testRemove(t, newStore(t)) })
	t.Run("PushOrdering", func(t *testing.T) { testPush(t, newStore(t)) })
	t.Run("ChildrenQuery", func(t *testing.T) { testChildrenQuery(t, newStore(t)) })
	t.Run("Transaction", func(t *testing.T) { testTransaction(t, newStore(t)) })
	t.Run("ScalarReplacedByChild", func(t *testing.T) { testScalarReplacedByChild(t, newStore(t)) })
}

func testSetGet(t *testing.T, s rtdb.Store) {
	ctx := context.Background()

	in := reading{Timestamp: 1718000000, Temperature: 31.5, PanicAlert: true, Tags: []string{"a", "b"}}
	require.NoError(t, s.Set(ctx, "helmets/H1/latest", in))

	var out reading
	found, err := rtdb.GetInto(ctx, s, "helmets/H1/latest", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)

	var temp float64
	found, err = rtdb.GetInto(ctx, s, "helmets/H1/latest/temperature", &temp)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 31.5, temp)

	v, err := s.Get(ctx, "helmets/H2")
	require.NoError(t, err)
	assert.False(t, v.Exists())

	var helmets map[string]map[string]reading
	found, err = rtdb.GetInto(ctx, s, "helmets", &helmets)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, helmets["H1"]["latest"])
}

func testSetReplacesSubtree(t *testing.T, s rtdb.Store) {
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "employees/E1", map[string]any{"first_name": "Tendai", "department": "Drilling"}))
	require.NoError(t, s.Set(ctx, "employees/E1", map[string]any{"first_name": "Rudo"}))

	var out map[string]any
	_, err := rtdb.GetInto(ctx, s, "employees/E1", &out)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"first_name": "Rudo"}, out)

	require.NoError(t, s.Set(ctx, "employees/E1", nil))
	v, err := s.Get(ctx, "employees/E1")
	require.NoError(t, err)
	assert.False(t, v.Exists())
}

func testUpdate(t *testing.T, s rtdb.Store) {
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "alerts/1", map[string]any{"message": "gas", "resolved": false, "duration": "N/A"}))
	require.NoError(t, s.Update(ctx, "alerts/1", map[string]any{
		"resolved": true,
		"duration": nil,
		"meta/by":  "ops",
	}))

	var out map[string]any
	_, err := rtdb.GetInto(ctx, s, "alerts/1", &out)
	require.NoError(t, err)
	assert.Equal(t, "gas", out["message"])
	assert.Equal(t, true, out["resolved"])
	assert.NotContains(t, out, "duration")
	assert.Equal(t, map[string]any{"by": "ops"}, out["meta"])

	require.NoError(t, s.Update(ctx, "alerts/1", map[string]any{}))
}

func testRemove(t *testing.T, s rtdb.Store) {
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "helmets/H1/assignment", map[string]any{"employeeId": "E1"}))
	require.NoError(t, s.Set(ctx, "helmets/H1/location", "Shaft 3"))
	require.NoError(t, s.Set(ctx, "helmets/H10/location", "Shaft 9"))
	require.NoError(t, s.Remove(ctx, "helmets/H1/assignment"))

	v, err := s.Get(ctx, "helmets/H1/assignment")
	require.NoError(t, err)
	assert.False(t, v.Exists())

	var loc string
	found, err := rtdb.GetInto(ctx, s, "helmets/H1/location", &loc)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Shaft 3", loc)

	require.NoError(t, s.Remove(ctx, "helmets/H1"))
	found, err = rtdb.GetInto(ctx, s, "helmets/H10/location", &loc)
	require.NoError(t, err)
	assert.True(t, found, "removing H1 must not touch H10")

	require.NoError(t, s.Remove(ctx, "does/not/exist"))
}

func testPush(t *testing.T, s rtdb.Store) {
	ctx := context.Background()

	var keys []string
	for i := range 5 {
		key, err := s.Push(ctx, "loginHistory/U1", map[string]any{"n": i})
		require.NoError(t, err)
		keys = append(keys, key)
	}

	nodes, err := s.Children(ctx, "loginHistory/U1", rtdb.Query{})
	require.NoError(t, err)
	require.Len(t, nodes, 5)
	for i, n := range nodes {
		assert.Equal(t, keys[i], n.Key)
		var body map[string]int
		require.NoError(t, n.Value.Unmarshal(&body))
		assert.Equal(t, i, body["n"])
	}
}

func testChildrenQuery(t *testing.T, s rtdb.Store) {
	ctx := context.Background()

	for _, ts := range []int64{1718000300, 1718000100, 1718000200, 1718000400, 1718000500} {
		require.NoError(t, s.Set(ctx, rtdb.Join("helmets/H1/sensorData", itoa(ts)), reading{Timestamp: ts}))
	}

	keysOf := func(nodes []rtdb.Node) []string {
		out := make([]string, len(nodes))
		for i, n := range nodes {
			out[i] = n.Key
		}
		return out
	}

	nodes, err := s.Children(ctx, "helmets/H1/sensorData", rtdb.Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1718000100", "1718000200", "1718000300", "1718000400", "1718000500"}, keysOf(nodes))

	nodes, err = s.Children(ctx, "helmets/H1/sensorData", rtdb.Query{LimitToLast: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"1718000400", "1718000500"}, keysOf(nodes))

	nodes, err = s.Children(ctx, "helmets/H1/sensorData", rtdb.Query{EndBefore: "1718000400", LimitToLast: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"1718000200", "1718000300"}, keysOf(nodes))

	nodes, err = s.Children(ctx, "helmets/H1/sensorData", rtdb.Query{StartAt: "1718000200", EndAt: "1718000400"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1718000200", "1718000300", "1718000400"}, keysOf(nodes))

	nodes, err = s.Children(ctx, "helmets/H1/sensorData", rtdb.Query{LimitToFirst: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"1718000100"}, keysOf(nodes))

	nodes, err = s.Children(ctx, "helmets/H9/sensorData", rtdb.Query{})
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

var errAlreadyActive = errors.New("already active")

func testTransaction(t *testing.T, s rtdb.Store) {
	ctx := context.Background()

	claim := func(current rtdb.Value) (any, error) {
		if current.Exists() {
			var cur map[string]any
			if err := current.Unmarshal(&cur); err != nil {
				return nil, err
			}
			if cur["status"] == "active" {
				return nil, errAlreadyActive
			}
		}
		return map[string]any{"status": "active", "employeeId": "E1"}, nil
	}

	require.NoError(t, s.Transaction(ctx, "assignments/H1", claim))
	err := s.Transaction(ctx, "assignments/H1", claim)
	assert.ErrorIs(t, err, errAlreadyActive)

	var cur map[string]any
	_, err = rtdb.GetInto(ctx, s, "assignments/H1", &cur)
	require.NoError(t, err)
	assert.Equal(t, "E1", cur["employeeId"])

	require.NoError(t, s.Update(ctx, "assignments/H1", map[string]any{"status": "inactive"}))
	require.NoError(t, s.Transaction(ctx, "assignments/H1", claim))
}

func testScalarReplacedByChild(t *testing.T, s rtdb.Store) {
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "helmets/H1", "placeholder"))
	require.NoError(t, s.Set(ctx, "helmets/H1/location", "Shaft 1"))

	var out map[string]any
	_, err := rtdb.GetInto(ctx, s, "helmets/H1", &out)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"location": "Shaft 1"}, out)
}
