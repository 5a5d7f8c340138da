package cell_test

import (
	"testing"

	"github.com/delaneyj/signalcell/cell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDisabledByDefault(t *testing.T) {
	rt := cell.NewRuntime()
	cell.Signal(rt, 1, cell.Named("count"))

	assert.Nil(t, rt.Signals())
	_, ok := rt.Lookup("count")
	assert.False(t, ok)
}

func TestRegistryListsSignals(t *testing.T) {
	rt := cell.NewRuntime(cell.WithRegistry())
	count := cell.Signal(rt, 1, cell.Named("count"))
	todo := cell.Object(rt, map[string]any{"done": false}, cell.Named("todo"))
	anon := cell.Create(rt, "x")

	count.SubscribeFunc(func() {})
	todo.Get().Set("done", true)

	infos := rt.Signals()
	require.Len(t, infos, 3)
	assert.Equal(t, cell.SignalInfo{ID: count.ID(), Name: "count", Listeners: 1, Version: 0}, infos[0])
	assert.Equal(t, cell.SignalInfo{ID: todo.ID(), Name: "todo", Listeners: 0, Version: 1}, infos[1])
	assert.Equal(t, anon.ID(), infos[2].ID)
	assert.Empty(t, infos[2].Name)
}

func TestRegistryLookup(t *testing.T) {
	rt := cell.NewRuntime(cell.WithRegistry())
	count := cell.Signal(rt, 1, cell.Named("count"))
	cell.Signal(rt, 2, cell.Named("count"))

	d, ok := rt.Lookup("count")
	require.True(t, ok)
	assert.Equal(t, count.ID(), d.ID())
	assert.Equal(t, 1, d.PeekAny())

	_, ok = rt.Lookup("missing")
	assert.False(t, ok)
	_, ok = rt.Lookup("")
	assert.False(t, ok)
}
