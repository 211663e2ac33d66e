package model

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulation(t *testing.T, rows, cols int, opts ...Option) *Simulation {
	t.Helper()
	sim, err := NewSimulation(rows, cols, opts...)
	require.NoError(t, err)
	return sim
}

func assertInitial(t *testing.T, s State) {
	t.Helper()
	assert.Equal(t, 0, s.Generation)
	assert.Equal(t, 0, s.Population())
	assert.True(t, s.IsPaused)
	assert.False(t, s.IsStillLife)
	assert.Equal(t, StatusReady, s.Status())
}

func TestNewSimulation(t *testing.T) {
	sim := newTestSimulation(t, 6, 4)
	state := sim.State()
	assertInitial(t, state)
	assert.Equal(t, 6, state.Grid.Rows())
	assert.Equal(t, 4, state.Grid.Cols())

	_, err := NewSimulation(0, 4)
	assert.True(t, errors.Is(err, ErrInvalidDimension))
}

func TestReset(t *testing.T) {
	sim := newTestSimulation(t, 6, 6)
	require.NoError(t, sim.Place(Glider, 1, 1))
	sim.SetPaused(false)
	for range 5 {
		sim.AdvanceGeneration()
	}
	require.NotZero(t, sim.State().Generation)

	sim.Reset()
	assertInitial(t, sim.State())
}

func TestToggleCell(t *testing.T) {
	sim := newTestSimulation(t, 3, 3)
	original := sim.State().Grid

	require.NoError(t, sim.ToggleCell(1, 2))
	alive, err := sim.State().Grid.Get(1, 2)
	require.NoError(t, err)
	assert.True(t, alive)
	assert.Equal(t, StatusPaused, sim.State().Status())

	require.NoError(t, sim.ToggleCell(1, 2))
	assert.True(t, original.Equals(sim.State().Grid))
	assert.Equal(t, 0, sim.State().Generation)
	assert.True(t, sim.State().IsPaused)
}

func TestActivateDeactivateIdempotent(t *testing.T) {
	sim := newTestSimulation(t, 3, 3)

	require.NoError(t, sim.ActivateCell(0, 0))
	require.NoError(t, sim.ActivateCell(0, 0))
	assert.Equal(t, 1, sim.State().Population())

	require.NoError(t, sim.DeactivateCell(0, 0))
	require.NoError(t, sim.DeactivateCell(0, 0))
	assert.Equal(t, 0, sim.State().Population())
}

func TestCellCommandsOutOfBounds(t *testing.T) {
	sim := newTestSimulation(t, 3, 3)
	before := sim.State()

	commands := map[string]func(row, col int) error{
		"toggle":     sim.ToggleCell,
		"activate":   sim.ActivateCell,
		"deactivate": sim.DeactivateCell,
	}
	for name, cmd := range commands {
		err := cmd(3, 0)
		assert.True(t, errors.Is(err, ErrOutOfBounds), "%s: %v", name, err)
		err = cmd(0, -1)
		assert.True(t, errors.Is(err, ErrOutOfBounds), "%s: %v", name, err)
	}
	assert.Equal(t, before, sim.State())
}

func TestSetPaused(t *testing.T) {
	sim := newTestSimulation(t, 4, 4)

	sim.SetPaused(false)
	assert.False(t, sim.State().IsPaused)
	assert.Equal(t, StatusProgressing, sim.State().Status())

	sim.SetPaused(false)
	assert.False(t, sim.State().IsPaused)

	sim.TogglePaused()
	assert.True(t, sim.State().IsPaused)
	sim.TogglePaused()
	assert.False(t, sim.State().IsPaused)
}

func TestSetPausedKeepsStillLife(t *testing.T) {
	sim := newTestSimulation(t, 4, 4)
	require.NoError(t, sim.Place(Block, 1, 1))
	sim.SetPaused(false)
	sim.AdvanceGeneration()
	require.True(t, sim.State().IsStillLife)

	sim.SetPaused(true)
	assert.True(t, sim.State().IsStillLife)
	assert.Equal(t, StatusReady, sim.State().Status())
}

func TestAdvanceGenerationEmptyBoard(t *testing.T) {
	sim := newTestSimulation(t, 5, 5)
	for i := 1; i <= 3; i++ {
		sim.AdvanceGeneration()
		state := sim.State()
		assert.Equal(t, i, state.Generation)
		assert.Equal(t, 0, state.Population())
		assert.False(t, state.IsStillLife)
		assert.Equal(t, StatusDied, state.Status())
	}
}

func TestAdvanceGenerationBlock(t *testing.T) {
	sim := newTestSimulation(t, 6, 6)
	require.NoError(t, sim.Place(Block, 2, 2))
	before := sim.State().Grid

	sim.AdvanceGeneration()
	state := sim.State()
	assert.True(t, state.IsStillLife)
	assert.True(t, before.Equals(state.Grid))
	assert.Equal(t, 1, state.Generation)
	assert.Equal(t, StatusReady, state.Status())
}

func TestAdvanceGenerationBlinker(t *testing.T) {
	sim := newTestSimulation(t, 5, 5)
	require.NoError(t, sim.Place(Blinker, 2, 1))
	start := sim.State().Grid

	for i := 1; i <= 6; i++ {
		sim.AdvanceGeneration()
		state := sim.State()
		assert.Equal(t, 3, state.Population())
		assert.False(t, state.IsStillLife, "generation %d", i)
		assert.Equal(t, i%2 == 0, start.Equals(state.Grid), "generation %d", i)
	}
}

func TestAdvanceGenerationIsPure(t *testing.T) {
	a := newTestSimulation(t, 8, 8)
	b := newTestSimulation(t, 8, 8, WithParallelStep(3))
	for _, sim := range []*Simulation{a, b} {
		require.NoError(t, sim.Place(Glider, 0, 0))
		require.NoError(t, sim.Place(Toad, 4, 3))
	}

	for range 10 {
		a.AdvanceGeneration()
		b.AdvanceGeneration()
		assert.True(t, a.State().Grid.Equals(b.State().Grid), "\n%s\n\n%s", a.State().Grid, b.State().Grid)
	}
}

func TestSnapshotsAreImmutable(t *testing.T) {
	sim := newTestSimulation(t, 5, 5)
	require.NoError(t, sim.Place(Blinker, 2, 1))
	snapshot := sim.State()
	text := snapshot.Grid.String()

	sim.AdvanceGeneration()
	require.NoError(t, sim.ToggleCell(0, 0))
	sim.Reset()

	assert.Equal(t, text, snapshot.Grid.String())
	assert.Equal(t, 0, snapshot.Generation)
}

func TestStep(t *testing.T) {
	sim := newTestSimulation(t, 5, 5)
	require.NoError(t, sim.Place(Blinker, 2, 1))
	sim.SetPaused(false)

	var seen []State
	sim.Subscribe(func(s State) { seen = append(seen, s) })

	sim.Step()
	require.Len(t, seen, 1)
	assert.True(t, seen[0].IsPaused)
	assert.Equal(t, 1, seen[0].Generation)
}

func TestSubscribe(t *testing.T) {
	var fromOption []State
	sim := newTestSimulation(t, 4, 4, WithListener(func(s State) { fromOption = append(fromOption, s) }))

	var seen []State
	unsubscribe := sim.Subscribe(func(s State) {
		// listeners run after the swap
		assert.Equal(t, s, sim.State())
		seen = append(seen, s)
	})

	require.NoError(t, sim.ActivateCell(0, 0))
	sim.SetPaused(false)
	sim.AdvanceGeneration()
	require.Error(t, sim.ToggleCell(9, 9))

	require.Len(t, seen, 3)
	assert.Equal(t, 1, seen[0].Population())
	assert.False(t, seen[1].IsPaused)
	assert.Equal(t, 1, seen[2].Generation)
	assert.Len(t, fromOption, 3)

	unsubscribe()
	sim.Reset()
	assert.Len(t, seen, 3)
	assert.Len(t, fromOption, 4)

	// nil listeners are ignored
	sim.Subscribe(nil)()
	sim.Reset()
}

func TestPlace(t *testing.T) {
	sim := newTestSimulation(t, 5, 5)
	require.NoError(t, sim.Place(Glider, 1, 1))
	assert.Equal(t, ".....\n..#..\n...#.\n.###.\n.....", sim.State().Grid.String())

	before := sim.State()
	err := sim.Place(Glider, 3, 3)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.Equal(t, before, sim.State())
}

func TestDiedAfterPause(t *testing.T) {
	sim := newTestSimulation(t, 3, 3)
	require.NoError(t, sim.ActivateCell(1, 1))
	sim.SetPaused(false)
	sim.AdvanceGeneration()
	assert.Equal(t, StatusProgressing, sim.State().Status())

	sim.SetPaused(true)
	assert.Equal(t, StatusDied, sim.State().Status())
}

func TestListenersRunInSubscriptionOrder(t *testing.T) {
	sim := newTestSimulation(t, 3, 3)

	var order []int
	for i := range 8 {
		sim.Subscribe(func(State) { order = append(order, i) })
	}
	sim.TogglePaused()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, order)
}

func TestListenerIssuingCommand(t *testing.T) {
	sim := newTestSimulation(t, 5, 5)
	require.NoError(t, sim.Place(Blinker, 2, 1))

	var first, last []State
	sim.Subscribe(func(s State) { first = append(first, s) })
	sim.Subscribe(func(s State) {
		// stop after one generation
		if s.Generation == 1 && !s.IsPaused {
			sim.SetPaused(true)
		}
	})
	sim.Subscribe(func(s State) { last = append(last, s) })

	sim.SetPaused(false)
	sim.AdvanceGeneration()

	current := sim.State()
	require.True(t, current.IsPaused)
	require.Equal(t, 1, current.Generation)

	require.NotEmpty(t, first)
	require.NotEmpty(t, last)
	assert.Equal(t, current, first[len(first)-1])
	assert.Equal(t, current, last[len(last)-1])
	for _, s := range last {
		assert.False(t, s.Generation == 1 && !s.IsPaused, "superseded snapshot delivered: %+v", s)
	}
}

func TestUnsubscribeFromListener(t *testing.T) {
	sim := newTestSimulation(t, 3, 3)

	calls := 0
	var unsubscribe func()
	unsubscribe = sim.Subscribe(func(State) {
		calls++
		unsubscribe()
	})
	other := 0
	sim.Subscribe(func(State) { other++ })

	sim.TogglePaused()
	sim.TogglePaused()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}
