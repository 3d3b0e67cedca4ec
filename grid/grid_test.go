package grid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("rejects non-positive size", func(t *testing.T) {
		_, err := New(0, true)
		assert.ErrorIs(t, err, ErrInvalidSize)

		_, err = New(-3, false)
		assert.ErrorIs(t, err, ErrInvalidSize)
	})

	t.Run("matrix shapes", func(t *testing.T) {
		g, err := New(4, true)
		require.NoError(t, err)

		assert.Len(t, g.Horizontal, 5)
		assert.Len(t, g.Horizontal[0], 4)
		assert.Len(t, g.Vertical, 4)
		assert.Len(t, g.Vertical[0], 5)
	})

	t.Run("default wall state", func(t *testing.T) {
		solid, err := New(3, true)
		require.NoError(t, err)
		empty, err := New(3, false)
		require.NoError(t, err)

		for _, d := range Directions {
			wall, err := solid.HasWall(Cell{X: 1, Y: 1}, d)
			require.NoError(t, err)
			assert.True(t, wall)

			wall, err = empty.HasWall(Cell{X: 1, Y: 1}, d)
			require.NoError(t, err)
			assert.False(t, wall)
		}
	})

	t.Run("perimeter follows solid", func(t *testing.T) {
		for _, solid := range []bool{true, false} {
			g, err := New(3, solid)
			require.NoError(t, err)

			for i := 0; i < 3; i++ {
				assert.Equal(t, solid, g.Horizontal[0][i])
				assert.Equal(t, solid, g.Horizontal[3][i])
				assert.Equal(t, solid, g.Vertical[i][0])
				assert.Equal(t, solid, g.Vertical[i][3])
			}
		}
	})
}

func TestAccessors(t *testing.T) {
	g, err := New(3, false)
	require.NoError(t, err)

	require.NoError(t, g.SetWall(Cell{X: 1, Y: 1}, North, true))
	require.NoError(t, g.SetWall(Cell{X: 1, Y: 1}, East, true))

	t.Run("shared walls are visible from both cells", func(t *testing.T) {
		north, err := g.HasWallNorth(1, 1)
		require.NoError(t, err)
		assert.True(t, north)

		south, err := g.HasWallSouth(1, 0)
		require.NoError(t, err)
		assert.True(t, south)

		east, err := g.HasWallEast(1, 1)
		require.NoError(t, err)
		assert.True(t, east)

		west, err := g.HasWallWest(2, 1)
		require.NoError(t, err)
		assert.True(t, west)
	})

	t.Run("out of bounds fails", func(t *testing.T) {
		_, err := g.HasWallNorth(3, 0)
		assert.ErrorIs(t, err, ErrOutOfBounds)

		_, err = g.HasWallWest(0, -1)
		assert.ErrorIs(t, err, ErrOutOfBounds)

		_, err = g.AreConnected(Cell{X: 0, Y: 0}, Cell{X: -1, Y: 0})
		assert.ErrorIs(t, err, ErrOutOfBounds)

		assert.ErrorIs(t, g.SetWall(Cell{X: 5, Y: 5}, South, true), ErrOutOfBounds)
	})

	t.Run("connectivity", func(t *testing.T) {
		connected, err := g.AreConnected(Cell{X: 1, Y: 1}, Cell{X: 1, Y: 0})
		require.NoError(t, err)
		assert.False(t, connected)

		connected, err = g.AreConnected(Cell{X: 1, Y: 1}, Cell{X: 0, Y: 1})
		require.NoError(t, err)
		assert.True(t, connected)

		connected, err = g.AreConnected(Cell{X: 0, Y: 0}, Cell{X: 1, Y: 1})
		require.NoError(t, err)
		assert.False(t, connected, "diagonal cells are never connected")
	})
}

func TestNeighbors(t *testing.T) {
	g, err := New(3, false)
	require.NoError(t, err)

	assert.Equal(t,
		[]Cell{{X: 2, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 0}},
		g.Neighbors(Cell{X: 1, Y: 1}),
	)
	assert.Equal(t, []Cell{{X: 1, Y: 0}, {X: 0, Y: 1}}, g.Neighbors(Cell{X: 0, Y: 0}))

	require.NoError(t, g.SetWall(Cell{X: 1, Y: 1}, West, true))
	assert.Equal(t,
		[]Cell{{X: 2, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 0}},
		g.ConnectedNeighbors(Cell{X: 1, Y: 1}),
	)
}

func TestCloneAndRender(t *testing.T) {
	g, err := New(2, true)
	require.NoError(t, err)

	clone := g.Clone()
	require.NoError(t, clone.SetWall(Cell{X: 0, Y: 0}, East, false))

	east, err := g.HasWallEast(0, 0)
	require.NoError(t, err)
	assert.True(t, east, "clone must not share storage")

	out := clone.Render(map[Cell]rune{{X: 1, Y: 1}: '@'})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "+---+---+", lines[0])
	assert.Equal(t, "|       |", lines[1])
	assert.Equal(t, "|   | @ |", lines[3])
}
