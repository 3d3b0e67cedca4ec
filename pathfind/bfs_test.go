package pathfind

import (
	"testing"

	"github.com/beka-birhanu/vinom-walker/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serpentine opens a single winding corridor through a solid 3×3 grid:
// (0,0) → (2,0) → (2,1) → (0,1) → (0,2).
func serpentine(t *testing.T) *grid.WallGrid {
	t.Helper()

	g, err := grid.New(3, true)
	require.NoError(t, err)

	opens := []struct {
		c grid.Cell
		d grid.Direction
	}{
		{grid.Cell{X: 0, Y: 0}, grid.East},
		{grid.Cell{X: 1, Y: 0}, grid.East},
		{grid.Cell{X: 2, Y: 0}, grid.South},
		{grid.Cell{X: 2, Y: 1}, grid.West},
		{grid.Cell{X: 1, Y: 1}, grid.West},
		{grid.Cell{X: 0, Y: 1}, grid.South},
	}
	for _, o := range opens {
		require.NoError(t, g.SetWall(o.c, o.d, false))
	}
	return g
}

func TestFindPath(t *testing.T) {
	t.Run("follows the only route", func(t *testing.T) {
		g := serpentine(t)

		path := FindPath(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 0, Y: 2}, g)
		assert.Len(t, path, 7)
		assert.Equal(t, grid.Cell{X: 0, Y: 0}, path[0])
		assert.Equal(t, grid.Cell{X: 0, Y: 2}, path[len(path)-1])
	})

	t.Run("takes the shortcut once a wall is removed", func(t *testing.T) {
		g := serpentine(t)
		require.NoError(t, g.SetWall(grid.Cell{X: 0, Y: 0}, grid.South, false))

		path := FindPath(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 0, Y: 2}, g)
		assert.Equal(t, []grid.Cell{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}, path)
	})

	t.Run("consecutive cells are connected", func(t *testing.T) {
		g := serpentine(t)

		path := FindPath(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 0, Y: 2}, g)
		for i := 1; i < len(path); i++ {
			ok, err := g.AreConnected(path[i-1], path[i])
			require.NoError(t, err)
			assert.True(t, ok, "%v -> %v", path[i-1], path[i])
		}
	})

	t.Run("ties resolve east before south", func(t *testing.T) {
		g, err := grid.New(2, false)
		require.NoError(t, err)

		path := FindPath(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 1, Y: 1}, g)
		assert.Equal(t, []grid.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, path)
	})

	t.Run("start equals goal", func(t *testing.T) {
		g := serpentine(t)
		assert.Equal(t, []grid.Cell{{X: 1, Y: 1}}, FindPath(grid.Cell{X: 1, Y: 1}, grid.Cell{X: 1, Y: 1}, g))
	})

	t.Run("unreachable and out of bounds are empty", func(t *testing.T) {
		g, err := grid.New(3, true)
		require.NoError(t, err)

		assert.Empty(t, FindPath(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 2, Y: 2}, g))
		assert.Empty(t, FindPath(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 3, Y: 0}, g))
		assert.Empty(t, FindPath(grid.Cell{X: -1, Y: 0}, grid.Cell{X: 0, Y: 0}, g))
	})
}

func TestFindPathWithin(t *testing.T) {
	g, err := grid.New(3, false)
	require.NoError(t, err)

	blocked := grid.Cell{X: 1, Y: 0}
	allow := func(c grid.Cell) bool { return c != blocked }

	path := FindPathWithin(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 2, Y: 0}, g, allow)
	require.NotEmpty(t, path)
	assert.NotContains(t, path, blocked)
	assert.Len(t, path, 5)

	assert.Empty(t, FindPathWithin(grid.Cell{X: 0, Y: 0}, blocked, g, allow))
}

func TestDistancesAndConnected(t *testing.T) {
	g := serpentine(t)

	dist := Distances(grid.Cell{X: 0, Y: 0}, g)
	assert.Equal(t, 6, dist[grid.Cell{X: 0, Y: 2}])
	assert.Len(t, dist, 7)
	assert.False(t, Connected(g))

	open, err := grid.New(4, false)
	require.NoError(t, err)
	assert.True(t, Connected(open))
}

func TestFindPathTieOrder(t *testing.T) {
	g, err := grid.New(4, false)
	require.NoError(t, err)

	t.Run("east is preferred over every other side", func(t *testing.T) {
		path := FindPath(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 3, Y: 3}, g)
		assert.Equal(t, []grid.Cell{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
			{X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 3},
		}, path)
	})

	t.Run("west is preferred over north", func(t *testing.T) {
		path := FindPath(grid.Cell{X: 3, Y: 3}, grid.Cell{X: 2, Y: 2}, g)
		assert.Equal(t, []grid.Cell{{X: 3, Y: 3}, {X: 2, Y: 3}, {X: 2, Y: 2}}, path)
	})

	t.Run("repeated searches agree", func(t *testing.T) {
		first := FindPath(grid.Cell{X: 1, Y: 2}, grid.Cell{X: 3, Y: 0}, g)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, FindPath(grid.Cell{X: 1, Y: 2}, grid.Cell{X: 3, Y: 0}, g))
		}
	})
}

func TestFindPathLengthMatchesDistance(t *testing.T) {
	g := serpentine(t)
	require.NoError(t, g.SetWall(grid.Cell{X: 1, Y: 1}, grid.South, false))

	start := grid.Cell{X: 0, Y: 0}
	for goal, d := range Distances(start, g) {
		path := FindPath(start, goal, g)
		assert.Len(t, path, d+1, "goal %v", goal)
	}
}

func TestFindPathWithinAcceptsStart(t *testing.T) {
	g, err := grid.New(3, false)
	require.NoError(t, err)

	start := grid.Cell{X: 0, Y: 0}
	allow := func(c grid.Cell) bool { return c != start }

	path := FindPathWithin(start, grid.Cell{X: 2, Y: 0}, g, allow)
	assert.Equal(t, []grid.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, path)
}

func TestDistancesUpTo(t *testing.T) {
	g := serpentine(t)

	near := DistancesUpTo(grid.Cell{X: 0, Y: 0}, g, nil, 3)
	assert.Equal(t, map[grid.Cell]int{
		{X: 0, Y: 0}: 0,
		{X: 1, Y: 0}: 1,
		{X: 2, Y: 0}: 2,
		{X: 2, Y: 1}: 3,
	}, near)

	assert.Equal(t, map[grid.Cell]int{{X: 0, Y: 0}: 0}, DistancesUpTo(grid.Cell{X: 0, Y: 0}, g, nil, 0))
	assert.Empty(t, DistancesUpTo(grid.Cell{X: 5, Y: 0}, g, nil, 3))
	assert.Empty(t, DistancesWithin(grid.Cell{X: 0, Y: 0}, nil, nil))

	blocked := grid.Cell{X: 2, Y: 0}
	filtered := DistancesWithin(grid.Cell{X: 0, Y: 0}, g, func(c grid.Cell) bool { return c != blocked })
	assert.Equal(t, map[grid.Cell]int{{X: 0, Y: 0}: 0, {X: 1, Y: 0}: 1}, filtered)
}

func TestConnectedIsolatedOrigin(t *testing.T) {
	g, err := grid.New(3, false)
	require.NoError(t, err)
	require.NoError(t, g.SetWall(grid.Cell{X: 0, Y: 0}, grid.East, true))
	require.NoError(t, g.SetWall(grid.Cell{X: 0, Y: 0}, grid.South, true))

	assert.False(t, Connected(g))
	assert.False(t, Connected(nil))

	require.NoError(t, g.SetWall(grid.Cell{X: 0, Y: 0}, grid.South, false))
	assert.True(t, Connected(g))
}
