package layout

import (
	"io"
	"log"
	"math"
	"math/rand"
	"testing"

	"github.com/beka-birhanu/vinom-walker/grid"
	"github.com/beka-birhanu/vinom-walker/pathfind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = WithLogger(log.New(io.Discard, "", 0))

func generate(t *testing.T, mode Mode, size int, seed int64, opts ...Option) *Layout {
	t.Helper()
	l, err := Generate(mode, size, rand.New(rand.NewSource(seed)), append(opts, quiet)...)
	require.NoError(t, err)
	return l
}

func TestGenerateErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := Generate(Maze, 0, rng)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = Generate(Maze, -4, rng)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = Generate(Mode(42), 5, rng)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{Maze, OpenRoom, Alley, BSPRooms, PillarField, Polygon} {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	parsed, err := ParseMode(" Gallery ")
	require.NoError(t, err)
	assert.Equal(t, Polygon, parsed)

	_, err = ParseMode("dungeon")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestConnectivity(t *testing.T) {
	for _, mode := range []Mode{Maze, BSPRooms} {
		for size := 2; size <= 12; size++ {
			for seed := int64(0); seed < 5; seed++ {
				l := generate(t, mode, size, seed)
				assert.True(t, pathfind.Connected(l.Grid), "%s size %d seed %d", mode, size, seed)
			}
		}
	}

	t.Run("full size bsp", func(t *testing.T) {
		for seed := int64(0); seed < 10; seed++ {
			l := generate(t, BSPRooms, 25, seed)
			assert.True(t, pathfind.Connected(l.Grid))
			assert.GreaterOrEqual(t, l.Rooms, 1)
			assert.LessOrEqual(t, l.Rooms, defaultTargetRooms)
		}
	})
}

func TestMazeScenario(t *testing.T) {
	l := generate(t, Maze, 5, 7)

	path := pathfind.FindPath(grid.Cell{X: 0, Y: 0}, grid.Cell{X: 4, Y: 4}, l.Grid)
	require.NotEmpty(t, path)
	for i := 1; i < len(path); i++ {
		ok, err := l.Grid.AreConnected(path[i-1], path[i])
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestDeterministic(t *testing.T) {
	for _, mode := range []Mode{Maze, BSPRooms, PillarField} {
		a := generate(t, mode, 15, 99)
		b := generate(t, mode, 15, 99)
		assert.Equal(t, a.Grid.String(), b.Grid.String(), mode.String())
	}
}

func TestBoundaryIntegrity(t *testing.T) {
	for _, mode := range []Mode{Maze, OpenRoom, BSPRooms, PillarField} {
		l := generate(t, mode, 9, 3, WithMazeDoors(true))
		require.True(t, l.Bounded())

		n := l.Size
		for i := 0; i < n; i++ {
			assert.True(t, l.Grid.Horizontal[0][i], "%s north %d", mode, i)
			assert.True(t, l.Grid.Horizontal[n][i], "%s south %d", mode, i)
			assert.True(t, l.Grid.Vertical[i][0], "%s west %d", mode, i)
			assert.True(t, l.Grid.Vertical[i][n], "%s east %d", mode, i)
		}
	}
}

func TestOpenRoom(t *testing.T) {
	l := generate(t, OpenRoom, 5, 1)

	for y := 1; y < l.Size; y++ {
		for x := 0; x < l.Size; x++ {
			assert.False(t, l.Grid.Horizontal[y][x])
		}
	}
	require.Len(t, l.Doors, 4)
	for _, d := range l.Doors {
		assert.Equal(t, 2, d.Offset)
		assert.InDelta(t, 0, d.Center, 1e-9)
		assert.InDelta(t, DoorWidth/2, d.HalfWidth, 1e-9)
	}

	t.Run("doors can be disabled", func(t *testing.T) {
		assert.Empty(t, generate(t, OpenRoom, 5, 1, WithOpenRoomDoors(false)).Doors)
	})
}

func TestAlley(t *testing.T) {
	l := generate(t, Alley, 10, 1)
	row := AlleyRow(10)

	assert.True(t, l.Wraps())
	assert.False(t, l.Bounded())
	for x := 0; x < l.Size; x++ {
		north, err := l.Grid.HasWallNorth(x, row)
		require.NoError(t, err)
		south, err := l.Grid.HasWallSouth(x, row)
		require.NoError(t, err)
		east, err := l.Grid.HasWallEast(x, row)
		require.NoError(t, err)

		assert.True(t, north)
		assert.True(t, south)
		assert.False(t, east)
	}
}

func TestPillars(t *testing.T) {
	t.Run("random placement keeps its distance", func(t *testing.T) {
		for seed := int64(0); seed < 20; seed++ {
			l := generate(t, PillarField, 15, seed, WithPillarPattern(PillarRandom))
			if l.Pattern != PillarRandom {
				continue
			}
			require.Len(t, l.Pillars, targetPillars)

			for i, p := range l.Pillars {
				assert.False(t, inSpawnSquare(p, l.Size))
				assert.GreaterOrEqual(t, p.X, pillarEdgeMargin)
				assert.GreaterOrEqual(t, p.Y, pillarEdgeMargin)
				assert.Less(t, p.X, l.Size-pillarEdgeMargin)
				assert.Less(t, p.Y, l.Size-pillarEdgeMargin)
				for _, q := range l.Pillars[i+1:] {
					assert.Greater(t, chebyshev(p, q), 1)
				}
			}
		}
	})

	t.Run("regular lattice encloses every pillar", func(t *testing.T) {
		l := generate(t, PillarField, 15, 1, WithPillarPattern(PillarRegular))
		assert.Equal(t, PillarRegular, l.Pattern)
		require.NotEmpty(t, l.Pillars)

		for _, p := range l.Pillars {
			for _, d := range grid.Directions {
				wall, err := l.Grid.HasWall(p, d)
				require.NoError(t, err)
				assert.True(t, wall)
			}
		}
		assert.Len(t, l.Doors, 4)
	})

	t.Run("too small for random placement falls back", func(t *testing.T) {
		l := generate(t, PillarField, 6, 1, WithPillarPattern(PillarRandom))
		assert.Equal(t, PillarRegular, l.Pattern)
	})
}

func TestPolygon(t *testing.T) {
	l := generate(t, Polygon, 20, 1)
	require.NotNil(t, l.Shape)
	assert.Equal(t, defaultPolygonSides, l.Shape.Sides)
	assert.InDelta(t, 20, l.Shape.Radius, 1e-9)
	assert.False(t, l.Bounded())

	t.Run("rim cells face the nearest side", func(t *testing.T) {
		rim := grid.Cell{X: 18, Y: 10}
		faces := l.Faces(rim)
		require.Len(t, faces, 1)
		assert.Equal(t, 0, faces[0].Side)

		x, z := l.FaceCenter(faces[0])
		assert.InDelta(t, l.Shape.Radius, math.Hypot(x, z), 1e-9)
	})

	t.Run("centre cells have no faces", func(t *testing.T) {
		assert.Empty(t, l.Faces(grid.Cell{X: 10, Y: 10}))
	})
}

func TestGeometry(t *testing.T) {
	l := generate(t, OpenRoom, 5, 1)

	assert.InDelta(t, 5.0, l.HalfExtent(), 1e-9)

	x, z := l.CellCenter(grid.Cell{X: 0, Y: 4})
	assert.InDelta(t, -4.0, x, 1e-9)
	assert.InDelta(t, 4.0, z, 1e-9)

	for y := 0; y < l.Size; y++ {
		for x := 0; x < l.Size; x++ {
			c := grid.Cell{X: x, Y: y}
			assert.Equal(t, c, l.WorldToCell(l.CellCenter(c)))
		}
	}
	assert.Equal(t, grid.Cell{X: -1, Y: 0}, l.WorldToCell(-5.1, -4.9))
}

func TestFaces(t *testing.T) {
	l := generate(t, OpenRoom, 5, 1)

	corner := l.Faces(grid.Cell{X: 0, Y: 0})
	assert.ElementsMatch(t, []Face{
		{Cell: grid.Cell{X: 0, Y: 0}, Dir: grid.North},
		{Cell: grid.Cell{X: 0, Y: 0}, Dir: grid.West},
	}, corner)

	// The north door cell only keeps its side walls, none of which exist.
	assert.Empty(t, l.Faces(grid.Cell{X: 2, Y: 0}))
	assert.Empty(t, l.Faces(grid.Cell{X: 2, Y: 2}))

	x, z := l.FaceCenter(Face{Cell: grid.Cell{X: 0, Y: 0}, Dir: grid.North})
	assert.InDelta(t, -4.0, x, 1e-9)
	assert.InDelta(t, -5.0, z, 1e-9)
}

func TestDoors(t *testing.T) {
	l := generate(t, PillarField, 15, 1)

	north, ok := l.Door(grid.North)
	require.True(t, ok)
	assert.Equal(t, grid.Cell{X: 7, Y: 0}, l.DoorCell(north))
	assert.True(t, l.DoorAt(grid.North, north.Center+north.HalfWidth-0.01))
	assert.False(t, l.DoorAt(grid.North, north.Center+north.HalfWidth+0.01))

	east, ok := l.Door(grid.East)
	require.True(t, ok)
	assert.Equal(t, grid.Cell{X: 14, Y: 7}, l.DoorCell(east))
	assert.True(t, l.IsDoorWall(grid.Cell{X: 14, Y: 7}, grid.East))
	assert.False(t, l.IsDoorWall(grid.Cell{X: 14, Y: 6}, grid.East))
	assert.False(t, l.IsDoorWall(grid.Cell{X: 13, Y: 7}, grid.East))
}

func TestSetWallMatchesGrid(t *testing.T) {
	for _, present := range []bool{true, false} {
		want, err := grid.New(3, !present)
		require.NoError(t, err)
		got := want.Clone()

		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				c := grid.Cell{X: x, Y: y}
				for _, d := range grid.Directions {
					require.NoError(t, want.SetWall(c, d, present))
					setWall(got, c, d, present)
					assert.Equal(t, want, got, "%v %s", c, d)
				}
			}
		}
	}
}
