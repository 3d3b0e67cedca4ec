/*
Package tui draws a walker session in the terminal and maps keys to walker intents.

The grid is drawn in the same character layout as grid.WallGrid.Render: every cell is four
columns wide and two rows tall, so cell (x, y) sits at column 4x+2 of row 2y+1. Doors and
painted faces are drawn over the wall segments they belong to.
*/
package tui

import (
	"fmt"
	"strings"

	dmn "github.com/beka-birhanu/vinom-walker/domain"
	"github.com/beka-birhanu/vinom-walker/grid"
	"github.com/beka-birhanu/vinom-walker/layout"
	"github.com/beka-birhanu/vinom-walker/session"
	"github.com/gdamore/tcell/v2"
)

const hudRows = 2

var (
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue)
	styleFloor    = tcell.StyleDefault
	styleAgent    = tcell.StyleDefault.Foreground(tcell.ColorLightGreen).Bold(true)
	styleTarget   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePillar   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleDoor     = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	stylePainting = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
)

// Renderer draws frames onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw paints one frame and the status bar, then shows the screen.
func (r *Renderer) Draw(f session.Frame, snap *dmn.SessionSnapshot) {
	r.screen.Clear()
	width, height := r.screen.Size()
	viewH := height - hudRows
	if viewH < 1 {
		viewH = height
	}

	ox, oy := viewport(f.Layout.Size, f.Agent.Cell, width, viewH)
	put := func(col, row int, ch rune, style tcell.Style) {
		x, y := col-ox, row-oy
		if x < 0 || y < 0 || x >= width || y >= viewH {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
	}

	marks := make(map[grid.Cell]rune)
	for _, p := range f.Layout.Pillars {
		marks[p] = '#'
	}
	if f.Agent.Target != nil {
		marks[*f.Agent.Target] = '*'
	}
	if f.Layout.Grid.InBounds(f.Agent.Cell) {
		marks[f.Agent.Cell] = '@'
	}

	for row, line := range strings.Split(strings.TrimRight(f.Layout.Grid.Render(marks), "\n"), "\n") {
		for col, ch := range []rune(line) {
			put(col, row, ch, styleFor(ch))
		}
	}

	for _, d := range f.Layout.Doors {
		c := f.Layout.DoorCell(d)
		col, row := segment(c, d.Side)
		for i := -1; i <= 1; i++ {
			if d.Side == grid.North || d.Side == grid.South {
				put(col+i, row, '=', styleDoor)
			} else if i == 0 {
				put(col, row, ':', styleDoor)
			}
		}
	}

	for _, face := range f.Paintings {
		if face.Dir == grid.None {
			continue
		}
		col, row := segment(face.Cell, face.Dir)
		put(col, row, '▣', stylePainting)
	}

	if snap != nil {
		r.drawHUD(snap, width, height)
	}
	r.screen.Show()
}

func (r *Renderer) drawHUD(snap *dmn.SessionSnapshot, width, height int) {
	lines := []string{
		fmt.Sprintf(" %s %dx%d  gen %d  rooms %d  state %s  visited %d  auto %t",
			snap.Mode, snap.Size, snap.Size, snap.Generation, snap.Rooms, snap.Agent.State, snap.Agent.Visited, snap.Agent.Auto),
		fmt.Sprintf(" paintings %d  images %d pending / %d loaded / %d failed / %d stale  [arrows move, q/e strafe, p auto, c collisions, 1-6 mode, esc quit]",
			snap.Paintings, snap.Images.Pending, snap.Images.Loaded, snap.Images.Failed, snap.Images.Stale),
	}
	for i, line := range lines {
		y := height - hudRows + i
		if y < 0 {
			continue
		}
		runes := []rune(line)
		for x := 0; x < width; x++ {
			ch := ' '
			if x < len(runes) {
				ch = runes[x]
			}
			r.screen.SetContent(x, y, ch, nil, styleHUD)
		}
	}
}

// viewport returns the top-left text position so the agent stays on screen when the grid
// is larger than the view.
func viewport(size int, agent grid.Cell, width, height int) (int, int) {
	return axisOffset(4*size+1, 4*agent.X+2, width), axisOffset(2*size+1, 2*agent.Y+1, height)
}

func axisOffset(total, focus, view int) int {
	if total <= view {
		return 0
	}
	off := focus - view/2
	if off < 0 {
		return 0
	}
	if off > total-view {
		return total - view
	}
	return off
}

// segment is the text position of the middle of the wall on side d of cell c.
func segment(c grid.Cell, d grid.Direction) (int, int) {
	switch d {
	case grid.North:
		return 4*c.X + 2, 2 * c.Y
	case grid.South:
		return 4*c.X + 2, 2*c.Y + 2
	case grid.West:
		return 4 * c.X, 2*c.Y + 1
	default:
		return 4*c.X + 4, 2*c.Y + 1
	}
}

func styleFor(ch rune) tcell.Style {
	switch ch {
	case '+', '-', '|':
		return styleWall
	case '@':
		return styleAgent
	case '*':
		return styleTarget
	case '#':
		return stylePillar
	default:
		return styleFloor
	}
}

// modeKeys maps the number keys to layout modes.
var modeKeys = map[rune]layout.Mode{
	'1': layout.Maze,
	'2': layout.OpenRoom,
	'3': layout.Alley,
	'4': layout.BSPRooms,
	'5': layout.PillarField,
	'6': layout.Polygon,
}
