package layout

import (
	"math/rand"

	"github.com/beka-birhanu/vinom-walker/config"
	"github.com/beka-birhanu/vinom-walker/grid"
)

// bspNode is a rectangle of the partition tree. Internal nodes record how they were split.
type bspNode struct {
	x, y, w, h      int
	leaf            bool
	splitHorizontal bool // splitHorizontal means the dividing wall runs along x.
	splitPos        int
	left, right     *bspNode
}

func (n *bspNode) area() int {
	return n.w * n.h
}

func (n *bspNode) splittable(minSize int) bool {
	return n.w >= minSize*2 || n.h >= minSize*2
}

// generateBSP partitions the grid into rooms, clears each room and pierces a door through
// every partition wall, so rooms are connected by construction.
func generateBSP(size int, rng *rand.Rand, o *options) (*Layout, error) {
	g, err := grid.New(size, true)
	if err != nil {
		return nil, err
	}

	root := &bspNode{x: 0, y: 0, w: size, h: size, leaf: true}
	rooms := partition(root, o.targetRooms, o.minRoomSize, rng)
	if rooms < o.targetRooms {
		o.logger.Printf("%s[INFO]%s bsp reached %d of %d rooms at size %d", config.LogInfoColor, config.LogColorReset, rooms, o.targetRooms, size)
	}

	clearRooms(g, root)
	connectSiblings(g, root, rng)

	return &Layout{
		Mode:  BSPRooms,
		Size:  size,
		Grid:  g,
		Doors: centredDoors(size),
		Rooms: rooms,
	}, nil
}

// partition splits the largest splittable leaf until target leaves exist or nothing can be
// split. It returns the leaf count, which may fall short of target.
func partition(root *bspNode, target, minSize int, rng *rand.Rand) int {
	leaves := []*bspNode{root}

	for len(leaves) < target {
		best := -1
		for i, n := range leaves {
			if n.splittable(minSize) && (best == -1 || n.area() > leaves[best].area()) {
				best = i
			}
		}
		if best == -1 {
			break
		}

		node := leaves[best]
		leaves = append(leaves[:best], leaves[best+1:]...)

		// Split across the longer side; square nodes pick at random.
		node.splitHorizontal = node.h > node.w || (node.h == node.w && rng.Intn(2) == 0)
		dim := node.w
		if node.splitHorizontal {
			dim = node.h
		}
		node.splitPos = minSize + rng.Intn(dim-minSize*2+1)
		node.leaf = false

		if node.splitHorizontal {
			node.left = &bspNode{x: node.x, y: node.y, w: node.w, h: node.splitPos, leaf: true}
			node.right = &bspNode{x: node.x, y: node.y + node.splitPos, w: node.w, h: node.h - node.splitPos, leaf: true}
		} else {
			node.left = &bspNode{x: node.x, y: node.y, w: node.splitPos, h: node.h, leaf: true}
			node.right = &bspNode{x: node.x + node.splitPos, y: node.y, w: node.w - node.splitPos, h: node.h, leaf: true}
		}
		leaves = append(leaves, node.left, node.right)
	}

	return len(leaves)
}

// clearRooms removes every wall inside each leaf rectangle.
func clearRooms(g *grid.WallGrid, node *bspNode) {
	if !node.leaf {
		clearRooms(g, node.left)
		clearRooms(g, node.right)
		return
	}

	for y := node.y + 1; y < node.y+node.h; y++ {
		for x := node.x; x < node.x+node.w; x++ {
			g.Horizontal[y][x] = false
		}
	}
	for y := node.y; y < node.y+node.h; y++ {
		for x := node.x + 1; x < node.x+node.w; x++ {
			g.Vertical[y][x] = false
		}
	}
}

// connectSiblings pierces doors post-order: children first, then the wall between them.
func connectSiblings(g *grid.WallGrid, node *bspNode, rng *rand.Rand) {
	if node.leaf {
		return
	}
	connectSiblings(g, node.left, rng)
	connectSiblings(g, node.right, rng)

	if node.splitHorizontal {
		wallY := node.y + node.splitPos
		doorX := node.x + doorOffset(node.w, rng)
		g.Horizontal[wallY][doorX] = false
		if node.w > 4 && rng.Float64() < 0.5 && doorX+1 < node.x+node.w {
			g.Horizontal[wallY][doorX+1] = false
		}
		return
	}

	wallX := node.x + node.splitPos
	doorY := node.y + doorOffset(node.h, rng)
	g.Vertical[doorY][wallX] = false
	if node.h > 4 && rng.Float64() < 0.5 && doorY+1 < node.y+node.h {
		g.Vertical[doorY+1][wallX] = false
	}
}

// doorOffset keeps doors off the corners of a wall of the given length when it can.
func doorOffset(length int, rng *rand.Rand) int {
	if length <= 2 {
		return rng.Intn(length)
	}
	return 1 + rng.Intn(length-2)
}
