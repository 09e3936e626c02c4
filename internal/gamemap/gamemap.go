package gamemap

import "math/rand"

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// GameMap holds the tile grid and the player spawn points of one arena.
type GameMap struct {
	Width, Height int
	Tiles         [][]Tile
	Spawns        []Point
}

// New creates a GameMap filled with walls.
func New(width, height int) *GameMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &GameMap{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns a pointer to the tile at (x, y). Panics if out of bounds.
func (m *GameMap) At(x, y int) *Tile {
	return &m.Tiles[y][x]
}

// Set replaces the tile at (x, y).
func (m *GameMap) Set(x, y int, t Tile) {
	m.Tiles[y][x] = t
}

// IsWalkable returns true when (x, y) is in bounds and walkable.
func (m *GameMap) IsWalkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Walkable
}

// BuildArena lays out a walled arena with pillars mirrored across the
// vertical centre line, so neither side has an advantage. The two spawn
// points sit on the middle row near the left and right walls.
func BuildArena(width, height, pillars int, rng *rand.Rand) *GameMap {
	m := New(width, height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			m.Set(x, y, MakeFloor())
		}
	}
	mid := height / 2
	left, right := Point{X: 2, Y: mid}, Point{X: width - 3, Y: mid}
	m.Spawns = []Point{left, right}

	// Pillars stay clear of the spawn columns and the middle row so the
	// players always have a straight line to each other.
	placed := 0
	for tries := 0; placed < pillars && tries < pillars*20; tries++ {
		x := 4 + rng.Intn(max(width/2-4, 1))
		y := 2 + rng.Intn(max(height-4, 1))
		mx := width - 1 - x
		if y == mid || !m.IsWalkable(x, y) || !m.IsWalkable(mx, y) {
			continue
		}
		m.Set(x, y, MakePillar())
		m.Set(mx, y, MakePillar())
		placed++
	}
	return m
}

// Spawn returns the spawn point for player index i, cycling through
// the arena's spawns.
func (m *GameMap) Spawn(i int) Point {
	if len(m.Spawns) == 0 {
		return Point{X: m.Width / 2, Y: m.Height / 2}
	}
	return m.Spawns[i%len(m.Spawns)]
}
