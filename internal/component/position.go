package component

// Position is a tile coordinate on the arena map.
type Position struct {
	X, Y int
}

// Add returns p moved by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}
