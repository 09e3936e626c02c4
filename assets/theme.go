package assets

// Emoji constants used as entity and tile glyphs.
const (
	GlyphPlayerOne = "🤺"
	GlyphPlayerTwo = "🥷"
	GlyphWall      = "🧱"
	GlyphPillar    = "🪨"
	GlyphFloor     = "⬛"
	GlyphDead      = "💀"
)

// PlayerDef is the look and name of one player seat.
type PlayerDef struct {
	Name  string
	Glyph string
	Color string // tcell color name
}

// Players lists the hot-seat player slots in join order.
var Players = []PlayerDef{
	{Name: "Red", Glyph: GlyphPlayerOne, Color: "red"},
	{Name: "Blue", Glyph: GlyphPlayerTwo, Color: "dodgerblue"},
}
