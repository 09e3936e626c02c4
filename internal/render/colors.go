package render

import (
	"github.com/gdamore/tcell/v2"

	"stick-battle-arena/assets"
)

// Theme holds the glyphs and colors used to draw the arena and HUD.
// Emoji are rendered by the terminal with their own colors, so tiles
// are told apart by glyph rather than tint.
type Theme struct {
	Wall   string
	Floor  string
	Pillar string
	Dead   string

	Background tcell.Color
	Separator  tcell.Color
	Text       tcell.Color
	Message    tcell.Color
	Warning    tcell.Color
}

// DefaultTheme is the stock arena look.
var DefaultTheme = Theme{
	Wall:   assets.GlyphWall,
	Floor:  assets.GlyphFloor,
	Pillar: assets.GlyphPillar,
	Dead:   assets.GlyphDead,

	Background: tcell.ColorBlack,
	Separator:  tcell.ColorGray,
	Text:       tcell.ColorWhite,
	Message:    tcell.ColorLightYellow,
	Warning:    tcell.ColorOrangeRed,
}

// durabilityColor shades a durability readout from the text color down
// to the warning color as the item wears out.
func (t Theme) durabilityColor(cur, max int) tcell.Color {
	if max <= 0 || cur*4 > max {
		return t.Text
	}
	return t.Warning
}
