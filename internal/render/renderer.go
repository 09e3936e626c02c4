package render

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"stick-battle-arena/internal/arena"
	"stick-battle-arena/internal/component"
	"stick-battle-arena/internal/ecs"
	"stick-battle-arena/internal/gamemap"
)

// hudRows is the number of screen rows reserved below the arena.
const hudRows = 7

// Renderer draws a match onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
}

// NewRenderer creates a Renderer for the given screen, centering a
// mapW×mapH arena above the HUD.
func NewRenderer(screen tcell.Screen, mapW, mapH int) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(mapW, mapH, w, max(h-hudRows, 0)),
		theme:  DefaultTheme,
	}
}

// Resize refits the view after the terminal size changed.
func (r *Renderer) Resize(mapW, mapH int) {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = max(h-hudRows, 0)
	r.camera.Fit(mapW, mapH)
}

// WorldToScreen converts world coordinates to screen coordinates.
// visible is false when the position falls outside the viewport.
func (r *Renderer) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	return r.camera.WorldToScreen(wx, wy)
}

// DrawFrame renders tiles, carried items, entities and the HUD, then shows the screen.
func (r *Renderer) DrawFrame(m *arena.Match, messages []string) {
	r.screen.Clear()
	r.drawMap(m.Map)
	r.drawCarried(m)
	r.drawEntities(m.Stores)
	r.DrawHUD(m, messages)
	r.screen.Show()
}

func (r *Renderer) drawMap(gmap *gamemap.GameMap) {
	style := tcell.StyleDefault.Background(r.theme.Background)
	for y := 0; y < gmap.Height; y++ {
		for x := 0; x < gmap.Width; x++ {
			sx, sy, onScreen := r.camera.WorldToScreen(x, y)
			if !onScreen {
				continue
			}
			var glyph string
			switch gmap.At(x, y).Kind {
			case gamemap.TileWall:
				glyph = r.theme.Wall
			case gamemap.TilePillar:
				glyph = r.theme.Pillar
			default:
				glyph = r.theme.Floor
			}
			r.putGlyph(sx, sy, glyph, style)
		}
	}
}

// drawCarried shows each player's equipped item on the tile they face.
// Entities drawn afterwards cover it.
func (r *Renderer) drawCarried(m *arena.Match) {
	for _, p := range m.Players() {
		it := p.Inventory.Equipped()
		if it == nil {
			continue
		}
		pos, ok := m.Stores.Position.Get(p.ID)
		if !ok {
			continue
		}
		x := pos.X + int(p.Facing)
		if !m.Map.IsWalkable(x, pos.Y) {
			continue
		}
		ic, ok := m.ItemConfig(it.Kind())
		if !ok {
			continue
		}
		sx, sy, onScreen := r.camera.WorldToScreen(x, pos.Y)
		if !onScreen {
			continue
		}
		style := tcell.StyleDefault.Foreground(p.Seat.Color).Background(r.theme.Background)
		r.putGlyph(sx, sy, ic.Glyph, style)
	}
}

// renderableEntity holds sorting info for entity rendering.
type renderableEntity struct {
	id    ecs.EntityID
	order int
	pos   component.Position
	rend  component.Renderable
}

// drawEntities renders all entities with Renderable + Position, ordered by RenderOrder.
func (r *Renderer) drawEntities(s *component.Stores) {
	ids := s.Renderable.With(s.Position)
	entities := make([]renderableEntity, 0, len(ids))
	for _, id := range ids {
		pos, _ := s.Position.Get(id)
		rend, _ := s.Renderable.Get(id)
		entities = append(entities, renderableEntity{id: id, order: rend.RenderOrder, pos: pos, rend: rend})
	}

	// Sort ascending by render order (lower = drawn first / behind).
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].order < entities[j].order
	})

	for _, e := range entities {
		sx, sy, onScreen := r.camera.WorldToScreen(e.pos.X, e.pos.Y)
		if !onScreen {
			continue
		}
		bg := e.rend.BGColor
		if bg == tcell.ColorDefault {
			bg = r.theme.Background
		}
		style := tcell.StyleDefault.Foreground(e.rend.FGColor).Background(bg)
		r.putGlyph(sx, sy, e.rend.Glyph, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) < 2 {
		// Narrow glyphs still own both columns of the tile.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
