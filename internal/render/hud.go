package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"stick-battle-arena/internal/arena"
	"stick-battle-arena/internal/ecs"
	"stick-battle-arena/internal/item"
)

// messageRows is how many of the most recent messages the HUD shows.
const messageRows = 3

// DrawHUD renders one status line per player, the match clock and the
// message log at the bottom of the screen.
func (r *Renderer) DrawHUD(m *arena.Match, messages []string) {
	_, screenH := r.screen.Size()
	hudY := screenH - hudRows

	r.drawHLine(hudY, r.theme.Separator)

	row := hudY + 1
	for _, p := range m.Players() {
		r.drawPlayerLine(row, m, p)
		row++
	}
	r.drawText(0, row, r.statusLine(m), tcell.StyleDefault.Foreground(r.theme.Text))
	row++

	start := max(len(messages)-messageRows, 0)
	for i, msg := range messages[start:] {
		r.drawText(0, row+i, msg, tcell.StyleDefault.Foreground(r.theme.Message))
	}
}

func (r *Renderer) drawPlayerLine(y int, m *arena.Match, p *arena.Player) {
	base := tcell.StyleDefault.Foreground(r.theme.Text)
	glyph := p.Seat.Glyph
	if p.Eliminated {
		glyph = r.theme.Dead
	}
	x := r.drawText(0, y, glyph+" ", base)
	x = r.drawText(x, y, p.Seat.Name, base.Foreground(p.Seat.Color).Bold(true))
	x = r.drawText(x, y, fmt.Sprintf("  HP %d/%d  Lives %d  Score %d  ",
		max(p.Health.Remaining(), 0), p.Health.Max(),
		m.Board.RemainingLives(p.ID), m.Board.Score(p.ID)), base)
	x = r.drawItem(x, y, m, p.Inventory.Equipped(), true)
	r.drawItem(x, y, m, p.Inventory.Held(), false)
}

// drawItem prints "[glyph name cur/max]" for the equipped slot and
// "(glyph name cur/max)" for the held one.
func (r *Renderer) drawItem(x, y int, m *arena.Match, it *item.Item, equipped bool) int {
	open, shut := "(", ") "
	if equipped {
		open, shut = "[", "] "
	}
	base := tcell.StyleDefault.Foreground(r.theme.Text)
	if it == nil {
		return r.drawText(x, y, open+"empty"+shut, base.Dim(true))
	}
	label := string(it.Kind())
	if ic, ok := m.ItemConfig(it.Kind()); ok {
		label = ic.Glyph + " " + ic.DisplayName()
	}
	x = r.drawText(x, y, open+label+" ", base)
	x = r.drawText(x, y, fmt.Sprintf("%d/%d", it.Durability(), it.MaxDurability()),
		base.Foreground(r.theme.durabilityColor(it.Durability(), it.MaxDurability())))
	return r.drawText(x, y, shut, base)
}

func (r *Renderer) statusLine(m *arena.Match) string {
	if m.IsOver() {
		res := m.Result()
		who := "Draw"
		if p := m.Player(res.Winner); res.Winner != ecs.NilEntity && p != nil {
			who = p.Seat.Name + " wins"
		}
		return fmt.Sprintf("%s (%s)  r: rematch  q: quit", who, res.Reason)
	}
	if m.Config().Match.TimeLimit > 0 {
		return "Time " + clock(m.Remaining())
	}
	return "Time " + clock(m.Elapsed())
}

func clock(d time.Duration) string {
	s := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText prints text from column x and returns the column after it.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
	return col
}
