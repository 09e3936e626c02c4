package render

// Camera translates between world coordinates and screen coordinates.
// World X is multiplied by 2 because emoji occupy 2 terminal columns.
type Camera struct {
	OffsetX    int // in terminal columns
	OffsetY    int // in terminal rows
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera that centers a mapW×mapH arena in the view.
func NewCamera(mapW, mapH, viewW, viewH int) *Camera {
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH}
	c.Fit(mapW, mapH)
	return c
}

// Fit recenters the camera on a mapW×mapH arena. An arena larger than
// the view is pinned to the top-left corner.
func (c *Camera) Fit(mapW, mapH int) {
	c.OffsetX = max((c.ViewWidth-mapW*2)/2, 0)
	c.OffsetY = max((c.ViewHeight-mapH)/2, 0)
}

// WorldToScreen converts world (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = wx*2 + c.OffsetX
	sy = wy + c.OffsetY
	visible = sx >= 0 && sx+1 < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}
