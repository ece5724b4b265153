package core

import "math"

// Canvas is a Renderer that scales framebuffer pixels onto a character Screen.
// Rectangles cover at least one cell so small sprites stay visible.
type Canvas struct {
	screen *Screen
	fill   rune
}

// NewCanvas wraps a screen.
func NewCanvas(s *Screen) *Canvas {
	return &Canvas{screen: s, fill: '█'}
}

// Screen returns the underlying screen.
func (c *Canvas) Screen() *Screen {
	return c.screen
}

// Clear blanks the screen.
func (c *Canvas) Clear() {
	c.screen.Clear()
}

// FillRect fills the cells covered by r with solid blocks.
func (c *Canvas) FillRect(r Rect, col Color) {
	c.screen.DrawRect(c.cells(r), c.fill, col)
}

// Blit fills the sprite's destination cells with its glyph.
// Horizontal mirroring swaps directional glyphs.
func (c *Canvas) Blit(s Sprite, dstX, dstY int, xf Xform) {
	g := s.Glyph
	if g == 0 {
		g = '#'
	}
	if xf&XformXRev != 0 {
		g = mirrorX(g)
	}
	if xf&XformYRev != 0 {
		g = mirrorY(g)
	}
	c.screen.DrawRect(c.cells(NewRect(dstX, dstY, s.Src.W, s.Src.H)), g, s.Color)
}

// Text draws s unscaled, starting at the cell containing (x, y).
func (c *Canvas) Text(x, y int, col Color, s string) {
	cx, cy := c.cell(float64(x), float64(y))
	c.screen.DrawText(cx, cy, s, col)
}

func (c *Canvas) scale() (float64, float64) {
	return float64(c.screen.Width()) / FrameW, float64(c.screen.Height()) / FrameH
}

func (c *Canvas) cell(x, y float64) (int, int) {
	sx, sy := c.scale()
	return int(math.Floor(x * sx)), int(math.Floor(y * sy))
}

func (c *Canvas) cells(r Rect) Rect {
	sx, sy := c.scale()
	x0 := int(math.Floor(float64(r.X) * sx))
	y0 := int(math.Floor(float64(r.Y) * sy))
	x1 := int(math.Ceil(float64(r.Right()) * sx))
	y1 := int(math.Ceil(float64(r.Bottom()) * sy))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return NewRect(x0, y0, x1-x0, y1-y0)
}

func mirrorX(r rune) rune {
	switch r {
	case '<':
		return '>'
	case '>':
		return '<'
	case '/':
		return '\\'
	case '\\':
		return '/'
	case '(':
		return ')'
	case ')':
		return '('
	}
	return r
}

func mirrorY(r rune) rune {
	switch r {
	case '^':
		return 'v'
	case 'v':
		return '^'
	case '/':
		return '\\'
	case '\\':
		return '/'
	}
	return r
}
