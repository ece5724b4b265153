package core

// Framebuffer geometry. Contests simulate and draw in these pixels;
// the platform scales to whatever surface it has.
const (
	TileSize = 32
	FrameW   = TileSize * 16
	FrameH   = TileSize * 9
)

// Xform mirrors a blit.
type Xform uint8

const (
	XformNone Xform = 0
	XformXRev Xform = 0x01
	XformYRev Xform = 0x02
)

// Sprite names a sub-region of an image.
// Glyph and Color are how a character-cell surface shows it.
type Sprite struct {
	Image string
	Src   Rect
	Glyph rune
	Color Color
}

// Size returns the sprite's width and height in pixels.
func (s Sprite) Size() (int, int) {
	return s.Src.W, s.Src.H
}

// Tile returns the TileSize square at id in a sheet laid out 16 tiles wide.
func Tile(image string, id int, glyph rune, c Color) Sprite {
	return Sprite{
		Image: image,
		Src:   NewRect(id&0x0f*TileSize, id>>4*TileSize, TileSize, TileSize),
		Glyph: glyph,
		Color: c,
	}
}

// Renderer is the drawing service contests render against.
// Implementations must tolerate any coordinates, including off-surface ones.
type Renderer interface {
	Clear()
	FillRect(r Rect, c Color)
	Blit(s Sprite, dstX, dstY int, xf Xform)
	Text(x, y int, c Color, s string)
}

// DrawOp is one recorded draw call.
type DrawOp struct {
	Kind   string // "clear", "fill", "blit" or "text"
	Rect   Rect
	Color  Color
	Sprite Sprite
	Xform  Xform
	Text   string
}

// Recorder is a Renderer that keeps every call. Used by tests and headless runs.
type Recorder struct {
	Ops []DrawOp
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Clear records a clear.
func (r *Recorder) Clear() {
	r.Ops = append(r.Ops, DrawOp{Kind: "clear"})
}

// FillRect records a rectangle fill.
func (r *Recorder) FillRect(rect Rect, c Color) {
	r.Ops = append(r.Ops, DrawOp{Kind: "fill", Rect: rect, Color: c})
}

// Blit records a sprite blit at its destination rectangle.
func (r *Recorder) Blit(s Sprite, dstX, dstY int, xf Xform) {
	r.Ops = append(r.Ops, DrawOp{
		Kind:   "blit",
		Rect:   NewRect(dstX, dstY, s.Src.W, s.Src.H),
		Sprite: s,
		Xform:  xf,
	})
}

// Text records a text draw.
func (r *Recorder) Text(x, y int, c Color, s string) {
	r.Ops = append(r.Ops, DrawOp{Kind: "text", Rect: NewRect(x, y, len(s), 1), Color: c, Text: s})
}

// Reset drops recorded calls.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Count returns how many calls of the given kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns every recorded text string in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Discard is a Renderer that draws nothing.
type Discard struct{}

func (Discard) Clear()                       {}
func (Discard) FillRect(Rect, Color)         {}
func (Discard) Blit(Sprite, int, int, Xform) {}
func (Discard) Text(int, int, Color, string) {}
