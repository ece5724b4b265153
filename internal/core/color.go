package core

// Color is a palette entry for fills, sprites and text.
// The palette is small on purpose: terminals map it onto ANSI 256 colours.
type Color uint8

const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorBrown
	ColorPink
	ColorGray
	ColorDarkGray
)

var colorNames = [...]string{
	"default", "black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright-red", "bright-green", "bright-yellow", "bright-blue", "bright-cyan", "bright-white",
	"orange", "brown", "pink", "gray", "dark-gray",
}

// String returns the palette name.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}
