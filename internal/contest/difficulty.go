package contest

import "math"

// ClampDifficulty restricts d to [0, 1].
func ClampDifficulty(d float64) float64 {
	if d < 0 || math.IsNaN(d) {
		return 0
	}
	if d > 1 {
		return 1
	}
	return d
}

// Lerp interpolates from the value used at difficulty 0 to the value used
// at difficulty 1. Whether that rises or falls is the caller's to document.
// The result is monotonic in d and never leaves [atEasy, atHard].
func Lerp(atEasy, atHard, d float64) float64 {
	d = ClampDifficulty(d)
	if d == 1 {
		return atHard
	}
	v := atEasy + (atHard-atEasy)*d
	return min(max(v, min(atEasy, atHard)), max(atEasy, atHard))
}

// Curve is a named easy/hard pair for one constant.
type Curve struct {
	Easy float64 // value at difficulty 0
	Hard float64 // value at difficulty 1
}

// At evaluates the curve.
func (c Curve) At(d float64) float64 {
	return Lerp(c.Easy, c.Hard, d)
}

// Rising reports whether the constant grows with difficulty.
func (c Curve) Rising() bool {
	return c.Hard > c.Easy
}
