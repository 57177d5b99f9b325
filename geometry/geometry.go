package geometry

import "math"

// Bounds represents a rectangle by its four edges. The coordinate system is
// screen-oriented: Y grows downward, so Top <= Bottom for a normalized box.
// A Bounds value is always expressed in a single coordinate space (token
// space or screen space) — never a mix of both within one call.
type Bounds struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// NewBounds creates a bounding rectangle from its four edges.
func NewBounds(left, top, right, bottom float64) Bounds {
	return Bounds{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns the horizontal extent of the rectangle.
func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the rectangle.
func (b Bounds) Height() float64 {
	return b.Bottom - b.Top
}

// Area returns the area of the rectangle.
func (b Bounds) Area() float64 {
	return b.Width() * b.Height()
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (b Bounds) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Scaled multiplies all four edges by factor. Used for token→screen
// conversion (factor = scale) and screen→token conversion (factor = 1/scale).
func (b Bounds) Scaled(factor float64) Bounds {
	return Bounds{
		Left:   b.Left * factor,
		Top:    b.Top * factor,
		Right:  b.Right * factor,
		Bottom: b.Bottom * factor,
	}
}

// Normalized returns an equivalent rectangle with Left <= Right and
// Top <= Bottom, swapping corners as needed. Normalizing an already
// normalized rectangle is a no-op.
//
// An in-progress drag rectangle is deliberately tracked un-normalized by
// callers; only the committed rectangle is normalized before hit testing.
func (b Bounds) Normalized() Bounds {
	return Bounds{
		Left:   math.Min(b.Left, b.Right),
		Top:    math.Min(b.Top, b.Bottom),
		Right:  math.Max(b.Left, b.Right),
		Bottom: math.Max(b.Top, b.Bottom),
	}
}

// Overlaps reports whether the two rectangles intersect strictly on both
// axes. Rectangles that merely touch at an edge or corner do not overlap,
// and a rectangle with zero area never overlaps anything.
func (b Bounds) Overlaps(other Bounds) bool {
	if b.IsEmpty() || other.IsEmpty() {
		return false
	}
	return b.Left < other.Right && b.Right > other.Left &&
		b.Top < other.Bottom && b.Bottom > other.Top
}

// Expand grows the rectangle by margin on every edge.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		Left:   b.Left - margin,
		Top:    b.Top - margin,
		Right:  b.Right + margin,
		Bottom: b.Bottom + margin,
	}
}

// SpanPadding is the default margin applied by Span at call sites that
// enclose token-snapped selections.
const SpanPadding = 3

// Span returns the minimal rectangle containing every input rectangle,
// expanded by padding on every edge. With a single input it is exactly that
// rectangle expanded by padding. With no inputs it returns the zero Bounds.
func Span(boxes []Bounds, padding float64) Bounds {
	if len(boxes) == 0 {
		return Bounds{}
	}
	out := boxes[0]
	for _, box := range boxes[1:] {
		out.Left = math.Min(out.Left, box.Left)
		out.Top = math.Min(out.Top, box.Top)
		out.Right = math.Max(out.Right, box.Right)
		out.Bottom = math.Max(out.Bottom, box.Bottom)
	}
	return out.Expand(padding)
}
