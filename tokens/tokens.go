package tokens

import "github.com/tsawler/annotate/geometry"

// Token is a single OCR-extracted word in a page's native coordinate space.
// Tokens are immutable after page load.
type Token struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Text   string
}

// Bounds returns the token's rectangle in native page space.
func (t Token) Bounds() geometry.Bounds {
	return geometry.Bounds{
		Left:   t.X,
		Top:    t.Y,
		Right:  t.X + t.Width,
		Bottom: t.Y + t.Height,
	}
}

// TokenID is a stable reference into a page's token array. It is the unit
// of serialization for token-anchored annotations: the referenced Token may
// be looked up again after a reload as long as the OCR output is unchanged.
type TokenID struct {
	PageIndex  int `json:"pageIndex"`
	TokenIndex int `json:"tokenIndex"`
}

// PageTokens is the loader interchange shape: one page's raw OCR token list
// together with the page's native dimensions. Loaders (hocr, ocr, or an
// external source) produce these; [NewPage] consumes them.
type PageTokens struct {
	Index  int
	Width  float64
	Height float64
	Tokens []Token
}
