package tokens

import (
	"fmt"
	"strings"

	"github.com/tsawler/annotate/geometry"
)

// Page owns one page's tokens and its current screen placement, and performs
// all coordinate conversions between the two spaces. A Page is created once
// per document load and replaced wholesale on reload; the placement alone is
// replaced on every zoom or resize.
//
// A Page is single-writer: only the layout routine calls [Page.SetPlacement],
// and every other consumer is read-only.
type Page struct {
	index  int
	width  float64
	height float64
	tokens []Token

	placement geometry.Bounds
	placed    bool
}

// NewPage builds the token index for one page. The token slice is copied;
// the Page never mutates or exposes the caller's slice.
func NewPage(pt PageTokens) *Page {
	toks := make([]Token, len(pt.Tokens))
	copy(toks, pt.Tokens)
	return &Page{
		index:  pt.Index,
		width:  pt.Width,
		height: pt.Height,
		tokens: toks,
	}
}

// Index returns the page's position in the document.
func (p *Page) Index() int { return p.index }

// Len returns the number of tokens on the page.
func (p *Page) Len() int { return len(p.tokens) }

// Token returns the token at index i and whether it exists.
func (p *Page) Token(i int) (Token, bool) {
	if i < 0 || i >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[i], true
}

// SetPlacement records where the page is currently rendered on screen.
// The layout collaborator must call this before any geometry query.
func (p *Page) SetPlacement(screen geometry.Bounds) {
	p.placement = screen
	p.placed = true
}

// Placed reports whether the page has received its first layout.
func (p *Page) Placed() bool { return p.placed }

// Scale returns renderedPageWidth / nativePageWidth. Calling Scale before
// SetPlacement is a programmer error and panics: callers must sequence the
// first layout before any interaction.
func (p *Page) Scale() float64 {
	if !p.placed {
		panic(fmt.Sprintf("tokens: geometry query on page %d before layout", p.index))
	}
	return p.placement.Width() / p.width
}

// TokenBounds returns the native-space rectangle of token i. A missing
// token maps to the canonical zero rectangle rather than an error.
func (p *Page) TokenBounds(i int) geometry.Bounds {
	tok, ok := p.Token(i)
	if !ok {
		return geometry.Bounds{}
	}
	return tok.Bounds()
}

// ScaledTokenBounds returns token i's rectangle converted to screen space
// at the current scale.
func (p *Page) ScaledTokenBounds(i int) geometry.Bounds {
	return p.TokenBounds(i).Scaled(p.Scale())
}

// ScaledBounds converts a native-space rectangle to screen space at the
// current scale.
func (p *Page) ScaledBounds(native geometry.Bounds) geometry.Bounds {
	return native.Scaled(p.Scale())
}

// Capture is the result of resolving a screen selection against the page:
// the captured token references, their spanning native-space bounds, and
// their text concatenated in token order. A free-form capture has no tokens
// and carries the inverse-scaled selection rectangle directly.
type Capture struct {
	PageIndex int
	TokenIDs  []TokenID
	Bounds    geometry.Bounds
	Text      string
	FreeForm  bool
}

// CaptureBounds resolves a screen-space selection rectangle to the tokens
// it overlaps. The selection must already be normalized. Returns ok=false
// when no token overlaps; the caller decides whether to fall back to a
// free-form capture.
//
// The result depends only on the set of captured tokens, never on
// iteration order: token ids and text follow the page's token order.
func (p *Page) CaptureBounds(selection geometry.Bounds) (Capture, bool) {
	return p.CaptureSelections([]geometry.Bounds{selection})
}

// CaptureSelections is the batch variant of CaptureBounds for a queued
// multi-rectangle selection: a token captured by any input rectangle is
// included exactly once, in token order.
func (p *Page) CaptureSelections(selections []geometry.Bounds) (Capture, bool) {
	scale := p.Scale()

	var ids []TokenID
	var boxes []geometry.Bounds
	var words []string
	for i, tok := range p.tokens {
		native := tok.Bounds()
		screen := native.Scaled(scale)
		for _, sel := range selections {
			if screen.Overlaps(sel) {
				ids = append(ids, TokenID{PageIndex: p.index, TokenIndex: i})
				boxes = append(boxes, native)
				words = append(words, tok.Text)
				break
			}
		}
	}
	if len(ids) == 0 {
		return Capture{}, false
	}

	return Capture{
		PageIndex: p.index,
		TokenIDs:  ids,
		Bounds:    geometry.Span(boxes, geometry.SpanPadding),
		Text:      strings.Join(words, " "),
	}, true
}

// CaptureFreeForm skips token matching entirely and stores the selection
// rectangle itself, converted to native space, with an empty token list.
func (p *Page) CaptureFreeForm(selection geometry.Bounds) Capture {
	return Capture{
		PageIndex: p.index,
		Bounds:    selection.Scaled(1 / p.Scale()),
		FreeForm:  true,
	}
}

// BoundsForTokens is the inverse of CaptureBounds: the spanning native
// bound over a stored token-id set, used to re-render a persisted
// annotation or a search hit at the current scale. Ids referencing missing
// tokens contribute a zero rectangle rather than failing.
func (p *Page) BoundsForTokens(ids []TokenID) geometry.Bounds {
	boxes := make([]geometry.Bounds, 0, len(ids))
	for _, id := range ids {
		boxes = append(boxes, p.TokenBounds(id.TokenIndex))
	}
	return geometry.Span(boxes, geometry.SpanPadding)
}

// Text concatenates the page's tokens in order, separated by single spaces.
func (p *Page) Text() string {
	words := make([]string, len(p.tokens))
	for i, tok := range p.tokens {
		words[i] = tok.Text
	}
	return strings.Join(words, " ")
}
