package annotation

import (
	"sort"

	"github.com/google/uuid"
	"github.com/tsawler/annotate/geometry"
	"github.com/tsawler/annotate/tokens"
)

// Label identifies an annotation or relation class from the labelling
// ontology. The engine treats labels as opaque references; Color is carried
// for the consumer's highlight rendering.
type Label struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Color string `json:"color"`
}

// Permission is one capability a viewer holds on an annotation.
type Permission string

const (
	PermissionRead   Permission = "read"
	PermissionUpdate Permission = "update"
	PermissionRemove Permission = "remove"
)

// Permissions is the set of capabilities the current viewer holds.
type Permissions []Permission

// Can reports whether the permission set includes p.
func (ps Permissions) Can(p Permission) bool {
	for _, have := range ps {
		if have == p {
			return true
		}
	}
	return false
}

// Kind discriminates the annotation variants.
type Kind int

const (
	// KindToken anchors to a set of token references, possibly across pages.
	KindToken Kind = iota
	// KindSpan anchors to a character-offset range in flat document text.
	KindSpan
	// KindDocType classifies the whole document and carries no geometry.
	KindDocType
)

func (k Kind) String() string {
	switch k {
	case KindToken:
		return "token"
	case KindSpan:
		return "span"
	case KindDocType:
		return "doctype"
	default:
		return "unknown"
	}
}

// Annotation is the tagged union over the three variants. Consumers switch
// exhaustively on the concrete types [TokenAnnotation], [SpanAnnotation] and
// [DocTypeAnnotation]; Kind is a cheap discriminator for places that only
// need the tag.
//
// Annotations are immutable values. Update is the sole mutation mechanism:
// it returns a new value carrying the same ID with the delta's fields
// overridden, so identity survives only through the ID.
type Annotation interface {
	ID() string
	Kind() Kind
	Label() Label
	RawText() string
	Structural() bool
	Permissions() Permissions
	Approved() bool
	Rejected() bool
	Update(Delta) Annotation
}

// Delta is the generic field-override builder shared by every variant: nil
// fields are copied from the receiver, non-nil fields replace it. Geometry
// fields that do not apply to the receiver's kind are ignored.
type Delta struct {
	Label       *Label
	RawText     *string
	Structural  *bool
	Permissions *Permissions
	Approved    *bool
	Rejected    *bool

	// Token geometry: full replacement of the per-page selection map.
	Pages map[int]PageSelection

	// Span geometry.
	Span     *Span
	FreeForm *bool
}

// meta holds the metadata every variant carries.
type meta struct {
	id          string
	label       Label
	rawText     string
	structural  bool
	permissions Permissions
	approved    bool
	rejected    bool
}

func newMeta(label Label) meta {
	return meta{id: uuid.NewString(), label: label}
}

func (m meta) ID() string               { return m.id }
func (m meta) Label() Label             { return m.label }
func (m meta) RawText() string          { return m.rawText }
func (m meta) Structural() bool         { return m.structural }
func (m meta) Permissions() Permissions { return m.permissions }
func (m meta) Approved() bool           { return m.approved }
func (m meta) Rejected() bool           { return m.rejected }

// apply is the shared override step behind every variant's Update.
func (m meta) apply(d Delta) meta {
	out := m
	if d.Label != nil {
		out.label = *d.Label
	}
	if d.RawText != nil {
		out.rawText = *d.RawText
	}
	if d.Structural != nil {
		out.structural = *d.Structural
	}
	if d.Permissions != nil {
		out.permissions = *d.Permissions
	}
	if d.Approved != nil {
		out.approved = *d.Approved
	}
	if d.Rejected != nil {
		out.rejected = *d.Rejected
	}
	return out
}

// PageSelection is one page's share of a token annotation: the token
// references on that page, their spanning bound in native space, and the
// captured text.
type PageSelection struct {
	Bounds   geometry.Bounds
	TokenIDs []tokens.TokenID
	RawText  string
}

// TokenAnnotation anchors to token references, possibly spanning multiple
// pages. A free-form token annotation has an empty token list and carries
// the drawn rectangle directly.
type TokenAnnotation struct {
	meta
	pages    map[int]PageSelection
	freeForm bool
}

// NewTokenAnnotation creates a token annotation with a generated id.
func NewTokenAnnotation(label Label, pages map[int]PageSelection, rawText string) TokenAnnotation {
	m := newMeta(label)
	m.rawText = rawText
	return TokenAnnotation{meta: m, pages: copyPages(pages)}
}

// FromCapture builds a token annotation from a single-page hit-test result.
func FromCapture(label Label, c tokens.Capture) TokenAnnotation {
	a := NewTokenAnnotation(label, map[int]PageSelection{
		c.PageIndex: {
			Bounds:   c.Bounds,
			TokenIDs: append([]tokens.TokenID(nil), c.TokenIDs...),
			RawText:  c.Text,
		},
	}, c.Text)
	a.freeForm = c.FreeForm
	return a
}

func (a TokenAnnotation) Kind() Kind { return KindToken }

// FreeForm reports whether the geometry is the user's drawn rectangle,
// unsnapped to tokens.
func (a TokenAnnotation) FreeForm() bool { return a.freeForm }

// Pages returns a copy of the per-page selection map.
func (a TokenAnnotation) Pages() map[int]PageSelection {
	return copyPages(a.pages)
}

// Page returns the selection for one page and whether it exists.
func (a TokenAnnotation) Page(index int) (PageSelection, bool) {
	sel, ok := a.pages[index]
	return sel, ok
}

// PageIndexes returns the touched page indexes in ascending order.
func (a TokenAnnotation) PageIndexes() []int {
	out := make([]int, 0, len(a.pages))
	for idx := range a.pages {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Update returns a new TokenAnnotation with the delta applied, keeping the
// receiver's id.
func (a TokenAnnotation) Update(d Delta) Annotation {
	out := a
	out.meta = a.meta.apply(d)
	if d.Pages != nil {
		out.pages = copyPages(d.Pages)
	}
	if d.FreeForm != nil {
		out.freeForm = *d.FreeForm
	}
	return out
}

// Span is a character-offset range into the flat document text. Start is
// inclusive, End exclusive.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SpanAnnotation anchors to a character-offset range in the document's flat
// text, for documents that have no token geometry.
type SpanAnnotation struct {
	meta
	span     Span
	freeForm bool
}

// NewSpanAnnotation creates a span annotation with a generated id.
func NewSpanAnnotation(label Label, span Span, rawText string) SpanAnnotation {
	m := newMeta(label)
	m.rawText = rawText
	return SpanAnnotation{meta: m, span: span}
}

func (a SpanAnnotation) Kind() Kind { return KindSpan }

// Span returns the annotated character range.
func (a SpanAnnotation) Span() Span { return a.span }

// FreeForm reports whether the span's geometry is unsnapped.
func (a SpanAnnotation) FreeForm() bool { return a.freeForm }

// Update returns a new SpanAnnotation with the delta applied, keeping the
// receiver's id.
func (a SpanAnnotation) Update(d Delta) Annotation {
	out := a
	out.meta = a.meta.apply(d)
	if d.Span != nil {
		out.span = *d.Span
	}
	if d.FreeForm != nil {
		out.freeForm = *d.FreeForm
	}
	return out
}

// DocTypeAnnotation classifies the whole document: a label and the viewer's
// permissions, no geometry.
type DocTypeAnnotation struct {
	meta
}

// NewDocTypeAnnotation creates a doc-type annotation with a generated id.
func NewDocTypeAnnotation(label Label) DocTypeAnnotation {
	return DocTypeAnnotation{meta: newMeta(label)}
}

func (a DocTypeAnnotation) Kind() Kind { return KindDocType }

// Update returns a new DocTypeAnnotation with the delta applied, keeping
// the receiver's id.
func (a DocTypeAnnotation) Update(d Delta) Annotation {
	out := a
	out.meta = a.meta.apply(d)
	return out
}

func copyPages(pages map[int]PageSelection) map[int]PageSelection {
	if pages == nil {
		return nil
	}
	out := make(map[int]PageSelection, len(pages))
	for idx, sel := range pages {
		sel.TokenIDs = append([]tokens.TokenID(nil), sel.TokenIDs...)
		out[idx] = sel
	}
	return out
}
