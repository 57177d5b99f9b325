package annotate

import (
	"fmt"

	"github.com/tsawler/annotate/annotation"
	"github.com/tsawler/annotate/geometry"
	"github.com/tsawler/annotate/search"
	"github.com/tsawler/annotate/tokens"
)

// Document is the engine's root object: one loaded document's page token
// indexes, its annotation aggregate, and its search session. The Document
// is the single mutable reference; every aggregate transition underneath it
// is pure, so callers serialize logical mutations simply by invoking
// methods in sequence.
//
// A Document operates in one of two regimes. Token documents are built from
// per-page OCR token arrays and support hit testing and token-mode search.
// Text documents carry only a flat text string and support span annotations
// and span-mode search.
type Document struct {
	pages   []*tokens.Page
	byIndex map[int]*tokens.Page
	text    string

	set     annotation.Set
	session *search.Session
}

// NewDocument builds a token-regime document from per-page OCR token
// arrays, as produced by the hocr or ocr loaders.
func NewDocument(pageTokens []tokens.PageTokens) *Document {
	d := &Document{byIndex: make(map[int]*tokens.Page, len(pageTokens))}
	for _, pt := range pageTokens {
		page := tokens.NewPage(pt)
		d.pages = append(d.pages, page)
		d.byIndex[page.Index()] = page
	}
	d.session = search.NewSession(search.NewCorpus(d.pages))
	return d
}

// NewTextDocument builds a span-regime document over flat text.
func NewTextDocument(text string) *Document {
	return &Document{
		byIndex: make(map[int]*tokens.Page),
		text:    text,
		session: search.NewSession(search.NewCorpus(nil)),
	}
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.pages) }

// Page returns the token index for one page.
func (d *Document) Page(index int) (*tokens.Page, bool) {
	p, ok := d.byIndex[index]
	return p, ok
}

// Text returns the document's flat text: the loaded text for a text
// document, the concatenated token stream otherwise.
func (d *Document) Text() string {
	if len(d.pages) == 0 {
		return d.text
	}
	return d.session.Corpus().Text()
}

// mustPage resolves a page index. Asking for a page that was never loaded
// is a sequencing bug in the caller, handled like any other precondition
// violation.
func (d *Document) mustPage(index int) *tokens.Page {
	p, ok := d.byIndex[index]
	if !ok {
		panic(fmt.Sprintf("annotate: no page with index %d", index))
	}
	return p
}

// SetPagePlacement records where a page is currently rendered, replacing
// any previous placement. The layout collaborator calls this on every
// resize or zoom, and must do so before the first interaction with the
// page.
func (d *Document) SetPagePlacement(page int, screen geometry.Bounds) {
	d.mustPage(page).SetPlacement(screen)
}

// HitTest resolves a committed selection rectangle against a page and
// returns the candidate token-snapped annotation. The rectangle is
// normalized here: only in-progress drags stay un-normalized, and those
// never reach the engine. ok=false means no token was captured and the
// caller decides whether to fall back to HitTestFreeForm.
//
// The candidate is not committed; pass it to Commit once the user confirms.
func (d *Document) HitTest(page int, selection geometry.Bounds, label annotation.Label) (annotation.TokenAnnotation, bool) {
	capture, ok := d.mustPage(page).CaptureBounds(selection.Normalized())
	if !ok {
		return annotation.TokenAnnotation{}, false
	}
	return annotation.FromCapture(label, capture), true
}

// HitTestSelections is the batch variant of HitTest for a queued
// multi-rectangle selection.
func (d *Document) HitTestSelections(page int, selections []geometry.Bounds, label annotation.Label) (annotation.TokenAnnotation, bool) {
	normalized := make([]geometry.Bounds, len(selections))
	for i, sel := range selections {
		normalized[i] = sel.Normalized()
	}
	capture, ok := d.mustPage(page).CaptureSelections(normalized)
	if !ok {
		return annotation.TokenAnnotation{}, false
	}
	return annotation.FromCapture(label, capture), true
}

// HitTestFreeForm builds the free-form candidate: the drawn rectangle
// itself, unsnapped, with no captured tokens.
func (d *Document) HitTestFreeForm(page int, selection geometry.Bounds, label annotation.Label) annotation.TokenAnnotation {
	capture := d.mustPage(page).CaptureFreeForm(selection.Normalized())
	return annotation.FromCapture(label, capture)
}

// SpanCandidate builds a span annotation over a character range of a text
// document's flat text.
func (d *Document) SpanCandidate(span annotation.Span, label annotation.Label) annotation.SpanAnnotation {
	raw := ""
	if span.Start >= 0 && span.End <= len(d.text) && span.Start <= span.End {
		raw = d.text[span.Start:span.End]
	}
	return annotation.NewSpanAnnotation(label, span, raw)
}

// Commit adds a candidate annotation to the aggregate.
func (d *Document) Commit(a annotation.Annotation) {
	d.set = d.set.WithAnnotation(a)
}

// Delete removes an annotation and cascades relations; unknown ids are a
// no-op.
func (d *Document) Delete(id string) {
	d.set = d.set.WithoutAnnotation(id)
}

// Update applies a field delta to an annotation, preserving its id.
// It reports whether the annotation existed.
func (d *Document) Update(id string, delta annotation.Delta) bool {
	existing, ok := d.set.Annotation(id)
	if !ok {
		return false
	}
	d.set = d.set.WithUpdatedAnnotation(existing.Update(delta))
	return true
}

// Relate links source annotations to target annotations under a label and
// returns the created relation group.
func (d *Document) Relate(label annotation.Label, sourceIDs, targetIDs []string) annotation.RelationGroup {
	rel := annotation.NewRelationGroup(label, sourceIDs, targetIDs)
	d.set = d.set.WithRelation(rel)
	return rel
}

// Unrelate removes a relation group by id; unknown ids are a no-op.
func (d *Document) Unrelate(id string) {
	d.set = d.set.WithoutRelation(id)
}

// SetDocType classifies the whole document, replacing any existing
// classification with the same label.
func (d *Document) SetDocType(label annotation.Label) annotation.DocTypeAnnotation {
	dt := annotation.NewDocTypeAnnotation(label)
	d.set = d.set.WithDocType(dt)
	return dt
}

// RemoveDocType removes a classification by id; unknown ids are a no-op.
func (d *Document) RemoveDocType(id string) {
	d.set = d.set.WithoutDocType(id)
}

// Undo pops the most recently added annotation, cascading relations.
func (d *Document) Undo() {
	d.set = d.set.Undo()
}

// Saved clears the unsaved-changes flag; the persistence collaborator
// calls this after a successful write.
func (d *Document) Saved() {
	d.set = d.set.Saved()
}

// Unsaved reports whether the aggregate has mutations the persistence
// collaborator has not written yet.
func (d *Document) Unsaved() bool { return d.set.UnsavedChanges }

// Annotations returns the current aggregate snapshot. The returned value
// is independent of later mutations.
func (d *Document) Annotations() annotation.Set { return d.set }

// LoadRecords replaces the aggregate with annotations reconstructed from
// persisted storage. The loaded state counts as saved.
func (d *Document) LoadRecords(records []annotation.Record) error {
	var anns []annotation.Annotation
	var docTypes []annotation.DocTypeAnnotation
	for _, rec := range records {
		a, err := annotation.FromRecord(rec)
		if err != nil {
			return fmt.Errorf("loading record %q: %w", rec.ID, err)
		}
		if dt, ok := a.(annotation.DocTypeAnnotation); ok {
			docTypes = append(docTypes, dt)
			continue
		}
		anns = append(anns, a)
	}
	d.set = annotation.NewSet(anns, d.set.Relations, docTypes)
	return nil
}

// Records serializes the aggregate for the persistence collaborator.
func (d *Document) Records() ([]annotation.Record, error) {
	return d.set.Records()
}

// HighlightBounds returns the screen-space rectangle per page at which a
// token annotation should be highlighted at the current scale, derived
// from its stored token references. Pages that are not currently laid out
// are skipped.
func (d *Document) HighlightBounds(a annotation.TokenAnnotation) map[int]geometry.Bounds {
	out := make(map[int]geometry.Bounds)
	for idx, sel := range a.Pages() {
		page, ok := d.byIndex[idx]
		if !ok || !page.Placed() {
			continue
		}
		if len(sel.TokenIDs) == 0 {
			// Free-form geometry is the stored rectangle itself.
			out[idx] = page.ScaledBounds(sel.Bounds)
			continue
		}
		out[idx] = page.ScaledBounds(page.BoundsForTokens(sel.TokenIDs))
	}
	return out
}

// Search runs token-mode search over the document's token streams and
// returns ordered results. Repeating the current query is idempotent and
// keeps the result selection.
func (d *Document) Search(query string) []search.TokenResult {
	return d.session.Search(query)
}

// SearchText runs span-mode search over a text document's flat text.
func (d *Document) SearchText(query string) []search.SpanResult {
	return search.FindInText(d.text, query)
}

// NextResult advances the selected search result cyclically.
func (d *Document) NextResult() int { return d.session.Next() }

// PrevResult retreats the selected search result cyclically.
func (d *Document) PrevResult() int { return d.session.Prev() }

// SelectedResult returns the currently selected search result, if any.
func (d *Document) SelectedResult() (search.TokenResult, bool) {
	return d.session.Selected()
}
