// Package annotate is the geometry and consistency engine behind a
// browser-based document annotation tool.
//
// The engine translates between the native coordinate space of extracted
// OCR tokens and the dynamically scaled space a document is rendered in,
// resolves user-drawn selection rectangles to the tokens they capture,
// maintains the annotation/relation/doc-type graph with its deletion
// cascade invariants, and answers full-text search over the same
// coordinates. Rendering, persistence transport and UI chrome are external
// collaborators that consume this engine's model.
//
// Basic usage:
//
//	pages, err := hocr.Open("scan.hocr")
//	if err != nil {
//	    // handle error
//	}
//	doc := annotate.NewDocument(pages)
//	doc.SetPagePlacement(0, geometry.NewBounds(0, 0, 850, 1100))
//
//	if candidate, ok := doc.HitTest(0, dragRect, personLabel); ok {
//	    doc.Commit(candidate)
//	}
//
// Every mutation of the annotation graph is a pure transition underneath;
// [Document] is the single mutable reference the surrounding UI holds.
package annotate

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	pages := annotate.Must(hocr.Open("scan.hocr"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
