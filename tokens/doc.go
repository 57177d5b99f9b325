// Package tokens maintains the per-page token index: the single source of
// truth for one page's OCR tokens and their current on-screen placement.
//
// A [Page] is built once per page from the raw token array an OCR loader
// produced (see the hocr and ocr packages, or supply [PageTokens] directly)
// and replaced wholesale on reload. The layout collaborator assigns the
// page's screen rectangle via [Page.SetPlacement] on every zoom or resize;
// every geometry query derives the conversion factor
//
//	scale = renderedPageWidth / nativePageWidth
//
// on the fly, so native token geometry is never duplicated in screen space.
//
// The central operation is [Page.CaptureBounds]: resolving a user-drawn
// screen rectangle to the set of tokens it overlaps, producing a [Capture]
// that the annotation package turns into a token-snapped annotation.
// Querying geometry before the first SetPlacement is a programmer error and
// panics; it is prevented by sequencing, never caught.
package tokens
