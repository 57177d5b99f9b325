// Package geometry provides the pure geometric primitives the annotation
// engine is built on.
//
// Every operation here is a stateless function over the [Bounds] value type.
// The same primitives serve both coordinate spaces the engine deals with:
// token space (a page's native OCR coordinates) and screen space (the
// currently rendered page element). A Bounds value always lives in exactly
// one of the two spaces; conversion between them happens via [Bounds.Scaled]
// in the tokens package, never here.
//
// # Conventions
//
//   - Y grows downward: Top <= Bottom for a normalized rectangle.
//   - [Bounds.Overlaps] is strict: edge-touching rectangles do not overlap,
//     and zero-area rectangles overlap nothing.
//   - [Span] is the "minimal enclosing box" used both for the set of tokens
//     captured by a selection and for rendering multi-token annotations.
package geometry
