// Package annotation models the annotation/relation/doc-type object graph
// and the invariants that hold it together.
//
// # Variants
//
// [Annotation] is a tagged union over three capability-tagged variants:
//
//   - [TokenAnnotation] - anchored to token references, multi-page capable
//   - [SpanAnnotation] - anchored to a character-offset range in flat text
//   - [DocTypeAnnotation] - a whole-document classification, no geometry
//
// All variants are immutable values sharing one mutation mechanism: Update
// takes a [Delta] whose nil fields are copied from the receiver, and returns
// a new value with the same id. Identity survives only through the id.
//
// # The aggregate
//
// [Set] owns referential consistency between annotations and relations.
// Every mutating operation is a pure transition (Set) -> Set, and removing
// an annotation cascades through every [RelationGroup] in the same
// transition: a relation whose side is emptied by the removal is dropped
// outright, never retained with a dangling empty side.
//
// # Persistence
//
// [Record] is the wire shape exchanged with the storage collaborator;
// [ToRecord] and [FromRecord] convert in both directions. Stored geometry
// is always native token space — screen geometry is derived at render time
// by the tokens package and never persisted.
package annotation
