package annotation

import "github.com/google/uuid"

// RelationGroup is a labeled, directed many-to-many edge set over
// annotation ids. Like annotations it is an immutable value: mutation
// happens by constructing a new group.
type RelationGroup struct {
	ID        string
	Label     Label
	SourceIDs []string
	TargetIDs []string
}

// NewRelationGroup creates a relation group with a generated id. The id
// slices are copied.
func NewRelationGroup(label Label, sourceIDs, targetIDs []string) RelationGroup {
	return RelationGroup{
		ID:        uuid.NewString(),
		Label:     label,
		SourceIDs: append([]string(nil), sourceIDs...),
		TargetIDs: append([]string(nil), targetIDs...),
	}
}

// WithoutAnnotation removes the deleted annotation's id from both sides and
// reports whether the relation is still meaningful. ok=false means a side
// that had members lost its last one, so the relation must be dropped
// outright — a relation is never retained with a dangling empty side.
//
// An id present on neither side leaves the relation unchanged.
func (r RelationGroup) WithoutAnnotation(annotationID string) (RelationGroup, bool) {
	sourceHadMembers := len(r.SourceIDs) > 0
	targetHadMembers := len(r.TargetIDs) > 0

	sources := removeID(r.SourceIDs, annotationID)
	targets := removeID(r.TargetIDs, annotationID)

	if (sourceHadMembers && len(sources) == 0) || (targetHadMembers && len(targets) == 0) {
		return RelationGroup{}, false
	}

	return RelationGroup{
		ID:        r.ID,
		Label:     r.Label,
		SourceIDs: sources,
		TargetIDs: targets,
	}, true
}

// Contains reports whether the annotation id appears on either side.
func (r RelationGroup) Contains(annotationID string) bool {
	for _, id := range r.SourceIDs {
		if id == annotationID {
			return true
		}
	}
	for _, id := range r.TargetIDs {
		if id == annotationID {
			return true
		}
	}
	return false
}

func removeID(ids []string, victim string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != victim {
			out = append(out, id)
		}
	}
	return out
}
