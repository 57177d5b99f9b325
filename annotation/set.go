package annotation

// Set is the aggregate root over a document's annotations, relations and
// doc-type classifications. Every mutating operation is pure — it takes the
// receiver by value and returns a new Set — so the consumer holds the only
// mutable reference and serializes logical mutations by applying them in
// sequence. A Set is never observed partially consistent: the relation
// cascade runs inside the same transition that removes an annotation.
//
// UnsavedChanges is raised by every mutation and cleared only by [Set.Saved],
// called by the persistence collaborator after a successful write.
type Set struct {
	Annotations    []Annotation
	Relations      []RelationGroup
	DocTypes       []DocTypeAnnotation
	UnsavedChanges bool
}

// NewSet builds an aggregate from persisted state. The slices are copied.
func NewSet(annotations []Annotation, relations []RelationGroup, docTypes []DocTypeAnnotation) Set {
	return Set{
		Annotations: append([]Annotation(nil), annotations...),
		Relations:   append([]RelationGroup(nil), relations...),
		DocTypes:    append([]DocTypeAnnotation(nil), docTypes...),
	}
}

// Saved returns a copy with UnsavedChanges cleared.
func (s Set) Saved() Set {
	out := s
	out.UnsavedChanges = false
	return out
}

// Annotation looks up an annotation by id.
func (s Set) Annotation(id string) (Annotation, bool) {
	for _, a := range s.Annotations {
		if a.ID() == id {
			return a, true
		}
	}
	return nil, false
}

// WithAnnotation appends a newly created or injected annotation.
func (s Set) WithAnnotation(a Annotation) Set {
	out := s
	out.Annotations = append(append([]Annotation(nil), s.Annotations...), a)
	out.UnsavedChanges = true
	return out
}

// WithoutAnnotation removes the annotation and runs the relation cascade:
// every relation loses the id, and any relation left with an emptied side
// is dropped. Removing an id that is not present is an idempotent no-op
// returning the receiver unchanged.
func (s Set) WithoutAnnotation(id string) Set {
	idx := -1
	for i, a := range s.Annotations {
		if a.ID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}

	out := s
	out.Annotations = make([]Annotation, 0, len(s.Annotations)-1)
	out.Annotations = append(out.Annotations, s.Annotations[:idx]...)
	out.Annotations = append(out.Annotations, s.Annotations[idx+1:]...)
	out.Relations = cascade(s.Relations, id)
	out.UnsavedChanges = true
	return out
}

// WithUpdatedAnnotation replaces the annotation sharing the argument's id.
// If no annotation has that id the receiver is returned unchanged.
func (s Set) WithUpdatedAnnotation(a Annotation) Set {
	for i, existing := range s.Annotations {
		if existing.ID() == a.ID() {
			out := s
			out.Annotations = append([]Annotation(nil), s.Annotations...)
			out.Annotations[i] = a
			out.UnsavedChanges = true
			return out
		}
	}
	return s
}

// WithRelation appends a relation group.
func (s Set) WithRelation(r RelationGroup) Set {
	out := s
	out.Relations = append(append([]RelationGroup(nil), s.Relations...), r)
	out.UnsavedChanges = true
	return out
}

// WithoutRelation removes a relation by id; missing ids are a no-op.
func (s Set) WithoutRelation(id string) Set {
	for i, r := range s.Relations {
		if r.ID == id {
			out := s
			out.Relations = make([]RelationGroup, 0, len(s.Relations)-1)
			out.Relations = append(out.Relations, s.Relations[:i]...)
			out.Relations = append(out.Relations, s.Relations[i+1:]...)
			out.UnsavedChanges = true
			return out
		}
	}
	return s
}

// WithDocType records a whole-document classification. A document carries
// at most one doc-type annotation per label: an existing annotation with
// the same label id is replaced.
func (s Set) WithDocType(d DocTypeAnnotation) Set {
	out := s
	out.DocTypes = make([]DocTypeAnnotation, 0, len(s.DocTypes)+1)
	for _, existing := range s.DocTypes {
		if existing.Label().ID != d.Label().ID {
			out.DocTypes = append(out.DocTypes, existing)
		}
	}
	out.DocTypes = append(out.DocTypes, d)
	out.UnsavedChanges = true
	return out
}

// WithoutDocType removes a doc-type annotation by id; missing ids are a
// no-op.
func (s Set) WithoutDocType(id string) Set {
	for i, d := range s.DocTypes {
		if d.ID() == id {
			out := s
			out.DocTypes = make([]DocTypeAnnotation, 0, len(s.DocTypes)-1)
			out.DocTypes = append(out.DocTypes, s.DocTypes[:i]...)
			out.DocTypes = append(out.DocTypes, s.DocTypes[i+1:]...)
			out.UnsavedChanges = true
			return out
		}
	}
	return s
}

// Undo pops the most recently added annotation and re-runs the relation
// cascade against every relation. With no annotations it is the identity:
// the receiver is returned unchanged, UnsavedChanges included.
func (s Set) Undo() Set {
	if len(s.Annotations) == 0 {
		return s
	}
	last := s.Annotations[len(s.Annotations)-1]

	out := s
	out.Annotations = append([]Annotation(nil), s.Annotations[:len(s.Annotations)-1]...)
	out.Relations = cascade(s.Relations, last.ID())
	out.UnsavedChanges = true
	return out
}

// cascade applies WithoutAnnotation to every relation, dropping the ones
// that report themselves no longer meaningful.
func cascade(relations []RelationGroup, id string) []RelationGroup {
	out := make([]RelationGroup, 0, len(relations))
	for _, r := range relations {
		if next, ok := r.WithoutAnnotation(id); ok {
			out = append(out, next)
		}
	}
	return out
}
