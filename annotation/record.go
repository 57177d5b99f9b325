package annotation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/tsawler/annotate/geometry"
	"github.com/tsawler/annotate/tokens"
)

// Record is the persisted wire shape of an annotation, shared with the
// storage collaborator. The JSON payload discriminates the variant: token
// annotations carry a pageIndex-keyed object of per-page geometry, span
// annotations carry {"start","end"}, and doc-type annotations carry no
// payload at all.
type Record struct {
	ID            string          `json:"id"`
	Page          int             `json:"page"`
	Label         Label           `json:"annotationLabel"`
	RawText       string          `json:"rawText"`
	Structural    bool            `json:"structural"`
	JSON          json.RawMessage `json:"json,omitempty"`
	MyPermissions Permissions     `json:"myPermissions"`
	Approved      bool            `json:"approved"`
	Rejected      bool            `json:"rejected"`
}

type boundsRecord struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

type pageRecord struct {
	Bounds      boundsRecord     `json:"bounds"`
	TokensJsons []tokens.TokenID `json:"tokensJsons"`
	RawText     string           `json:"rawText"`
}

// ToRecord serializes an annotation into its wire shape. Geometry is always
// serialized in native token space.
func ToRecord(a Annotation) (Record, error) {
	rec := Record{
		ID:            a.ID(),
		Label:         a.Label(),
		RawText:       a.RawText(),
		Structural:    a.Structural(),
		MyPermissions: a.Permissions(),
		Approved:      a.Approved(),
		Rejected:      a.Rejected(),
	}

	switch a := a.(type) {
	case TokenAnnotation:
		pages := a.Pages()
		payload := make(map[string]pageRecord, len(pages))
		for idx, sel := range pages {
			payload[strconv.Itoa(idx)] = pageRecord{
				Bounds: boundsRecord{
					Left:   sel.Bounds.Left,
					Top:    sel.Bounds.Top,
					Right:  sel.Bounds.Right,
					Bottom: sel.Bounds.Bottom,
				},
				TokensJsons: sel.TokenIDs,
				RawText:     sel.RawText,
			}
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return Record{}, fmt.Errorf("encoding token pages: %w", err)
		}
		rec.JSON = raw
		if indexes := a.PageIndexes(); len(indexes) > 0 {
			rec.Page = indexes[0]
		}
	case SpanAnnotation:
		raw, err := json.Marshal(a.Span())
		if err != nil {
			return Record{}, fmt.Errorf("encoding span: %w", err)
		}
		rec.JSON = raw
	case DocTypeAnnotation:
		// No geometry payload.
	default:
		return Record{}, fmt.Errorf("unknown annotation kind %v", a.Kind())
	}

	return rec, nil
}

// FromRecord reconstructs an annotation from its wire shape. A record with
// no id is assigned a generated one.
func FromRecord(rec Record) (Annotation, error) {
	m := meta{
		id:          rec.ID,
		label:       rec.Label,
		rawText:     rec.RawText,
		structural:  rec.Structural,
		permissions: rec.MyPermissions,
		approved:    rec.Approved,
		rejected:    rec.Rejected,
	}
	if m.id == "" {
		m.id = uuid.NewString()
	}

	if len(rec.JSON) == 0 || string(rec.JSON) == "null" {
		return DocTypeAnnotation{meta: m}, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(rec.JSON, &probe); err != nil {
		return nil, fmt.Errorf("decoding annotation payload: %w", err)
	}

	if _, hasStart := probe["start"]; hasStart {
		var span Span
		if err := json.Unmarshal(rec.JSON, &span); err != nil {
			return nil, fmt.Errorf("decoding span payload: %w", err)
		}
		return SpanAnnotation{meta: m, span: span}, nil
	}

	pages := make(map[int]PageSelection, len(probe))
	for key, raw := range probe {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("page key %q is not an index: %w", key, err)
		}
		var pr pageRecord
		if err := json.Unmarshal(raw, &pr); err != nil {
			return nil, fmt.Errorf("decoding page %d payload: %w", idx, err)
		}
		pages[idx] = PageSelection{
			Bounds: geometry.Bounds{
				Left:   pr.Bounds.Left,
				Top:    pr.Bounds.Top,
				Right:  pr.Bounds.Right,
				Bottom: pr.Bounds.Bottom,
			},
			TokenIDs: pr.TokensJsons,
			RawText:  pr.RawText,
		}
	}
	return TokenAnnotation{meta: m, pages: pages}, nil
}

// Records serializes every annotation in the aggregate, in storage order:
// annotations first, then doc-types. Relations are serialized separately by
// the caller since the wire protocol stores them as their own records.
func (s Set) Records() ([]Record, error) {
	out := make([]Record, 0, len(s.Annotations)+len(s.DocTypes))
	for _, a := range s.Annotations {
		rec, err := ToRecord(a)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	docTypes := append([]DocTypeAnnotation(nil), s.DocTypes...)
	sort.Slice(docTypes, func(i, j int) bool { return docTypes[i].Label().ID < docTypes[j].Label().ID })
	for _, d := range docTypes {
		rec, err := ToRecord(d)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
