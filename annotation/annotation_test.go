package annotation

import (
	"reflect"
	"testing"

	"github.com/tsawler/annotate/geometry"
	"github.com/tsawler/annotate/tokens"
)

var testLabel = Label{ID: "l1", Text: "Person", Color: "#ff0000"}

func sampleTokenAnnotation() TokenAnnotation {
	return NewTokenAnnotation(testLabel, map[int]PageSelection{
		0: {
			Bounds:   geometry.NewBounds(7, -3, 33, 13),
			TokenIDs: []tokens.TokenID{{PageIndex: 0, TokenIndex: 1}, {PageIndex: 0, TokenIndex: 2}},
			RawText:  "ipsum dolor",
		},
	}, "ipsum dolor")
}

func TestNewAnnotationsGenerateIDs(t *testing.T) {
	a := sampleTokenAnnotation()
	b := sampleTokenAnnotation()

	if a.ID() == "" || b.ID() == "" {
		t.Fatal("constructor left id empty")
	}
	if a.ID() == b.ID() {
		t.Error("two constructed annotations share an id")
	}
}

func TestKindDiscriminators(t *testing.T) {
	tests := []struct {
		name string
		a    Annotation
		want Kind
	}{
		{"token", sampleTokenAnnotation(), KindToken},
		{"span", NewSpanAnnotation(testLabel, Span{Start: 3, End: 9}, "ipsum"), KindSpan},
		{"doctype", NewDocTypeAnnotation(testLabel), KindDocType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateKeepsIDAndOverridesFields(t *testing.T) {
	orig := sampleTokenAnnotation()

	newText := "replaced"
	approved := true
	updated := orig.Update(Delta{RawText: &newText, Approved: &approved})

	if updated.ID() != orig.ID() {
		t.Errorf("Update changed id: %q != %q", updated.ID(), orig.ID())
	}
	if updated.RawText() != "replaced" {
		t.Errorf("RawText = %q, want %q", updated.RawText(), "replaced")
	}
	if !updated.Approved() {
		t.Error("Approved not overridden")
	}
	// Unspecified fields are copied from the receiver.
	if updated.Label() != testLabel {
		t.Errorf("Label = %+v, want %+v", updated.Label(), testLabel)
	}
	// The receiver is untouched.
	if orig.RawText() != "ipsum dolor" || orig.Approved() {
		t.Error("Update mutated the receiver")
	}
}

func TestUpdateSpanGeometry(t *testing.T) {
	orig := NewSpanAnnotation(testLabel, Span{Start: 3, End: 9}, "ipsum")

	span := Span{Start: 10, End: 20}
	free := true
	updated := orig.Update(Delta{Span: &span, FreeForm: &free}).(SpanAnnotation)

	if updated.Span() != span {
		t.Errorf("Span = %+v, want %+v", updated.Span(), span)
	}
	if !updated.FreeForm() {
		t.Error("FreeForm not overridden")
	}
	if orig.Span() != (Span{Start: 3, End: 9}) {
		t.Error("Update mutated the receiver")
	}
}

func TestFromCapture(t *testing.T) {
	capture := tokens.Capture{
		PageIndex: 2,
		TokenIDs:  []tokens.TokenID{{PageIndex: 2, TokenIndex: 5}},
		Bounds:    geometry.NewBounds(1, 2, 3, 4),
		Text:      "word",
	}

	a := FromCapture(testLabel, capture)
	sel, ok := a.Page(2)
	if !ok {
		t.Fatal("capture page missing from annotation")
	}
	if sel.RawText != "word" || a.RawText() != "word" {
		t.Errorf("raw text not carried: page %q, annotation %q", sel.RawText, a.RawText())
	}
	if !reflect.DeepEqual(sel.TokenIDs, capture.TokenIDs) {
		t.Errorf("TokenIDs = %+v, want %+v", sel.TokenIDs, capture.TokenIDs)
	}
	if a.FreeForm() {
		t.Error("token-snapped capture produced a free-form annotation")
	}
}

func TestFromCaptureFreeForm(t *testing.T) {
	a := FromCapture(testLabel, tokens.Capture{
		PageIndex: 0,
		Bounds:    geometry.NewBounds(5, 5, 15, 15),
		FreeForm:  true,
	})

	if !a.FreeForm() {
		t.Error("free-form flag lost")
	}
	if sel, _ := a.Page(0); len(sel.TokenIDs) != 0 {
		t.Errorf("free-form annotation has %d tokens, want 0", len(sel.TokenIDs))
	}
}

func TestPagesReturnsCopy(t *testing.T) {
	a := sampleTokenAnnotation()

	pages := a.Pages()
	pages[0] = PageSelection{RawText: "tampered"}
	if sel, _ := a.Page(0); sel.RawText != "ipsum dolor" {
		t.Error("mutating the returned map reached the annotation")
	}
}

func TestPermissionsCan(t *testing.T) {
	ps := Permissions{PermissionRead, PermissionUpdate}

	if !ps.Can(PermissionRead) || !ps.Can(PermissionUpdate) {
		t.Error("held permissions not reported")
	}
	if ps.Can(PermissionRemove) {
		t.Error("missing permission reported as held")
	}
}

func TestPageIndexesSorted(t *testing.T) {
	a := NewTokenAnnotation(testLabel, map[int]PageSelection{
		4: {}, 1: {}, 3: {},
	}, "")

	want := []int{1, 3, 4}
	if got := a.PageIndexes(); !reflect.DeepEqual(got, want) {
		t.Errorf("PageIndexes() = %v, want %v", got, want)
	}
}
