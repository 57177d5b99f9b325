package search

import (
	"reflect"
	"testing"

	"github.com/tsawler/annotate/tokens"
)

// twoPageCorpus spells "foo bar" on page 0 and "foo" on page 1, each token
// a 10x10 box laid out left to right.
func twoPageCorpus() *Corpus {
	page0 := tokens.NewPage(tokens.PageTokens{
		Index: 0, Width: 100, Height: 100,
		Tokens: []tokens.Token{
			{X: 0, Y: 0, Width: 10, Height: 10, Text: "foo"},
			{X: 10, Y: 0, Width: 10, Height: 10, Text: "bar"},
		},
	})
	page1 := tokens.NewPage(tokens.PageTokens{
		Index: 1, Width: 100, Height: 100,
		Tokens: []tokens.Token{
			{X: 0, Y: 0, Width: 10, Height: 10, Text: "foo"},
		},
	})
	return NewCorpus([]*tokens.Page{page0, page1})
}

func TestCorpusText(t *testing.T) {
	c := twoPageCorpus()
	if got := c.Text(); got != "foo bar foo" {
		t.Errorf("Text() = %q, want %q", got, "foo bar foo")
	}
}

func TestFindAcrossPages(t *testing.T) {
	c := twoPageCorpus()

	results := c.Find("foo")
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	// First hit is the token on page 0, second the token on page 1,
	// in document order.
	first := results[0]
	if want := []tokens.TokenID{{PageIndex: 0, TokenIndex: 0}}; !reflect.DeepEqual(first.TokensByPage[0], want) {
		t.Errorf("first hit tokens = %+v, want %+v", first.TokensByPage[0], want)
	}
	if first.StartPage != 0 || first.EndPage != 0 {
		t.Errorf("first hit pages = %d..%d, want 0..0", first.StartPage, first.EndPage)
	}

	second := results[1]
	if want := []tokens.TokenID{{PageIndex: 1, TokenIndex: 0}}; !reflect.DeepEqual(second.TokensByPage[1], want) {
		t.Errorf("second hit tokens = %+v, want %+v", second.TokensByPage[1], want)
	}
	if second.StartPage != 1 || second.EndPage != 1 {
		t.Errorf("second hit pages = %d..%d, want 1..1", second.StartPage, second.EndPage)
	}
}

func TestFindCaseInsensitive(t *testing.T) {
	c := twoPageCorpus()

	if got := len(c.Find("FOO")); got != 2 {
		t.Errorf("Find(FOO) returned %d results, want 2", got)
	}
	if got := len(c.Find("Bar")); got != 1 {
		t.Errorf("Find(Bar) returned %d results, want 1", got)
	}
}

func TestFindMultiTokenQuery(t *testing.T) {
	c := twoPageCorpus()

	results := c.Find("foo bar")
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	want := []tokens.TokenID{
		{PageIndex: 0, TokenIndex: 0},
		{PageIndex: 0, TokenIndex: 1},
	}
	if !reflect.DeepEqual(results[0].TokensByPage[0], want) {
		t.Errorf("tokens = %+v, want %+v", results[0].TokensByPage[0], want)
	}

	// Spanning bound over both 10x10 tokens, padded.
	bounds, ok := results[0].BoundsByPage[0]
	if !ok {
		t.Fatal("no bounds for page 0")
	}
	if bounds.Left != -3 || bounds.Right != 23 || bounds.Top != -3 || bounds.Bottom != 13 {
		t.Errorf("bounds = %+v, want {-3 -3 23 13}", bounds)
	}
}

func TestFindCrossPageMatch(t *testing.T) {
	c := twoPageCorpus()

	// "bar foo" straddles the page boundary.
	results := c.Find("bar foo")
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	r := results[0]
	if r.StartPage != 0 || r.EndPage != 1 {
		t.Errorf("pages = %d..%d, want 0..1", r.StartPage, r.EndPage)
	}
	if len(r.TokensByPage[0]) != 1 || len(r.TokensByPage[1]) != 1 {
		t.Errorf("tokens per page = %d/%d, want 1/1", len(r.TokensByPage[0]), len(r.TokensByPage[1]))
	}
	if len(r.BoundsByPage) != 2 {
		t.Errorf("len(BoundsByPage) = %d, want 2", len(r.BoundsByPage))
	}
}

func TestFindNoMatchesAndEmptyQuery(t *testing.T) {
	c := twoPageCorpus()

	if got := c.Find("absent"); len(got) != 0 {
		t.Errorf("Find(absent) returned %d results", len(got))
	}
	if got := c.Find(""); len(got) != 0 {
		t.Errorf("Find(\"\") returned %d results", len(got))
	}
}

func TestFindIdempotent(t *testing.T) {
	c := twoPageCorpus()

	first := c.Find("foo")
	second := c.Find("foo")
	if !reflect.DeepEqual(first, second) {
		t.Error("re-running an unchanged query returned different results")
	}
}

func TestFindInText(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog. THE end."

	results := FindInText(text, "the")
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[0].Start != 0 || results[0].End != 3 || results[0].Text != "The" {
		t.Errorf("first = %+v", results[0])
	}
	if results[2].Text != "THE" {
		t.Errorf("third match text = %q, want %q", results[2].Text, "THE")
	}

	if got := FindInText(text, ""); got != nil {
		t.Errorf("empty query returned %d results", len(got))
	}
	if got := FindInText("", "the"); got != nil {
		t.Errorf("empty text returned %d results", len(got))
	}
}
