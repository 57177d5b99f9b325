package search

import (
	"sort"

	"golang.org/x/text/language"
	textsearch "golang.org/x/text/search"

	"github.com/tsawler/annotate/geometry"
	"github.com/tsawler/annotate/tokens"
)

// tokenEntry records one token's byte range within the concatenated corpus
// text. Entries are ordered by Start, which makes range lookups a binary
// search.
type tokenEntry struct {
	id    tokens.TokenID
	start int
	end   int
}

// Corpus is the page-spanning character index over a document's token
// streams. It is built once per document load and invalidated only by a
// token-stream change (a new OCR run), in which case the caller builds a
// fresh Corpus — never per keystroke.
type Corpus struct {
	text    string
	entries []tokenEntry
	pages   map[int]*tokens.Page
	matcher *textsearch.Matcher
}

// NewCorpus builds the search index from the document's pages, in page
// order. Token text is joined with single spaces, matching the raw text a
// selection capture produces.
func NewCorpus(pages []*tokens.Page) *Corpus {
	c := &Corpus{
		pages:   make(map[int]*tokens.Page, len(pages)),
		matcher: textsearch.New(language.Und, textsearch.IgnoreCase),
	}

	var text []byte
	for _, page := range pages {
		c.pages[page.Index()] = page
		for i := 0; i < page.Len(); i++ {
			tok, _ := page.Token(i)
			if len(text) > 0 {
				text = append(text, ' ')
			}
			start := len(text)
			text = append(text, tok.Text...)
			c.entries = append(c.entries, tokenEntry{
				id:    tokens.TokenID{PageIndex: page.Index(), TokenIndex: i},
				start: start,
				end:   len(text),
			})
		}
	}
	c.text = string(text)
	return c
}

// Text returns the concatenated document text the corpus indexes.
func (c *Corpus) Text() string { return c.text }

// TokenResult is one token-mode search hit, addressable back into the page
// token indexes: the covered token ids and one spanning native-space bound
// per page the match touches.
type TokenResult struct {
	TokensByPage map[int][]tokens.TokenID
	BoundsByPage map[int]geometry.Bounds
	StartPage    int
	EndPage      int
}

// Find returns every case-insensitive occurrence of query in document
// order. An empty query, or a query with no matches, yields no results.
// Find does not mutate the corpus: re-running an unchanged query over an
// unchanged corpus returns equal results.
func (c *Corpus) Find(query string) []TokenResult {
	var out []TokenResult
	for _, m := range c.matchRanges(query) {
		out = append(out, c.resolve(m[0], m[1]))
	}
	return out
}

// matchRanges scans for all non-overlapping matches, returning byte ranges
// into the corpus text.
func (c *Corpus) matchRanges(query string) [][2]int {
	if query == "" || c.text == "" {
		return nil
	}

	var ranges [][2]int
	offset := 0
	for offset < len(c.text) {
		start, end := c.matcher.IndexString(c.text[offset:], query)
		if start < 0 {
			break
		}
		ranges = append(ranges, [2]int{offset + start, offset + end})
		if end == start {
			break
		}
		offset += end
	}
	return ranges
}

// resolve maps a matched byte range to the tokens it covers, grouped per
// page, with one spanning bound per page touched.
func (c *Corpus) resolve(start, end int) TokenResult {
	result := TokenResult{
		TokensByPage: make(map[int][]tokens.TokenID),
		BoundsByPage: make(map[int]geometry.Bounds),
	}

	first := sort.Search(len(c.entries), func(i int) bool {
		return c.entries[i].end > start
	})

	boxesByPage := make(map[int][]geometry.Bounds)
	for i := first; i < len(c.entries) && c.entries[i].start < end; i++ {
		entry := c.entries[i]
		page := entry.id.PageIndex
		result.TokensByPage[page] = append(result.TokensByPage[page], entry.id)
		if p, ok := c.pages[page]; ok {
			boxesByPage[page] = append(boxesByPage[page], p.TokenBounds(entry.id.TokenIndex))
		}
	}

	firstPage := true
	for page, boxes := range boxesByPage {
		result.BoundsByPage[page] = geometry.Span(boxes, geometry.SpanPadding)
		if firstPage || page < result.StartPage {
			result.StartPage = page
		}
		if firstPage || page > result.EndPage {
			result.EndPage = page
		}
		firstPage = false
	}
	return result
}

// SpanResult is one span-mode search hit: a character-offset range into the
// flat document text, with the matched text included for display.
type SpanResult struct {
	Start int
	End   int
	Text  string
}

// FindInText runs span-mode search for plain-text documents: every
// case-insensitive occurrence of query in text, as character offsets, with
// no token resolution.
func FindInText(text, query string) []SpanResult {
	if query == "" || text == "" {
		return nil
	}

	matcher := textsearch.New(language.Und, textsearch.IgnoreCase)
	var out []SpanResult
	offset := 0
	for offset < len(text) {
		start, end := matcher.IndexString(text[offset:], query)
		if start < 0 {
			break
		}
		out = append(out, SpanResult{
			Start: offset + start,
			End:   offset + end,
			Text:  text[offset+start : offset+end],
		})
		if end == start {
			break
		}
		offset += end
	}
	return out
}
