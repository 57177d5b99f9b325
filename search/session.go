package search

// Cursor tracks the selected index within an ordered result list. Advance
// and retreat wrap cyclically. The zero Cursor is an empty result list.
type Cursor struct {
	length int
	index  int
}

// Reset points the cursor at the first of length results.
func (c *Cursor) Reset(length int) {
	c.length = length
	c.index = 0
}

// Len returns the number of results the cursor ranges over.
func (c *Cursor) Len() int { return c.length }

// Index returns the selected result index, or -1 when there are no results.
func (c *Cursor) Index() int {
	if c.length == 0 {
		return -1
	}
	return c.index
}

// Next advances the selection cyclically and returns the new index.
func (c *Cursor) Next() int {
	if c.length == 0 {
		return -1
	}
	c.index = (c.index + 1) % c.length
	return c.index
}

// Prev retreats the selection cyclically and returns the new index.
func (c *Cursor) Prev() int {
	if c.length == 0 {
		return -1
	}
	c.index = (c.index - 1 + c.length) % c.length
	return c.index
}

// Session combines a corpus with the navigation contract: an ordered result
// list and a cyclically advancing selected index. A new query invalidates
// the previous results and resets the selection; re-running the unchanged
// query is idempotent and leaves the selection alone.
//
// A Session is not self-debouncing: the caller schedules keystroke-driven
// queries.
type Session struct {
	corpus  *Corpus
	query   string
	queried bool
	results []TokenResult
	cursor  Cursor
}

// NewSession creates a navigation session over a corpus.
func NewSession(corpus *Corpus) *Session {
	return &Session{corpus: corpus}
}

// Corpus returns the corpus the session searches over.
func (s *Session) Corpus() *Corpus { return s.corpus }

// Search runs the query and returns the ordered results. Repeating the
// current query returns the cached results without resetting the selection.
func (s *Session) Search(query string) []TokenResult {
	if s.queried && query == s.query {
		return s.results
	}
	s.query = query
	s.queried = true
	s.results = s.corpus.Find(query)
	s.cursor.Reset(len(s.results))
	return s.results
}

// Results returns the current ordered result list.
func (s *Session) Results() []TokenResult { return s.results }

// Selected returns the currently selected result, if any.
func (s *Session) Selected() (TokenResult, bool) {
	i := s.cursor.Index()
	if i < 0 {
		return TokenResult{}, false
	}
	return s.results[i], true
}

// SelectedIndex returns the selected result index, or -1 with no results.
func (s *Session) SelectedIndex() int { return s.cursor.Index() }

// Next advances the selection cyclically and returns the new index.
func (s *Session) Next() int { return s.cursor.Next() }

// Prev retreats the selection cyclically and returns the new index.
func (s *Session) Prev() int { return s.cursor.Prev() }
