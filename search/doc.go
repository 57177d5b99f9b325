// Package search finds query-string occurrences against document text in
// either of the engine's two coordinate regimes.
//
// Token mode builds a [Corpus] once per document load: the concatenation of
// every page's token stream plus a side index from character position back
// to the owning token. Hits resolve to token ids and one spanning bound per
// page touched, addressable straight into the tokens package for highlight
// rendering at the current scale. Span mode ([FindInText]) serves flat-text
// documents and returns character offsets directly.
//
// Matching is case-insensitive via golang.org/x/text/search, which reports
// byte offsets into the original text so index mapping survives case
// folding. [Session] layers the navigation contract on top: document-order
// results with a cyclically advancing selected index that a new query
// resets.
package search
