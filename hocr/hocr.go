// Package hocr loads OCR tokens from hOCR output, the HTML-based format
// Tesseract and most OCR engines emit.
//
// Parse walks the document for ocr_page elements and their ocrx_word
// descendants, reading each word's bounding box from the hOCR title
// attribute. The result is the loader interchange shape the tokens package
// consumes, one [tokens.PageTokens] per page in document order.
package hocr

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"

	"github.com/tsawler/annotate/tokens"
)

// ErrNoPages is returned when the input contains no ocr_page elements.
var ErrNoPages = errors.New("hocr: no ocr_page elements found")

// Open reads and parses an hOCR file.
func Open(filename string) ([]tokens.PageTokens, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return Parse(data)
}

// Parse converts raw hOCR data into per-page token arrays. Page dimensions
// come from the ocr_page bbox; word geometry from each ocrx_word bbox.
// Non-UTF-8 input declaring a legacy charset is decoded as ISO 8859-1
// before parsing.
func Parse(data []byte) ([]tokens.PageTokens, error) {
	decoded, err := decodeCharset(data)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(strings.NewReader(string(decoded)))
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	var pages []tokens.PageTokens
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocr_page") {
			pages = append(pages, parsePage(n, len(pages)))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	return pages, nil
}

// decodeCharset converts legacy single-byte input to UTF-8 when the
// document's meta declares a non-UTF-8 charset.
func decodeCharset(data []byte) ([]byte, error) {
	content := string(data)
	idx := strings.Index(content, "charset=")
	if idx < 0 {
		return data, nil
	}
	rest := content[idx+len("charset="):]
	fields := strings.FieldsFunc(rest, func(r rune) bool {
		return r == '"' || r == '\'' || r == ';' || r == '>' || r == ' '
	})
	if len(fields) == 0 {
		return data, nil
	}
	enc := strings.ToLower(fields[0])
	if enc == "" || enc == "utf-8" {
		return data, nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", enc, err)
	}
	return decoded, nil
}

// parsePage collects the ocrx_word descendants of one ocr_page element.
func parsePage(n *html.Node, index int) tokens.PageTokens {
	page := tokens.PageTokens{Index: index}

	if box, ok := boundsFromTitle(attr(n, "title")); ok {
		page.Width = box[2] - box[0]
		page.Height = box[3] - box[1]
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocrx_word") {
			if box, ok := boundsFromTitle(attr(n, "title")); ok {
				page.Tokens = append(page.Tokens, tokens.Token{
					X:      box[0],
					Y:      box[1],
					Width:  box[2] - box[0],
					Height: box[3] - box[1],
					Text:   textContent(n),
				})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return page
}

// boundsFromTitle extracts the "bbox x1 y1 x2 y2" property from an hOCR
// title attribute.
func boundsFromTitle(title string) ([4]float64, bool) {
	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) < 5 || fields[0] != "bbox" {
			continue
		}
		var box [4]float64
		ok := true
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				ok = false
				break
			}
			box[i] = v
		}
		if ok {
			return box, true
		}
	}
	return [4]float64{}, false
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates the text nodes under n, trimmed.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
