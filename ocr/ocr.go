//go:build ocr

// Package ocr extracts word-level tokens from page images for documents
// that arrive without an OCR layer.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"image"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/annotate/tokens"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// RecognizePage runs word-level OCR over one page image and returns the
// loader interchange shape the tokens package consumes. Token geometry is
// in image pixels, which become the page's native coordinate space. The
// image is normalized via PrepareImage first, so TIFF input and oversized
// scans are handled transparently.
func (c *Client) RecognizePage(pageIndex int, imageData []byte) (tokens.PageTokens, error) {
	prepared, size, err := PrepareImage(imageData)
	if err != nil {
		return tokens.PageTokens{}, err
	}

	if err := c.client.SetImageFromBytes(prepared); err != nil {
		return tokens.PageTokens{}, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return tokens.PageTokens{}, fmt.Errorf("OCR failed: %w", err)
	}

	page := tokens.PageTokens{
		Index:  pageIndex,
		Width:  float64(size.Dx()),
		Height: float64(size.Dy()),
	}
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		page.Tokens = append(page.Tokens, tokenFromBox(box.Box, box.Word))
	}
	return page, nil
}

func tokenFromBox(r image.Rectangle, word string) tokens.Token {
	return tokens.Token{
		X:      float64(r.Min.X),
		Y:      float64(r.Min.Y),
		Width:  float64(r.Dx()),
		Height: float64(r.Dy()),
		Text:   word,
	}
}
