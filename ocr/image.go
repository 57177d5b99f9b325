package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	_ "image/jpeg"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// maxDimension caps either side of an image handed to the OCR engine.
// Scans beyond this are downscaled; Tesseract gains nothing from them and
// slows down badly.
const maxDimension = 4096

// PrepareImage normalizes a page image for OCR: TIFF input is re-encoded
// as PNG (the engine's preferred input), and images larger than
// maxDimension on either side are downscaled proportionally. PNG and JPEG
// input within limits passes through untouched. The returned rectangle is
// the prepared image's pixel bounds, which define the page's native
// coordinate space.
func PrepareImage(data []byte) ([]byte, image.Rectangle, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	oversized := bounds.Dx() > maxDimension || bounds.Dy() > maxDimension

	if !oversized && (format == "png" || format == "jpeg") {
		return data, bounds, nil
	}

	if oversized {
		img = downscale(img)
		bounds = img.Bounds()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), bounds, nil
}

// downscale shrinks the image so its longer side equals maxDimension,
// preserving aspect ratio.
func downscale(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var dw, dh int
	if w >= h {
		dw = maxDimension
		dh = h * maxDimension / w
	} else {
		dh = maxDimension
		dw = w * maxDimension / h
	}
	if dh < 1 {
		dh = 1
	}
	if dw < 1 {
		dw = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
