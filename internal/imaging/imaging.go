// Package imaging decodes contact-sheet images and fits them into a target
// box while preserving aspect ratio.
package imaging

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
)

// Decode reads and decodes the image at path.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// FitDimensions maps a source size into the largest size that fits inside
// the box with the source's aspect ratio. When the ratios are equal the
// width is scaled to the box width. ok is false when the box is not positive
// yet (before the first layout pass); callers retry after a resize event.
func FitDimensions(srcW, srcH, boxW, boxH int) (w, h int, ok bool) {
	if boxW <= 0 || boxH <= 0 || srcW <= 0 || srcH <= 0 {
		return 0, 0, false
	}

	srcRatio := float64(srcW) / float64(srcH)
	boxRatio := float64(boxW) / float64(boxH)

	if boxRatio > srcRatio {
		// Height is the limiting dimension.
		h = boxH
		w = int(float64(h) * srcRatio)
	} else {
		// Width is the limiting dimension; also the tie-break.
		w = boxW
		h = int(float64(w) / srcRatio)
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h, true
}

// Fit scales src to fit inside the box. ok is false when the box is not
// positive; the source is returned unscaled when it already fits exactly.
func Fit(src image.Image, boxW, boxH int) (image.Image, bool) {
	bounds := src.Bounds()
	w, h, ok := FitDimensions(bounds.Dx(), bounds.Dy(), boxW, boxH)
	if !ok {
		return nil, false
	}
	if w == bounds.Dx() && h == bounds.Dy() {
		return src, true
	}
	return resize.Resize(uint(w), uint(h), src, resize.Lanczos3), true
}
