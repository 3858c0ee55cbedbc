package render

import (
	"image"

	"github.com/gdamore/tcell/v2"
)

// Images are drawn with the upper-half-block rune: each terminal cell shows
// two vertically stacked pixels, the top one as the foreground color and the
// bottom one as the background color. A cell row therefore covers two pixel
// rows, which is why the image box is (width, 2*rows).
const halfBlock = '▀'

// ImageBox maps a screen size in cells to the image area in pixels. One row
// each is reserved for the header and the status line.
func ImageBox(screenW, screenH int) (boxW, boxH int) {
	rows := screenH - 2
	if rows < 0 {
		rows = 0
	}
	return screenW, rows * 2
}

// drawImage centers img inside the cell area [0,w) x [top, top+rows).
func (r *Renderer) drawImage(img image.Image, w, top, rows int) {
	bounds := img.Bounds()
	iw := bounds.Dx()
	ih := bounds.Dy()
	cellRows := (ih + 1) / 2

	x0 := (w - iw) / 2
	if x0 < 0 {
		x0 = 0
	}
	y0 := top + (rows-cellRows)/2
	if y0 < top {
		y0 = top
	}

	for cy := 0; cy < cellRows && y0+cy < top+rows; cy++ {
		topY := bounds.Min.Y + cy*2
		botY := topY + 1
		for cx := 0; cx < iw && x0+cx < w; cx++ {
			px := bounds.Min.X + cx
			style := tcell.StyleDefault.Foreground(pixelColor(img, px, topY))
			if botY < bounds.Max.Y {
				style = style.Background(pixelColor(img, px, botY))
			} else {
				style = style.Background(r.theme.Background)
			}
			r.screen.SetContent(x0+cx, y0+cy, halfBlock, nil, style)
		}
	}
}

func pixelColor(img image.Image, x, y int) tcell.Color {
	cr, cg, cb, _ := img.At(x, y).RGBA()
	return tcell.NewRGBColor(int32(cr>>8), int32(cg>>8), int32(cb>>8))
}
