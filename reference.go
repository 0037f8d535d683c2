package spritecut

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/submersibletoaster/spritecut/grid"
)

// CelColor is the fill ReferenceSheet uses for the cel at row, column:
// hue steps by row and brightness by column, never reaching black.
func CelColor(l grid.Layout, row, column int) color.NRGBA {
	hue := 360.0 * float64(row) / float64(len(l.Rows))
	value := 1.0
	if max := l.MaxColumns(); max > 1 {
		value = 0.5 + 0.5*float64(column)/float64(max-1)
	}
	r, g, b := colorful.Hsv(hue, 0.8, value).RGB255()
	return color.NRGBA{r, g, b, 0xff}
}

// ReferenceSheet draws a black sheet just big enough for the layout with
// every cel filled by CelColor. Cels larger than two pixels keep a one
// pixel black frame so the colour key has something to remove.
func ReferenceSheet(l grid.Layout, size int) *image.NRGBA {
	sheet := image.NewNRGBA(l.Bounds(size))
	draw.Draw(sheet, sheet.Bounds(), image.Black, image.ZP, draw.Src)

	for _, cel := range l.Cels(size) {
		fill := cel.Origin
		if size > 2 {
			fill = fill.Inset(1)
		}
		c := CelColor(l, cel.Row, cel.Column)
		draw.Draw(sheet, fill, image.NewUniform(c), image.ZP, draw.Src)
	}
	return sheet
}
