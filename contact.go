package spritecut

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/nfnt/resize"
	"github.com/submersibletoaster/pixfont"

	"github.com/submersibletoaster/spritecut/grid"
)

// SheetOptions - how ContactSheet lays sprites out
type SheetOptions struct {
	// Scale - nearest neighbour magnification, at least 1
	Scale      int
	Gap        int
	Background color.Color
	Labels     bool
}

// DefaultSheetOptions - doubled sprites on dark grey with row labels
var DefaultSheetOptions = SheetOptions{
	Scale:      2,
	Gap:        4,
	Background: color.NRGBA{0x20, 0x20, 0x20, 0xff},
	Labels:     true,
}

// ContactSheet places every sprite on one image, a sheet row per layout
// row, with the row label in a left margin.
func ContactSheet(sprites []Sprite, l grid.Layout, o SheetOptions) *image.NRGBA {
	scale := o.Scale
	if scale < 1 {
		scale = 1
	}
	cell := 0
	for _, s := range sprites {
		if s.Image == nil {
			continue
		}
		if d := s.Image.Bounds().Dx() * scale; d > cell {
			cell = d
		}
		if d := s.Image.Bounds().Dy() * scale; d > cell {
			cell = d
		}
	}
	pitch := cell + o.Gap

	font := pixfont.DefaultFont
	margin := o.Gap
	if o.Labels {
		for _, r := range l.Rows {
			if w := font.MeasureString(r.Label) + 2*o.Gap; w > margin {
				margin = w
			}
		}
	}

	r := image.Rect(0, 0, margin+l.MaxColumns()*pitch, o.Gap+len(l.Rows)*pitch)
	sheet := image.NewNRGBA(r)
	bg := o.Background
	if bg == nil {
		bg = color.Transparent
	}
	draw.Draw(sheet, r, image.NewUniform(bg), image.ZP, draw.Src)

	if o.Labels {
		for row, rr := range l.Rows {
			y := o.Gap + row*pitch + (cell-font.GetHeight())/2
			font.DrawString(sheet, o.Gap, y, rr.Label, color.White)
		}
	}

	for _, s := range sprites {
		if s.Image == nil {
			continue
		}
		var img image.Image = s.Image
		b := img.Bounds()
		if scale > 1 {
			img = resize.Resize(uint(b.Dx()*scale), uint(b.Dy()*scale), img, resize.NearestNeighbor)
		}
		at := image.Pt(margin+s.Column*pitch, o.Gap+s.Row*pitch)
		draw.Draw(sheet, img.Bounds().Sub(img.Bounds().Min).Add(at), img, img.Bounds().Min, draw.Over)
	}
	return sheet
}
