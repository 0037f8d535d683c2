// Package termview prints small images on a 24-bit colour terminal, two
// character cells per pixel.
package termview

import (
	"fmt"
	"image"
	"image/color"
	"io"

	ansi "github.com/gookit/color"
	"github.com/nfnt/resize"
)

// Options - MaxWidth caps the printed width in pixels; zero prints at
// native size.
type Options struct {
	MaxWidth int
}

// Print writes img to w one text line per pixel row. Fully transparent
// pixels are left blank.
func Print(w io.Writer, img image.Image, o Options) error {
	b := img.Bounds()
	if o.MaxWidth > 0 && b.Dx() > o.MaxWidth {
		img = resize.Thumbnail(uint(o.MaxWidth), uint(b.Dy()), img, resize.NearestNeighbor)
		b = img.Bounds()
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, err := io.WriteString(w, cell(img.At(x, y))); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "\x1b[0m\n"); err != nil {
			return err
		}
	}
	return nil
}

func cell(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return "  "
	}
	return toANSI(n).Sprint("  ")
}

func toANSI(n color.NRGBA) ansi.RGBColor {
	return ansi.RGB(n.R, n.G, n.B, true)
}
