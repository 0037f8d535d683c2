// Package pixel holds sprite pixels as plain RGBA records so they can be
// rewritten by index rather than through image.Image.
package pixel

import (
	"image"
	"image/color"
)

// Pixel - non-premultiplied 8-bit RGBA
type Pixel struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// Black reports whether all three colour channels are zero, whatever
// the alpha.
func (p Pixel) Black() bool {
	return p.R == 0 && p.G == 0 && p.B == 0
}

// Transparent is the colour key replacement for black pixels.
var Transparent = Pixel{}

// Buffer - Width x Height pixels stored row-major from the top left
type Buffer struct {
	Width  int
	Height int
	Pix    []Pixel
}

func New(width, height int) *Buffer {
	return &Buffer{Width: width, Height: height, Pix: make([]Pixel, width*height)}
}

// Crop copies the r part of src into a zero-origin buffer. r must lie
// inside src.Bounds(); pixels outside it read as whatever src.At gives.
func Crop(src image.Image, r image.Rectangle) *Buffer {
	b := New(r.Dx(), r.Dy())
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < b.Height; y++ {
			for x := 0; x < b.Width; x++ {
				c := n.NRGBAAt(r.Min.X+x, r.Min.Y+y)
				b.Pix[y*b.Width+x] = Pixel{c.R, c.G, c.B, c.A}
			}
		}
		return b
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := color.NRGBAModel.Convert(src.At(r.Min.X+x, r.Min.Y+y)).(color.NRGBA)
			b.Pix[y*b.Width+x] = Pixel{c.R, c.G, c.B, c.A}
		}
	}
	return b
}

func (b *Buffer) At(x, y int) Pixel {
	return b.Pix[y*b.Width+x]
}

func (b *Buffer) Set(x, y int, p Pixel) {
	b.Pix[y*b.Width+x] = p
}

// KeyBlack makes pure black pixels fully transparent and every other
// pixel fully opaque, dropping any alpha the source carried.
func (b *Buffer) KeyBlack() {
	for i, p := range b.Pix {
		if p.Black() {
			b.Pix[i] = Transparent
			continue
		}
		b.Pix[i].A = 0xff
	}
}

// Opaque - count of pixels with full alpha
func (b *Buffer) Opaque() (n int) {
	for _, p := range b.Pix {
		if p.A == 0xff {
			n++
		}
	}
	return n
}

// NRGBA copies the buffer into a zero-origin image.NRGBA.
func (b *Buffer) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, p := range b.Pix {
		o := i * 4
		img.Pix[o] = p.R
		img.Pix[o+1] = p.G
		img.Pix[o+2] = p.B
		img.Pix[o+3] = p.A
	}
	return img
}
