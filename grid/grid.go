// Package grid describes where the sprites sit on a sheet and walks
// them in row-major order.
package grid

import (
	"image"

	log "github.com/sirupsen/logrus"
)

// Row - one labelled row of sprites on a sheet
type Row struct {
	Label   string
	Columns int
}

// Layout - fixed geometry of a sheet. Cell (0,0) starts at Origin and
// every further cell is Stride pixels along.
type Layout struct {
	Rows   []Row
	Origin image.Point
	Stride image.Point
}

// Default is the PixelPlanets sheet: nine planet kinds, the last two
// rows only carrying four frames.
var Default = Layout{
	Rows: []Row{
		{"TERRAN", 6},
		{"JUNGLE", 6},
		{"ROCK", 6},
		{"OCEAN", 6},
		{"DESERT", 6},
		{"ARCTIC", 6},
		{"GAS", 6},
		{"INFERNO", 4},
		{"TOXIC", 4},
	},
	Origin: image.Point{77, 71},
	Stride: image.Point{37, 37},
}

// Count - total number of cells in the layout
func (l Layout) Count() int {
	n := 0
	for _, r := range l.Rows {
		n += r.Columns
	}
	return n
}

// MaxColumns - widest row of the layout
func (l Layout) MaxColumns() int {
	max := 0
	for _, r := range l.Rows {
		if r.Columns > max {
			max = r.Columns
		}
	}
	return max
}

// Rect returns the crop rectangle of the cell at row, column for square
// cells of the given size.
func (l Layout) Rect(row, column, size int) image.Rectangle {
	x := column*l.Stride.X + l.Origin.X
	y := row*l.Stride.Y + l.Origin.Y
	return image.Rect(x, y, x+size, y+size)
}

// Bounds is the smallest rectangle anchored at the sheet origin (0,0)
// that holds every cell.
func (l Layout) Bounds(size int) image.Rectangle {
	var b image.Rectangle
	for row, r := range l.Rows {
		if r.Columns == 0 {
			continue
		}
		b = b.Union(l.Rect(row, r.Columns-1, size))
	}
	return image.Rectangle{Max: b.Max}
}

// Cel - a single sprite position on the sheet
type Cel struct {
	Label  string
	Row    int
	Column int
	// Nth - row-major ordinal of the cel within the layout
	Nth    int
	Origin image.Rectangle
}

// Cels walks the layout rows then columns, both ascending.
func (l Layout) Cels(size int) []*Cel {
	out := make([]*Cel, 0, l.Count())
	nth := 0
	for row, r := range l.Rows {
		for col := 0; col < r.Columns; col++ {
			out = append(out, &Cel{
				Label:  r.Label,
				Row:    row,
				Column: col,
				Nth:    nth,
				Origin: l.Rect(row, col, size),
			})
			nth++
		}
	}
	return out
}

// LayoutToCels - stream the cels of a layout. The channel is closed
// after the last cel or once done is closed.
func LayoutToCels(l Layout, size int, done <-chan struct{}) <-chan *Cel {
	out := make(chan *Cel, 1)
	go func() {
		defer close(out)
		for _, cel := range l.Cels(size) {
			log.Debugf("LayoutToCels: %s[%d] %v", cel.Label, cel.Column, cel.Origin)
			select {
			case out <- cel:
			case <-done:
				log.Debug("LayoutToCels: stopped early")
				return
			}
		}
		log.Debug("LayoutToCels: Closing channel")
	}()
	return out
}
