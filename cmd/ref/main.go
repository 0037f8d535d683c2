package main

import (
	"flag"
	"image/png"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/spritecut"
	"github.com/submersibletoaster/spritecut/grid"
)

var spriteSize = flag.Int("size", spritecut.DefaultSize, "Edge length of each square sprite")
var output = flag.String("o", "reference.png", "Reference sheet PNG to write")

// Writes a synthetic sheet with the PixelPlanets geometry, handy for
// checking the slicer without the real artwork.
func main() {
	flag.Parse()
	if *spriteSize <= 0 {
		log.Fatal(spritecut.ErrInvalidSpriteSize)
	}

	sheet := spritecut.ReferenceSheet(grid.Default, *spriteSize)
	w, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()
	if err := png.Encode(w, sheet); err != nil {
		log.Fatal(err)
	}
	log.Infof("%d cels on %v written to %s", grid.Default.Count(), sheet.Bounds(), *output)
}
