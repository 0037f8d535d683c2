package main

import (
	"context"
	"flag"
	"image/png"
	"os"

	"github.com/joshdk/preview"
	"github.com/lucasb-eyer/go-colorful"
	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/spritecut"
	"github.com/submersibletoaster/spritecut/grid"
	"github.com/submersibletoaster/spritecut/termview"
)

var imagePath = flag.String("i", "assets/PixelPlanets.png", "Sprite sheet to slice")
var spriteSize = flag.Int("size", spritecut.DefaultSize, "Edge length of each square sprite")
var output = flag.String("o", "contact.png", "Contact sheet PNG to write")
var scale = flag.Int("scale", spritecut.DefaultSheetOptions.Scale, "Sprite magnification")
var background = flag.String("bg", "#202020", "Contact sheet background colour")
var labels = flag.Bool("labels", true, "Draw row labels")
var show = flag.Bool("show", false, "Open the contact sheet in a previewer")
var term = flag.Bool("term", false, "Print the contact sheet on the terminal")
var verbose = flag.Bool("v", false, "Verbose logging")

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	bg, err := colorful.Hex(*background)
	if err != nil {
		log.Fatalf("bad -bg %q: %v", *background, err)
	}

	src, err := spritecut.Load(*imagePath)
	if err != nil {
		log.Fatal(err)
	}
	sprites, err := spritecut.NewExtractor().Sprites(context.Background(), src, *spriteSize)
	if err != nil {
		log.Fatal(err)
	}

	opts := spritecut.DefaultSheetOptions
	opts.Scale = *scale
	opts.Background = bg
	opts.Labels = *labels
	sheet := spritecut.ContactSheet(sprites, grid.Default, opts)
	log.Debugf("contact sheet %v", sheet.Bounds())

	w, err := os.Create(*output)
	if err != nil {
		log.Fatal(err)
	}
	if err := png.Encode(w, sheet); err != nil {
		w.Close()
		log.Fatal(err)
	}
	if err := w.Close(); err != nil {
		log.Fatal(err)
	}
	log.Infof("wrote %s", *output)

	if *term {
		if err := termview.Print(os.Stdout, sheet, termview.Options{MaxWidth: 120}); err != nil {
			log.Fatal(err)
		}
	}
	if *show {
		preview.Image(sheet)
	}
}
