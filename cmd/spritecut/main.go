package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	pb "github.com/cheggaaa/pb/v3"
	log "github.com/sirupsen/logrus"

	"github.com/submersibletoaster/spritecut"
	"github.com/submersibletoaster/spritecut/grid"
	"github.com/submersibletoaster/spritecut/termview"
)

var imagePath = flag.String("i", "assets/PixelPlanets.png", "Sprite sheet to slice")
var spriteSize = flag.Int("size", spritecut.DefaultSize, "Edge length of each square sprite")
var outputDir = flag.String("o", "assets/", "Existing directory the sprites are written to")
var workers = flag.Int("w", 1, "Number of worker routines")
var verbose = flag.Bool("v", false, "Verbose logging")
var progress = flag.Bool("progress", false, "Show a progress bar")
var previewSprites = flag.Bool("preview", false, "Print each written sprite on the terminal")

func main() {
	flag.Parse()
	if *verbose {
		log.Info("Setting verbose logging")
		log.SetLevel(log.DebugLevel)
	}

	x := spritecut.NewExtractor()
	x.Workers = *workers

	var bar *pb.ProgressBar
	if *progress {
		bar = pb.StartNew(grid.Default.Count())
		x.Progress = func(string) { bar.Increment() }
	}

	paths, err := x.Extract(context.Background(), *imagePath, *spriteSize, *outputDir)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		log.Fatal(err)
	}

	if *previewSprites {
		for _, p := range paths {
			img, err := spritecut.Load(p)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Fprintln(os.Stderr, p)
			if err := termview.Print(os.Stderr, img, termview.Options{}); err != nil {
				log.Fatal(err)
			}
		}
	}

	fmt.Printf("%q\n", paths)
}
