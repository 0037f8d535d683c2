// Package spritecut slices a fixed-layout sprite sheet into one PNG per
// sprite, keying pure black to transparent.
package spritecut

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/submersibletoaster/spritecut/grid"
	"github.com/submersibletoaster/spritecut/pixel"
)

// DefaultSize - edge length of the PixelPlanets sprites
const DefaultSize = 32

// Sprite - a keyed cel held in memory
type Sprite struct {
	*grid.Cel
	Image *image.NRGBA
}

// Extractor cuts the cels of Layout out of a sheet.
type Extractor struct {
	Layout grid.Layout
	// Workers - number of cels cut and written concurrently; below one means one
	Workers int
	Log     log.FieldLogger
	// Progress is called after each sprite file is written. With more
	// than one worker it is called concurrently.
	Progress func(path string)
}

func NewExtractor() *Extractor {
	return &Extractor{
		Layout:  grid.Default,
		Workers: 1,
		Log:     log.StandardLogger(),
	}
}

// Extract writes the sprites of the default layout found in the sheet at
// imagePath into outputDir and returns the written paths.
func Extract(imagePath string, spriteSize int, outputDir string) ([]string, error) {
	return NewExtractor().Extract(context.Background(), imagePath, spriteSize, outputDir)
}

// Filename - base name of the file holding the sprite at label, column
func Filename(label string, column int) string {
	return fmt.Sprintf("sprite_%s_%d.png", label, column)
}

// Extract loads the sheet, keys every cel of the layout and writes it to
// outputDir/sprite_LABEL_COLUMN.png, overwriting existing files. The
// returned paths are in row-major order whatever the number of workers.
//
// The first error stops the run. Files written before it are left in place.
func (e *Extractor) Extract(ctx context.Context, imagePath string, spriteSize int, outputDir string) ([]string, error) {
	if spriteSize <= 0 {
		return nil, ErrInvalidSpriteSize
	}
	src, err := Load(imagePath)
	if err != nil {
		return nil, err
	}
	e.logger().WithFields(log.Fields{"path": imagePath, "bounds": src.Bounds()}).Debug("loaded sheet")

	paths := make([]string, e.Layout.Count())
	err = e.each(ctx, src, spriteSize, func(s Sprite) error {
		path := filepath.Join(outputDir, Filename(s.Label, s.Column))
		if err := writePNG(path, s.Image); err != nil {
			return err
		}
		e.logger().WithFields(log.Fields{"label": s.Label, "column": s.Column, "path": path}).Debug("wrote sprite")
		paths[s.Nth] = path
		if e.Progress != nil {
			e.Progress(path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.logger().Infof("extracted %d sprites into %s", len(paths), outputDir)
	return paths, nil
}

// Sprites keys every cel of the layout without writing anything.
func (e *Extractor) Sprites(ctx context.Context, src image.Image, spriteSize int) ([]Sprite, error) {
	if spriteSize <= 0 {
		return nil, ErrInvalidSpriteSize
	}
	out := make([]Sprite, e.Layout.Count())
	err := e.each(ctx, src, spriteSize, func(s Sprite) error {
		out[s.Nth] = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// each fans the cels out over the workers. fn gets every sprite exactly
// once; distinct sprites may be handed to fn concurrently.
func (e *Extractor) each(ctx context.Context, src image.Image, size int, fn func(Sprite) error) error {
	g, gctx := errgroup.WithContext(ctx)
	cels := grid.LayoutToCels(e.Layout, size, gctx.Done())

	n := e.Workers
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		g.Go(func() error {
			for cel := range cels {
				if err := gctx.Err(); err != nil {
					return err
				}
				img, err := e.cut(src, cel)
				if err != nil {
					return err
				}
				if err := fn(Sprite{Cel: cel, Image: img}); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// the walker may have stopped before handing out any cel
	return ctx.Err()
}

func (e *Extractor) cut(src image.Image, cel *grid.Cel) (*image.NRGBA, error) {
	b := src.Bounds()
	if !cel.Origin.In(b) {
		return nil, &CropOutOfBoundsError{Label: cel.Label, Column: cel.Column, Rect: cel.Origin, Bounds: b}
	}
	buf := pixel.Crop(src, cel.Origin)
	buf.KeyBlack()
	e.logger().WithFields(log.Fields{
		"label":  cel.Label,
		"column": cel.Column,
		"opaque": buf.Opaque(),
	}).Debug("keyed sprite")
	return buf.NRGBA(), nil
}

func (e *Extractor) logger() log.FieldLogger {
	if e.Log == nil {
		return log.StandardLogger()
	}
	return e.Log
}
