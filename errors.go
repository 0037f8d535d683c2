package spritecut

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
)

// ErrInvalidSpriteSize is returned for a sprite edge length below one pixel.
var ErrInvalidSpriteSize = errors.New("sprite size must be positive")

// ImageLoadError - the source sheet could not be opened or decoded
type ImageLoadError struct {
	Path string
	Err  error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// CropOutOfBoundsError - a cel reaches past the edge of the source sheet
type CropOutOfBoundsError struct {
	Label  string
	Column int
	Rect   image.Rectangle
	Bounds image.Rectangle
}

func (e *CropOutOfBoundsError) Error() string {
	return fmt.Sprintf("sprite %s_%d: crop %v outside image bounds %v", e.Label, e.Column, e.Rect, e.Bounds)
}

// OutputWriteError - a sprite file could not be created or written
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }
