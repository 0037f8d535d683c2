package spritecut

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Load opens and decodes a sheet in any registered image format.
func Load(path string) (image.Image, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, &ImageLoadError{Path: path, Err: err}
	}
	return img, nil
}

// writePNG creates or truncates path and encodes img into it. The
// containing directory has to exist already.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return &OutputWriteError{Path: path, Err: errors.Wrap(err, "encode png")}
	}
	if err := f.Close(); err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}
	return nil
}
