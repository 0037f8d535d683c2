package spritecut

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/submersibletoaster/spritecut/grid"
)

func quietExtractor(workers int) *Extractor {
	logger, _ := test.NewNullLogger()
	e := NewExtractor()
	e.Workers = workers
	e.Log = logger
	return e
}

func saveSheet(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sheet.png")
	require.NoError(t, writePNG(path, img))
	return path
}

func openPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

// solidSheet is large enough for the default layout and filled with c,
// except for the first cel which gets first.
func solidSheet(c, first color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 77+6*37+32, 71+9*37+32))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.ZP, draw.Src)
	draw.Draw(img, grid.Default.Rect(0, 0, 32), image.NewUniform(first), image.ZP, draw.Src)
	return img
}

func TestExtractManifest(t *testing.T) {
	sheet := ReferenceSheet(grid.Default, DefaultSize)
	src := saveSheet(t, sheet)
	out := t.TempDir()

	paths, err := quietExtractor(1).Extract(context.Background(), src, DefaultSize, out)
	require.NoError(t, err)
	require.Len(t, paths, 7*6+2*4)

	n := 0
	for _, r := range grid.Default.Rows {
		for col := 0; col < r.Columns; col++ {
			assert.Equal(t, filepath.Join(out, Filename(r.Label, col)), paths[n])
			n++
		}
	}
	assert.Equal(t, filepath.Join(out, "sprite_TERRAN_0.png"), paths[0])
	assert.Equal(t, filepath.Join(out, "sprite_TOXIC_3.png"), paths[len(paths)-1])

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, len(paths))
}

func TestExtractPixelLaw(t *testing.T) {
	sheet := ReferenceSheet(grid.Default, DefaultSize)
	// a translucent pixel and a transparent black one inside TERRAN_1
	sheet.SetNRGBA(114+5, 71+5, color.NRGBA{40, 50, 60, 128})
	sheet.SetNRGBA(114+6, 71+6, color.NRGBA{0, 0, 0, 0})
	src := saveSheet(t, sheet)

	paths, err := quietExtractor(1).Extract(context.Background(), src, DefaultSize, t.TempDir())
	require.NoError(t, err)

	for i, cel := range grid.Default.Cels(DefaultSize) {
		got := openPNG(t, paths[i])
		require.Equal(t, DefaultSize, got.Bounds().Dx(), paths[i])
		require.Equal(t, DefaultSize, got.Bounds().Dy(), paths[i])
		for y := 0; y < DefaultSize; y++ {
			for x := 0; x < DefaultSize; x++ {
				s := sheet.NRGBAAt(cel.Origin.Min.X+x, cel.Origin.Min.Y+y)
				o := nrgbaAt(got, got.Bounds().Min.X+x, got.Bounds().Min.Y+y)
				if s.R == 0 && s.G == 0 && s.B == 0 {
					assert.Equal(t, color.NRGBA{}, o, "%s (%d,%d)", paths[i], x, y)
				} else {
					assert.Equal(t, color.NRGBA{s.R, s.G, s.B, 0xff}, o, "%s (%d,%d)", paths[i], x, y)
				}
			}
		}
	}
}

func TestExtractBlackCelIsTransparent(t *testing.T) {
	src := saveSheet(t, solidSheet(color.White, color.Black))
	out := t.TempDir()

	_, err := Extract(src, 32, out)
	require.NoError(t, err)

	img := openPNG(t, filepath.Join(out, "sprite_TERRAN_0.png"))
	require.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			assert.Equal(t, color.NRGBA{}, nrgbaAt(img, x, y))
		}
	}
}

func TestExtractRedCelIsOpaque(t *testing.T) {
	src := saveSheet(t, solidSheet(color.Black, color.NRGBA{255, 0, 0, 255}))
	out := t.TempDir()

	_, err := Extract(src, 32, out)
	require.NoError(t, err)

	img := openPNG(t, filepath.Join(out, "sprite_TERRAN_0.png"))
	require.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			assert.Equal(t, color.NRGBA{255, 0, 0, 255}, nrgbaAt(img, x, y))
		}
	}
}

func readAll(t *testing.T, paths []string) [][]byte {
	t.Helper()
	out := make([][]byte, len(paths))
	for i, p := range paths {
		b, err := os.ReadFile(p)
		require.NoError(t, err)
		out[i] = b
	}
	return out
}

func TestExtractIdempotent(t *testing.T) {
	src := saveSheet(t, ReferenceSheet(grid.Default, DefaultSize))
	out := t.TempDir()

	first, err := quietExtractor(1).Extract(context.Background(), src, DefaultSize, out)
	require.NoError(t, err)
	firstBytes := readAll(t, first)

	second, err := quietExtractor(1).Extract(context.Background(), src, DefaultSize, out)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, firstBytes, readAll(t, second))
}

func TestExtractWorkersKeepOrder(t *testing.T) {
	src := saveSheet(t, ReferenceSheet(grid.Default, DefaultSize))
	serialDir, parallelDir := t.TempDir(), t.TempDir()

	serial, err := quietExtractor(1).Extract(context.Background(), src, DefaultSize, serialDir)
	require.NoError(t, err)

	var written int32
	e := quietExtractor(8)
	e.Progress = func(string) { atomic.AddInt32(&written, 1) }
	parallel, err := e.Extract(context.Background(), src, DefaultSize, parallelDir)
	require.NoError(t, err)

	assert.EqualValues(t, grid.Default.Count(), written)
	require.Len(t, parallel, len(serial))
	for i := range serial {
		assert.Equal(t, filepath.Base(serial[i]), filepath.Base(parallel[i]))
	}
	assert.Equal(t, readAll(t, serial), readAll(t, parallel))
}

func TestExtractTrailingSlash(t *testing.T) {
	src := saveSheet(t, ReferenceSheet(grid.Default, DefaultSize))
	out := t.TempDir()

	paths, err := quietExtractor(1).Extract(context.Background(), src, DefaultSize, out+"/")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "sprite_TERRAN_0.png"), paths[0])
}

func TestExtractLogs(t *testing.T) {
	logger, hook := test.NewNullLogger()
	e := NewExtractor()
	e.Log = logger

	src := saveSheet(t, ReferenceSheet(grid.Default, DefaultSize))
	out := t.TempDir()
	_, err := e.Extract(context.Background(), src, DefaultSize, out)
	require.NoError(t, err)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.InfoLevel, last.Level)
	assert.Equal(t, "extracted 50 sprites into "+out, last.Message)
}

func TestExtractImageLoadError(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0644))

	for _, path := range []string{filepath.Join(dir, "missing.png"), garbage} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			paths, err := quietExtractor(1).Extract(context.Background(), path, DefaultSize, dir)
			assert.Nil(t, paths)
			var le *ImageLoadError
			require.True(t, errors.As(err, &le), "got %v", err)
			assert.Equal(t, path, le.Path)
		})
	}
}

func TestExtractCropOutOfBounds(t *testing.T) {
	// tall enough for TERRAN, JUNGLE and ROCK only
	sheet := ReferenceSheet(grid.Default, DefaultSize).SubImage(image.Rect(0, 0, 294, 200))
	src := saveSheet(t, sheet)
	out := t.TempDir()

	paths, err := quietExtractor(1).Extract(context.Background(), src, DefaultSize, out)
	assert.Nil(t, paths)
	var oob *CropOutOfBoundsError
	require.True(t, errors.As(err, &oob), "got %v", err)
	assert.Equal(t, "OCEAN", oob.Label)
	assert.Equal(t, 0, oob.Column)
	assert.Equal(t, image.Rect(77, 182, 109, 214), oob.Rect)
	assert.Equal(t, image.Rect(0, 0, 294, 200), oob.Bounds)

	// sprites before the failure stay on disk
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 3*6)
}

func TestExtractOutputWriteError(t *testing.T) {
	src := saveSheet(t, ReferenceSheet(grid.Default, DefaultSize))
	missing := filepath.Join(t.TempDir(), "nope")

	paths, err := quietExtractor(2).Extract(context.Background(), src, DefaultSize, missing)
	assert.Nil(t, paths)
	var we *OutputWriteError
	require.True(t, errors.As(err, &we), "got %v", err)
	assert.Equal(t, missing, filepath.Dir(we.Path))
	assert.True(t, os.IsNotExist(errors.Cause(we.Err)) || os.IsNotExist(we.Err))

	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr), "output directory must not be created")
}

func TestExtractInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := quietExtractor(1).Extract(context.Background(), "unused.png", size, t.TempDir())
		assert.Equal(t, ErrInvalidSpriteSize, err)
	}
}

func TestExtractCancelled(t *testing.T) {
	src := saveSheet(t, ReferenceSheet(grid.Default, DefaultSize))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := quietExtractor(1).Extract(ctx, src, DefaultSize, t.TempDir())
	assert.Equal(t, context.Canceled, err)
}

func TestSprites(t *testing.T) {
	sheet := ReferenceSheet(grid.Default, 16)
	sprites, err := quietExtractor(3).Sprites(context.Background(), sheet, 16)
	require.NoError(t, err)
	require.Len(t, sprites, grid.Default.Count())

	for i, s := range sprites {
		assert.Equal(t, i, s.Nth)
		require.NotNil(t, s.Image)
		assert.Equal(t, image.Rect(0, 0, 16, 16), s.Image.Bounds())
		// frame keyed away, centre keeps the cel colour
		assert.Equal(t, color.NRGBA{}, s.Image.NRGBAAt(0, 0))
		assert.Equal(t, CelColor(grid.Default, s.Row, s.Column), s.Image.NRGBAAt(8, 8))
	}
}
