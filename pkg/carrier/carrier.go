// Package carrier decodes and encodes the lossless raster images payloads
// are hidden in.
//
// All decoded carriers are normalized to a 4-channel NRGBA pixel grid, so a
// carrier embedded from PNG and saved as BMP (or the reverse) keeps the
// identical slot geometry: three usable channels either way, alpha never
// carrying bits. Only PNG and 24-bit uncompressed BMP are supported - both
// are lossless, which the engine requires.
package carrier

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xob0t/GoVeil/pkg/stego"
)

// Load decodes the image file at path into a pixel grid.
func Load(path string) (*stego.PixelGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return g, nil
}

// Decode sniffs the image format from the stream's magic bytes and decodes
// it into a pixel grid. Formats other than PNG and BMP are rejected with
// stego.ErrUnsupportedFormat.
func Decode(r io.Reader) (*stego.PixelGrid, error) {
	img, format, err := image.Decode(r)
	if err == image.ErrFormat {
		return nil, stego.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	if _, ok := forExtension("." + format); !ok {
		return nil, fmt.Errorf("%w: %s", stego.ErrUnsupportedFormat, format)
	}
	return FromImage(img), nil
}

// Save writes the grid to path. The format is inferred from the file
// extension: ".png" or ".bmp". Anything else is stego.ErrUnsupportedFormat.
func Save(path string, g *stego.PixelGrid) error {
	ext := strings.ToLower(filepath.Ext(path))
	codec, ok := forExtension(ext)
	if !ok {
		return fmt.Errorf("%w: %q (use .png or .bmp)", stego.ErrUnsupportedFormat, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := codec.Encode(f, g); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// Encode writes the grid to w in the format named by ext (".png" or
// ".bmp"). Useful for in-memory encoding (HTTP responses, WASM).
func Encode(w io.Writer, ext string, g *stego.PixelGrid) error {
	codec, ok := forExtension(strings.ToLower(ext))
	if !ok {
		return fmt.Errorf("%w: %q (use .png or .bmp)", stego.ErrUnsupportedFormat, ext)
	}
	return codec.Encode(w, g)
}

// FromImage converts any decoded image into a 4-channel NRGBA grid.
func FromImage(img image.Image) *stego.PixelGrid {
	b := img.Bounds()
	g := stego.NewPixelGrid(b.Dx(), b.Dy(), 4)

	// Fast path: NRGBA with the expected stride shares our layout.
	if n, ok := img.(*image.NRGBA); ok && n.Stride == 4*b.Dx() {
		copy(g.Pix, n.Pix)
		return g
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			g.Pix[i] = c.R
			g.Pix[i+1] = c.G
			g.Pix[i+2] = c.B
			g.Pix[i+3] = c.A
			i += 4
		}
	}
	return g
}

// ToImage converts a grid of any channel count back to an NRGBA image.
// Single-channel grids replicate to gray, 3-channel grids get opaque alpha.
func ToImage(g *stego.PixelGrid) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			r, gr, b, a := rgbaAt(g, x, y)
			i := img.PixOffset(x, y)
			img.Pix[i] = r
			img.Pix[i+1] = gr
			img.Pix[i+2] = b
			img.Pix[i+3] = a
		}
	}
	return img
}

// rgbaAt reads one pixel as RGBA regardless of the grid's channel count.
func rgbaAt(g *stego.PixelGrid, x, y int) (r, gr, b, a uint8) {
	switch g.Channels {
	case 1:
		v := g.At(x, y, 0)
		return v, v, v, 255
	case 2:
		v := g.At(x, y, 0)
		return v, v, v, g.At(x, y, 1)
	case 3:
		return g.At(x, y, 0), g.At(x, y, 1), g.At(x, y, 2), 255
	default:
		return g.At(x, y, 0), g.At(x, y, 1), g.At(x, y, 2), g.At(x, y, 3)
	}
}
