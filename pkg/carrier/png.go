// png.go - PNG carrier codec.
package carrier

import (
	"fmt"
	"image/png"
	"io"

	"github.com/xob0t/GoVeil/pkg/stego"
)

// pngCodec uses the stdlib encoder, which is lossless at every compression
// setting, so the default setting is fine for carriers.
type pngCodec struct{}

func (pngCodec) Decode(r io.Reader) (*stego.PixelGrid, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode PNG: %w", err)
	}
	return FromImage(img), nil
}

func (pngCodec) Encode(w io.Writer, g *stego.PixelGrid) error {
	if err := png.Encode(w, ToImage(g)); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	return nil
}
