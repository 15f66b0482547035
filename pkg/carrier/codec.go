// codec.go - Format registry for carrier codecs.
package carrier

import (
	"io"

	"github.com/xob0t/GoVeil/pkg/stego"
)

// Codec decodes and encodes one carrier image format.
type Codec interface {
	Decode(r io.Reader) (*stego.PixelGrid, error)
	Encode(w io.Writer, g *stego.PixelGrid) error
}

// codecs maps lowercase file extensions to their codec. Only lossless
// formats belong here; a lossy codec would silently destroy payloads.
var codecs = map[string]Codec{
	".png": pngCodec{},
	".bmp": bmpCodec{},
}

func forExtension(ext string) (Codec, bool) {
	c, ok := codecs[ext]
	return c, ok
}

// Extensions lists the supported carrier file extensions.
func Extensions() []string {
	return []string{".png", ".bmp"}
}
