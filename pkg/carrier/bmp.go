// bmp.go - BMP carrier codec: decode via x/image/bmp, encode through a
// hand-rolled 24-bit uncompressed writer (BITMAPFILEHEADER +
// BITMAPINFOHEADER, BGR pixel order, bottom-up rows). 24-bit BMP has no
// lossy mode, so saved carriers keep their embedded bits intact; alpha is
// dropped, which never carries payload anyway.
package carrier

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/image/bmp"

	"github.com/xob0t/GoVeil/pkg/stego"
)

type bmpCodec struct{}

func (bmpCodec) Decode(r io.Reader) (*stego.PixelGrid, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode BMP: %w", err)
	}
	return FromImage(img), nil
}

func (bmpCodec) Encode(w io.Writer, g *stego.PixelGrid) error {
	rowSize := ((g.Width*3 + 3) / 4) * 4 // rows padded to 4 bytes
	pixelDataSize := rowSize * g.Height
	fileSize := 54 + pixelDataSize // 54 = header size

	// BMP File Header (14 bytes).
	fileHeader := make([]byte, 14)
	fileHeader[0] = 'B'
	fileHeader[1] = 'M'
	binary.LittleEndian.PutUint32(fileHeader[2:6], uint32(fileSize))
	binary.LittleEndian.PutUint32(fileHeader[10:14], 54) // pixel data offset

	// DIB Header (40 bytes) - BITMAPINFOHEADER.
	dibHeader := make([]byte, 40)
	binary.LittleEndian.PutUint32(dibHeader[0:4], 40) // header size
	binary.LittleEndian.PutUint32(dibHeader[4:8], uint32(g.Width))
	binary.LittleEndian.PutUint32(dibHeader[8:12], uint32(g.Height))
	binary.LittleEndian.PutUint16(dibHeader[12:14], 1)  // color planes
	binary.LittleEndian.PutUint16(dibHeader[14:16], 24) // bits per pixel
	binary.LittleEndian.PutUint32(dibHeader[20:24], uint32(pixelDataSize))

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(fileHeader); err != nil {
		return err
	}
	if _, err := bw.Write(dibHeader); err != nil {
		return err
	}

	// Pixel data: BGR, bottom-up.
	row := make([]byte, rowSize)
	for y := g.Height - 1; y >= 0; y-- {
		for x := 0; x < g.Width; x++ {
			r, gr, b, _ := rgbaAt(g, x, y)
			row[x*3] = b
			row[x*3+1] = gr
			row[x*3+2] = r
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}
