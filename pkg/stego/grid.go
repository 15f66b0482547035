// grid.go - The caller-owned pixel grid the engine mutates in place.
package stego

import "fmt"

// PixelGrid is a fixed-dimension raster with 1-4 interleaved 8-bit channels
// in row-major order. The grid is owned by the caller (the image I/O layer);
// the engine adjusts channel values in place and never resizes or
// reallocates it. A fourth channel is treated as alpha and never carries
// payload bits.
type PixelGrid struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8 // len = Width*Height*Channels
}

// NewPixelGrid allocates a zeroed grid. Dimensions are fixed for the grid's
// lifetime. Invalid dimensions panic: grids come from decoded images, so a
// bad size here is a programming error, not an input error.
func NewPixelGrid(width, height, channels int) *PixelGrid {
	if width <= 0 || height <= 0 || channels < 1 || channels > 4 {
		panic(fmt.Sprintf("stego: invalid grid dimensions %dx%dx%d", width, height, channels))
	}
	return &PixelGrid{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// At returns the value of one channel of one pixel.
func (g *PixelGrid) At(x, y, ch int) uint8 {
	return g.Pix[(y*g.Width+x)*g.Channels+ch]
}

// Set overwrites one channel of one pixel.
func (g *PixelGrid) Set(x, y, ch int, v uint8) {
	g.Pix[(y*g.Width+x)*g.Channels+ch] = v
}

// Clone returns a deep copy sharing no storage with g.
func (g *PixelGrid) Clone() *PixelGrid {
	c := *g
	c.Pix = make([]uint8, len(g.Pix))
	copy(c.Pix, g.Pix)
	return &c
}

// Equal reports whether two grids have identical dimensions and contents.
func (g *PixelGrid) Equal(o *PixelGrid) bool {
	if g.Width != o.Width || g.Height != o.Height || g.Channels != o.Channels {
		return false
	}
	for i, v := range g.Pix {
		if o.Pix[i] != v {
			return false
		}
	}
	return true
}

// usableChannels is the number of channels that may carry bits: every
// channel except alpha. Touching alpha would be visible in compositing and
// is pointless on opaque carriers.
func (g *PixelGrid) usableChannels() int {
	if g.Channels > 3 {
		return 3
	}
	return g.Channels
}

// slotCount is the number of bit-carrying slots, border included.
func (g *PixelGrid) slotCount() int {
	return g.Width * g.Height * g.usableChannels()
}
