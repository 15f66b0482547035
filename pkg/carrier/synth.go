// synth.go - Synthetic carrier generation for testing and benchmarks.
package carrier

import (
	crand "crypto/rand"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/xob0t/GoVeil/pkg/stego"
)

// ParseColor parses a color string. Accepts "#rrggbb", "random", or "".
// Empty string is treated as "random".
func ParseColor(s string) (r, g, b uint8, err error) {
	if s == "" || s == "random" {
		buf := make([]byte, 3)
		if _, err := crand.Read(buf); err != nil {
			return 0, 0, 0, fmt.Errorf("random color: %w", err)
		}
		return buf[0], buf[1], buf[2], nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q: expected 6-char hex", s)
	}

	rv, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid red channel in %q: %w", s, err)
	}
	gv, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid green channel in %q: %w", s, err)
	}
	bv, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid blue channel in %q: %w", s, err)
	}

	return uint8(rv), uint8(gv), uint8(bv), nil
}

// Solid creates a uniform carrier. A solid carrier has zero local
// complexity everywhere, so it only accepts payload under a negative
// threshold - useful for capacity and boundary testing.
func Solid(w, h int, r, g, b uint8) *stego.PixelGrid {
	grid := stego.NewPixelGrid(w, h, 4)
	for i := 0; i < len(grid.Pix); i += 4 {
		grid.Pix[i] = r
		grid.Pix[i+1] = g
		grid.Pix[i+2] = b
		grid.Pix[i+3] = 255
	}
	return grid
}

// Gradient creates a smooth two-axis color ramp: low complexity, but not
// zero, so it exercises thresholds between "flat" and "noisy".
func Gradient(w, h int) *stego.PixelGrid {
	grid := stego.NewPixelGrid(w, h, 4)
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			grid.Pix[i] = uint8(x * 255 / max(w-1, 1))
			grid.Pix[i+1] = uint8(y * 255 / max(h-1, 1))
			grid.Pix[i+2] = uint8((x + y) * 255 / max(w+h-2, 1))
			grid.Pix[i+3] = 255
			i += 4
		}
	}
	return grid
}

// Noise creates a deterministic high-complexity carrier from seed. The
// same seed always produces the same carrier, which keeps test fixtures
// and benchmark inputs reproducible.
func Noise(w, h int, seed int64) *stego.PixelGrid {
	rng := rand.New(rand.NewSource(seed))
	grid := stego.NewPixelGrid(w, h, 4)
	for i := 0; i < len(grid.Pix); i += 4 {
		grid.Pix[i] = uint8(rng.Intn(256))
		grid.Pix[i+1] = uint8(rng.Intn(256))
		grid.Pix[i+2] = uint8(rng.Intn(256))
		grid.Pix[i+3] = 255
	}
	return grid
}
