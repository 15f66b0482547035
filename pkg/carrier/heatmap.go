// heatmap.go - Render a capacity survey as an image for threshold tuning.
package carrier

import "github.com/xob0t/GoVeil/pkg/stego"

// Heatmap renders a survey report as a grid of the same dimensions:
// border pixels black, rejected pixels a dim red ramp, accepted pixels a
// bright green ramp. Brightness follows the pixel's best complexity score,
// which makes near-threshold regions easy to spot.
func Heatmap(rep *stego.Report, threshold int) *stego.PixelGrid {
	grid := stego.NewPixelGrid(rep.Width, rep.Height, 4)
	i := 0
	for _, score := range rep.Scores {
		var r, g uint8
		switch {
		case score < 0:
			// Border, unconditionally rejected.
		case score > threshold:
			g = rampByte(score)
		default:
			r = rampByte(score) / 2
		}
		grid.Pix[i] = r
		grid.Pix[i+1] = g
		grid.Pix[i+2] = 0
		grid.Pix[i+3] = 255
		i += 4
	}
	return grid
}

// rampByte maps a complexity score onto 64..255 so even barely-accepted
// pixels stay visible.
func rampByte(score int) uint8 {
	v := 64 + score
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
