// complexity.go - Local complexity scoring for slot selection.
package stego

// complexityScore sums absolute differences between the candidate channel's
// value and the same channel of its cross-shaped neighbors (x±d, y) and
// (x, y±d) for d = 1..(window-1)/2. ok is false when the window would read
// outside the grid; border slots are never embedded into.
func complexityScore(g *PixelGrid, p Position, window int) (score int, ok bool) {
	r := (window - 1) / 2
	if p.X-r < 0 || p.X+r >= g.Width || p.Y-r < 0 || p.Y+r >= g.Height {
		return 0, false
	}
	center := int(g.At(p.X, p.Y, p.Channel))
	for d := 1; d <= r; d++ {
		score += abs(int(g.At(p.X-d, p.Y, p.Channel)) - center)
		score += abs(int(g.At(p.X+d, p.Y, p.Channel)) - center)
		score += abs(int(g.At(p.X, p.Y-d, p.Channel)) - center)
		score += abs(int(g.At(p.X, p.Y+d, p.Channel)) - center)
	}
	return score, true
}

// accepts reports whether a candidate slot sits in a region noisy enough to
// hide a bit in. Pure function of the grid contents and position.
func (e *Engine) accepts(g *PixelGrid, p Position) bool {
	score, ok := complexityScore(g, p, e.opts.Window)
	return ok && score > e.opts.Threshold
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
