// survey.go - Carrier capacity measurement and score mapping.
package stego

// Report describes how much payload a carrier can hold under the engine's
// options, plus the per-pixel complexity scores behind that number.
type Report struct {
	Width, Height int
	TotalSlots    int // every (pixel, channel) slot, border included
	AcceptedSlots int // slots the complexity filter passes
	CapacityBits  int // equal to AcceptedSlots
	CapacityBytes int // whole payload bytes net of the length header

	// Scores holds one entry per pixel, row-major: the maximum complexity
	// score across the pixel's usable channels, or -1 for border pixels
	// the filter rejects outright. Used for heatmap rendering and
	// threshold tuning.
	Scores []int
}

// Survey walks the full candidate stream to exhaustion and counts the slots
// the filter accepts: the carrier's capacity for this passphrase and these
// options. The grid is not mutated.
func (e *Engine) Survey(g *PixelGrid, passphrase string) (*Report, error) {
	seed, err := DeriveSeed(passphrase)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Width:      g.Width,
		Height:     g.Height,
		TotalSlots: g.slotCount(),
		Scores:     make([]int, g.Width*g.Height),
	}
	for i := range rep.Scores {
		rep.Scores[i] = -1
	}

	stream := newPositionStream(seed, e.opts, g)
	for {
		pos, ok := stream.next()
		if !ok {
			break
		}
		score, interior := complexityScore(g, pos, e.opts.Window)
		if !interior {
			continue
		}
		if idx := pos.Y*g.Width + pos.X; score > rep.Scores[idx] {
			rep.Scores[idx] = score
		}
		if score > e.opts.Threshold {
			rep.AcceptedSlots++
		}
	}

	rep.CapacityBits = rep.AcceptedSlots
	if net := rep.AcceptedSlots - e.opts.HeaderBits; net > 0 {
		rep.CapacityBytes = net / 8
	}
	return rep, nil
}
