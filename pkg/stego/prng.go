// prng.go - Deterministic candidate slot sequence.
package stego

// zeroSeedState replaces seed 0 at generator start. Seed 0 is a legal seed
// for the caller, but must not leave the LCG on the degenerate all-zero
// trajectory, so a fixed non-zero constant stands in for it.
const zeroSeedState = 0xDEADBEEF

// Position identifies one bit-carrying slot: a pixel plus the channel whose
// LSB carries the bit.
type Position struct {
	X, Y    int
	Channel int
}

// positionStream draws candidate slots pseudo-randomly and without
// repetition within one operation. The same seed, options, and grid
// dimensions always reproduce the same sequence; that determinism is what
// lets the extractor replay the embedder's walk. One cursor per operation,
// not safe for sharing.
type positionStream struct {
	state     uint32
	mult, inc uint32
	width     int
	usable    int
	total     int
	visited   []uint64
	remaining int
}

func newPositionStream(seed uint32, opts Options, g *PixelGrid) *positionStream {
	if seed == 0 {
		seed = zeroSeedState
	}
	total := g.slotCount()
	return &positionStream{
		state:     seed,
		mult:      opts.Multiplier,
		inc:       opts.Increment,
		width:     g.Width,
		usable:    g.usableChannels(),
		total:     total,
		visited:   make([]uint64, (total+63)/64),
		remaining: total,
	}
}

// next returns the next unvisited candidate slot. ok is false exactly once
// every slot in the grid has been drawn, which is the engines' capacity
// exhaustion signal.
//
// The LCG is full-period mod 2^32, so every residue mod total keeps
// reappearing and the skip loop below always reaches an unvisited slot.
func (s *positionStream) next() (pos Position, ok bool) {
	for s.remaining > 0 {
		s.state = s.mult*s.state + s.inc
		slot := int(s.state % uint32(s.total))
		word, bit := slot/64, uint(slot%64)
		if s.visited[word]&(1<<bit) != 0 {
			continue
		}
		s.visited[word] |= 1 << bit
		s.remaining--
		pixel := slot / s.usable
		return Position{
			X:       pixel % s.width,
			Y:       pixel / s.width,
			Channel: slot % s.usable,
		}, true
	}
	return Position{}, false
}
