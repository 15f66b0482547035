// embed.go - Payload embedding via ±1 LSB matching.
package stego

import "fmt"

// Embed hides payload inside g, recoverable by Extract with the same
// passphrase and options. On success g is mutated in place; on error g is
// left untouched - the walk runs on a scratch copy that is committed
// atomically at the end.
func (e *Engine) Embed(g *PixelGrid, payload []byte, passphrase string) error {
	seed, err := DeriveSeed(passphrase)
	if err != nil {
		return err
	}
	return e.embedSeed(g, payload, seed)
}

func (e *Engine) embedSeed(g *PixelGrid, payload []byte, seed uint32) error {
	bits, nbits, err := encodePayload(payload, e.opts.HeaderBits)
	if err != nil {
		return err
	}

	// The filter must see earlier ±1 writes exactly as the extractor
	// will, so the walk scores the progressively mutated copy.
	work := g.Clone()
	stream := newPositionStream(seed, e.opts, g)
	for placed := 0; placed < nbits; {
		pos, ok := stream.next()
		if !ok {
			return fmt.Errorf("stego: placed %d of %d bits: %w", placed, nbits, ErrCapacityExceeded)
		}
		if !e.accepts(work, pos) {
			continue
		}
		v := work.At(pos.X, pos.Y, pos.Channel)
		if v&1 != bitAt(bits, placed) {
			// LSB matching: reach the target bit with a ±1 step instead
			// of overwriting the bit. Always decrement, except at the 0
			// boundary; 255 decrements like any other value.
			if v == 0 {
				v++
			} else {
				v--
			}
			work.Set(pos.X, pos.Y, pos.Channel, v)
		}
		placed++
	}
	copy(g.Pix, work.Pix)
	return nil
}
