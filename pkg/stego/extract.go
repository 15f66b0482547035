// extract.go - Payload recovery.
package stego

import "fmt"

// Extract recovers a payload embedded by Embed under the same passphrase
// and options. A wrong passphrase, the wrong image, or a lossily
// recompressed carrier typically surfaces as ErrTruncatedPayload - the
// replayed walk reads a garbage length header that the carrier cannot
// satisfy - or as garbage payload bytes.
func (e *Engine) Extract(g *PixelGrid, passphrase string) ([]byte, error) {
	seed, err := DeriveSeed(passphrase)
	if err != nil {
		return nil, err
	}
	return e.extractSeed(g, seed)
}

func (e *Engine) extractSeed(g *PixelGrid, seed uint32) ([]byte, error) {
	headerBits := e.opts.HeaderBits
	buf := make([]byte, (g.slotCount()+7)/8)
	stream := newPositionStream(seed, e.opts, g)

	collected, target := 0, -1
	for target < 0 || collected < target {
		pos, ok := stream.next()
		if !ok {
			return nil, fmt.Errorf("stego: collected %d bits before slot exhaustion: %w",
				collected, ErrTruncatedPayload)
		}
		if !e.accepts(g, pos) {
			continue
		}
		setBit(buf, collected, g.At(pos.X, pos.Y, pos.Channel)&1)
		collected++
		if target < 0 && collected == headerBits {
			count := readHeader(buf, headerBits)
			if count > uint64(g.slotCount()-headerBits)/8 {
				return nil, fmt.Errorf("stego: header declares %d bytes, beyond carrier capacity: %w",
					count, ErrTruncatedPayload)
			}
			target = headerBits + int(count)*8
		}
	}
	return decodePayload(buf, collected, headerBits)
}
