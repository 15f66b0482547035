// bits.go - Payload framing: length header plus MSB-first payload bits.
package stego

import "fmt"

// bitAt and setBit address single bits in a packed buffer, MSB-first within
// each byte. setBit assumes the buffer starts zeroed.
func bitAt(buf []byte, i int) uint8 {
	return (buf[i/8] >> (7 - uint(i%8))) & 1
}

func setBit(buf []byte, i int, bit uint8) {
	if bit != 0 {
		buf[i/8] |= 1 << (7 - uint(i%8))
	}
}

// readHeader decodes the big-endian payload byte count from the first
// headerBits bits of buf.
func readHeader(buf []byte, headerBits int) uint64 {
	var count uint64
	for i := 0; i < headerBits; i++ {
		count = count<<1 | uint64(bitAt(buf, i))
	}
	return count
}

// encodePayload frames payload as a headerBits-wide big-endian byte count
// followed by the payload bits, MSB-first per byte. Returns the packed bit
// buffer and the number of valid bits in it.
func encodePayload(payload []byte, headerBits int) ([]byte, int, error) {
	if headerBits < 64 && uint64(len(payload)) >= 1<<uint(headerBits) {
		return nil, 0, fmt.Errorf("stego: payload of %d bytes does not fit a %d-bit length header: %w",
			len(payload), headerBits, ErrCapacityExceeded)
	}
	total := headerBits + len(payload)*8
	buf := make([]byte, (total+7)/8)
	count := uint64(len(payload))
	for i := 0; i < headerBits; i++ {
		setBit(buf, i, uint8(count>>uint(headerBits-1-i))&1)
	}
	for i, b := range payload {
		for j := 0; j < 8; j++ {
			setBit(buf, headerBits+i*8+j, (b>>uint(7-j))&1)
		}
	}
	return buf, total, nil
}

// decodePayload reads the length header from the first headerBits of buf,
// then exactly that many payload bytes. Bits beyond the declared length are
// ignored; fewer bits than declared is ErrTruncatedPayload.
func decodePayload(buf []byte, nbits, headerBits int) ([]byte, error) {
	if nbits < headerBits {
		return nil, fmt.Errorf("stego: %d bits cannot hold a %d-bit length header: %w",
			nbits, headerBits, ErrTruncatedPayload)
	}
	count := readHeader(buf, headerBits)
	if count > uint64(nbits-headerBits)/8 {
		return nil, fmt.Errorf("stego: header declares %d bytes, only %d bits follow: %w",
			count, nbits-headerBits, ErrTruncatedPayload)
	}
	payload := make([]byte, count)
	for i := range payload {
		var b uint8
		for j := 0; j < 8; j++ {
			b = b<<1 | bitAt(buf, headerBits+i*8+j)
		}
		payload[i] = b
	}
	return payload, nil
}
