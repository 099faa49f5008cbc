package lzx

// bitReader reads the LZX bit stream. Bits are consumed MSB first from an
// accumulator that is refilled in 16-bit little-endian units. Reads past the
// end of the input yield zero bits and zero bytes; the format tolerates
// truncated trailing data, so no error is reported.
type bitReader struct {
	data []byte
	pos  int    // next input byte to load
	buf  uint32 // accumulator, low cnt bits valid
	cnt  uint   // valid bits in buf
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

// readByte returns the next raw input byte, or zero past the end.
func (r *bitReader) readByte() byte {
	if r.pos >= len(r.data) {
		return 0
	}
	c := r.data[r.pos]
	r.pos++
	return c
}

// refill loads 16-bit units into the accumulator until at least min bits are
// available. min must not exceed 17, so that the accumulator cannot lose
// bits (cnt stays <= 32).
func (r *bitReader) refill(min uint) {
	for r.cnt < min {
		lo := uint32(r.readByte())
		hi := uint32(r.readByte())
		r.buf = r.buf<<16 | hi<<8 | lo
		r.cnt += 16
	}
}

// peekBits returns the top n bits of the stream without consuming them.
// n must be at most 16.
func (r *bitReader) peekBits(n uint) uint32 {
	r.refill(16)
	return r.buf >> (r.cnt - n)
}

// readBits returns the top n bits of the stream and consumes them. n must be
// at most 17. n == 0 is allowed and returns 0.
func (r *bitReader) readBits(n uint) uint32 {
	if n == 0 {
		return 0
	}
	if n > 16 {
		r.refill(n)
	} else {
		r.refill(16)
	}
	v := r.buf >> (r.cnt - n)
	r.cnt -= n
	r.buf &= 1<<r.cnt - 1
	return v
}

// checkBit reports the bit at position i counted from the top of the
// accumulator, 1-based. It requires a preceding peekBits so that the
// accumulator holds at least i bits; the decode table walk never inspects
// more than maxCodeLen bits.
func (r *bitReader) checkBit(i uint) uint32 {
	return r.buf >> (r.cnt - i) & 1
}

// alignByte drops one input byte when the accumulator holds more than 16
// bits. It reproduces the byte position correction the reference decoder
// applies before the raw reads of an uncompressed block.
func (r *bitReader) alignByte() {
	if r.cnt > 16 {
		r.pos--
	}
}

// readInt32LE reads a raw little-endian 32-bit integer directly from the
// byte stream, bypassing the bit accumulator.
func (r *bitReader) readInt32LE() int32 {
	v := uint32(r.readByte())
	v |= uint32(r.readByte()) << 8
	v |= uint32(r.readByte()) << 16
	v |= uint32(r.readByte()) << 24
	return int32(v)
}
