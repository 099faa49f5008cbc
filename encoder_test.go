package lzx

// Test-side encoder: just enough of an LZX compressor to produce block
// streams with known content. Bits are written MSB first into 16-bit units
// stored little endian, mirroring the decoder's refill.

type bitWriter struct {
	out []byte
	buf uint16
	cnt uint
}

func (w *bitWriter) writeBits(v uint32, n uint) {
	for n > 0 {
		n--
		w.buf = w.buf<<1 | uint16(v>>n&1)
		w.cnt++
		if w.cnt == 16 {
			w.out = append(w.out, byte(w.buf), byte(w.buf>>8))
			w.buf, w.cnt = 0, 0
		}
	}
}

// flush pads the current 16-bit unit with zero bits and emits it.
func (w *bitWriter) flush() {
	if w.cnt > 0 {
		w.buf <<= 16 - w.cnt
		w.out = append(w.out, byte(w.buf), byte(w.buf>>8))
		w.buf, w.cnt = 0, 0
	}
}

// codeSet holds canonical codes computed from code lengths with the same
// assignment rule the decode table builder uses: ascending symbol order
// within each length class.
type codeSet struct {
	lengths []byte
	codes   []uint32
}

func newCodeSet(lengths []byte) *codeSet {
	var blCount [maxCodeLen + 1]int
	for _, l := range lengths {
		blCount[l]++
	}
	blCount[0] = 0
	var nextCode [maxCodeLen + 1]uint32
	code := uint32(0)
	for l := 1; l <= maxCodeLen; l++ {
		code = (code + uint32(blCount[l-1])) << 1
		nextCode[l] = code
	}

	c := &codeSet{lengths: lengths, codes: make([]uint32, len(lengths))}
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		c.codes[sym] = nextCode[l]
		nextCode[l]++
	}
	return c
}

func (w *bitWriter) writeSym(c *codeSet, sym int) {
	w.writeBits(c.codes[sym], uint(c.lengths[sym]))
}

// writeLengths emits the delta-coded length run for newLens[first:last]
// against the decoder's previous lengths oldLens, using the zero-run
// escapes 17 and 18 for runs of four or more.
func (w *bitWriter) writeLengths(pre *codeSet, oldLens, newLens []byte, first, last int) {
	i := first
	for i < last {
		if newLens[i] == 0 {
			run := 0
			for i+run < last && newLens[i+run] == 0 {
				run++
			}
			for run >= 20 {
				n := run
				if n > 51 {
					n = 51
				}
				w.writeSym(pre, 18)
				w.writeBits(uint32(n-20), 5)
				i += n
				run -= n
			}
			for run >= 4 {
				n := run
				if n > 19 {
					n = 19
				}
				w.writeSym(pre, 17)
				w.writeBits(uint32(n-4), 4)
				i += n
				run -= n
			}
			for ; run > 0; run-- {
				w.writeSym(pre, int(oldLens[i])%17)
				i++
			}
			continue
		}
		z := (int(oldLens[i]) - int(newLens[i]) + 17) % 17
		w.writeSym(pre, z)
		i++
	}
}

// flatPretreeLens gives every pretree symbol a 5-bit code, which keeps the
// delta encoding trivial.
func flatPretreeLens() []byte {
	lens := make([]byte, pretreeSymbols)
	for i := range lens {
		lens[i] = 5
	}
	return lens
}

// writePretree emits the 20 on-wire 4-bit pretree code lengths and returns
// the matching code set.
func (w *bitWriter) writePretree(lens []byte) *codeSet {
	for _, l := range lens {
		w.writeBits(uint32(l), pretreeElementLen)
	}
	return newCodeSet(lens)
}

// op is one decode operation of a test block: a literal byte or a match.
// extra carries the raw offset bits, asym the aligned offset symbol.
type op struct {
	lit    byte
	offset int
	length int // 0 means literal
	slot   int
	extra  uint32
	asym   int
}

func literal(b byte) op { return op{lit: b} }

func literals(s string) []op {
	ops := make([]op, len(s))
	for i := range s {
		ops[i] = literal(s[i])
	}
	return ops
}

// repeatMatch encodes a match through one of the repeat-offset slots 0-2.
// offset names the distance the register holds, for applying the op.
func repeatMatch(slot, offset, length int) op {
	return op{offset: offset, length: length, slot: slot}
}

// newMatch encodes a match with an explicitly transmitted offset: slot
// picks the base, extra the raw offset bits. offset is the resulting
// distance.
func newMatch(slot int, extra uint32, offset, length int) op {
	return op{offset: offset, length: length, slot: slot, extra: extra}
}

// alignedMatch encodes a match whose low offset bits travel through the
// aligned offset tree: raw bits first, then the aligned symbol.
func alignedMatch(slot int, raw uint32, asym, offset, length int) op {
	return op{offset: offset, length: length, slot: slot, extra: raw,
		asym: asym}
}

// applyOps computes the expected decode output of an op sequence,
// including matches that reach into the previous block's content.
func applyOps(prev []byte, ops []op, total int) []byte {
	out := make([]byte, 0, total)
	for _, o := range ops {
		if o.length == 0 {
			out = append(out, o.lit)
			continue
		}
		for k := 0; k < o.length; k++ {
			i := len(out) - o.offset
			if i < 0 {
				out = append(out, prev[len(prev)+i])
			} else {
				out = append(out, out[i])
			}
		}
	}
	if len(out) != total {
		panic("applyOps: op sequence does not fill the block")
	}
	return out
}

// opSymbols returns the main tree symbols an op sequence needs, each with
// the code length the tests assign.
func opSymbols(ops []op) map[int]byte {
	syms := make(map[int]byte)
	for _, o := range ops {
		if o.length == 0 {
			syms[int(o.lit)] = 8
			continue
		}
		header := o.length - minMatch
		if header > numPrimaryLengths {
			header = numPrimaryLengths
		}
		syms[numChars+o.slot<<3+header] = 8
	}
	return syms
}

// testMainLens builds a main tree length array covering the symbols of the
// given op sequences.
func testMainLens(elements int, opSets ...[]op) []byte {
	lens := make([]byte, elements)
	for _, ops := range opSets {
		for sym, l := range opSymbols(ops) {
			lens[sym] = l
		}
	}
	return lens
}

// writeOps emits the symbol stream for the ops. aligned is nil for
// verbatim blocks and carries the aligned offset codes for aligned blocks.
func (w *bitWriter) writeOps(main, lengths, aligned *codeSet, ops []op) {
	for _, o := range ops {
		if o.length == 0 {
			w.writeSym(main, int(o.lit))
			continue
		}
		header := o.length - minMatch
		if header > numPrimaryLengths {
			header = numPrimaryLengths
		}
		w.writeSym(main, numChars+o.slot<<3+header)
		if header == numPrimaryLengths {
			w.writeSym(lengths, o.length-minMatch-numPrimaryLengths)
		}
		if o.slot <= 2 {
			continue
		}
		extra := uint(extraBits[o.slot])
		switch {
		case aligned != nil && extra > 3:
			w.writeBits(o.extra, extra-3)
			w.writeSym(aligned, o.asym)
		case aligned != nil && extra == 3:
			w.writeSym(aligned, o.asym)
		case extra > 0:
			w.writeBits(o.extra, extra)
		}
	}
}

// blockSpec describes one block of a test stream for the encoder.
type blockSpec struct {
	first    bool   // stream start: the intel size flag is transmitted
	intel    uint32 // intel file size, written when first and nonzero
	btype    int
	blockLen int    // uncompressed length for the block header
	aligned  []byte // aligned tree code lengths, for aligned blocks
	mainLens []byte
	lenLens  []byte
	ops      []op
}

// append writes the block header, the decode trees and the symbol stream.
// oldMain and oldLen are the decoder's length arrays before the block; they
// are updated to the transmitted values.
func (s *blockSpec) append(w *bitWriter, oldMain, oldLen []byte) {
	if s.first {
		if s.intel != 0 {
			w.writeBits(1, 1)
			w.writeBits(s.intel>>16, 16)
			w.writeBits(s.intel&0xffff, 16)
		} else {
			w.writeBits(0, 1)
		}
	}
	w.writeBits(uint32(s.btype), 3)
	w.writeBits(uint32(s.blockLen>>8), 16)
	w.writeBits(uint32(s.blockLen&0xff), 8)

	var alignedCS *codeSet
	if s.aligned != nil {
		for _, l := range s.aligned {
			w.writeBits(uint32(l), alignedElementLen)
		}
		alignedCS = newCodeSet(s.aligned)
	}

	pre := w.writePretree(flatPretreeLens())
	w.writeLengths(pre, oldMain, s.mainLens, 0, numChars)
	pre = w.writePretree(flatPretreeLens())
	w.writeLengths(pre, oldMain, s.mainLens, numChars, len(s.mainLens))
	pre = w.writePretree(flatPretreeLens())
	w.writeLengths(pre, oldLen, s.lenLens, 0, numSecondaryLengths)

	w.writeOps(newCodeSet(s.mainLens), newCodeSet(s.lenLens), alignedCS,
		s.ops)

	copy(oldMain, s.mainLens)
	copy(oldLen, s.lenLens)
}

// segment assembles the block as a standalone compressed segment.
func (s *blockSpec) segment(oldMain, oldLen []byte) []byte {
	w := &bitWriter{}
	s.append(w, oldMain, oldLen)
	w.flush()
	return w.out
}

// uncompressedBlock assembles one uncompressed block segment: the bit-coded
// header, one padding byte the decoder's byte realignment skips, the three
// raw offset registers and the payload. intelSize zero transmits a cleared
// intel size flag.
func uncompressedBlock(first bool, intelSize uint32, blockLen int,
	r0, r1, r2 uint32, payload []byte) []byte {

	w := &bitWriter{}
	if first {
		if intelSize != 0 {
			w.writeBits(1, 1)
			w.writeBits(intelSize>>16, 16)
			w.writeBits(intelSize&0xffff, 16)
		} else {
			w.writeBits(0, 1)
		}
	}
	w.writeBits(blockTypeUncompressed, 3)
	w.writeBits(uint32(blockLen>>8), 16)
	w.writeBits(uint32(blockLen&0xff), 8)
	w.flush()

	out := append([]byte{}, w.out...)
	out = append(out, 0) // skipped by the byte realignment
	for _, r := range []uint32{r0, r1, r2} {
		out = append(out, byte(r), byte(r>>8), byte(r>>16), byte(r>>24))
	}
	return append(out, payload...)
}
