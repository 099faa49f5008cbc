package lzx

// readLengths decodes the code lengths for the symbols first through last-1
// into lens. Lengths are not transmitted as absolute values: each symbol of
// the pretree encodes the difference from the previous block's length for
// the same position, reduced modulo 17. Three escape symbols encode runs:
//
//	17: a 4-bit count + 4 zero lengths
//	18: a 5-bit count + 20 zero lengths
//	19: a 1-bit count + 4 copies of one further delta-coded length
//
// Runs are clamped to the destination array; the reference decoder
// tolerates streams whose runs overshoot, so this is not an error.
func readLengths(r *bitReader, pretree *huffTable, lens []byte, first, last int) error {
	i := first
	for i < last {
		z := pretree.readSym(r)
		switch {
		case z < 0:
			return ErrCorrupt
		case z < 17:
			lens[i] = byte((int(lens[i]) - z + 17) % 17)
			i++
		case z == 17:
			n := int(r.readBits(4)) + 4
			for ; n > 0 && i < len(lens); n-- {
				lens[i] = 0
				i++
			}
		case z == 18:
			n := int(r.readBits(5)) + 20
			for ; n > 0 && i < len(lens); n-- {
				lens[i] = 0
				i++
			}
		default: // z == 19
			n := int(r.readBits(1)) + 4
			z = pretree.readSym(r)
			if z < 0 || z >= 17 {
				return ErrCorrupt
			}
			v := byte((int(lens[i]) - z + 17) % 17)
			for ; n > 0 && i < len(lens); n-- {
				lens[i] = v
				i++
			}
		}
	}
	return nil
}
