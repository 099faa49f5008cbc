package lzx

// State is the decoder state that survives from one block of a stream to
// the next: the pending block header, the repeat-offset registers, the code
// length arrays the next block's deltas apply to, the decode tables built
// from them and the Intel E8 transform bookkeeping. A State belongs to
// exactly one stream and must not be shared.
type State struct {
	windowBits       int
	positionSlots    int
	mainTreeElements int // literal symbols + eight match symbols per slot

	blockType      int
	blockLength    int // uncompressed length declared by the block header
	blockRemaining int

	// repeat-offset registers, most recently used first
	r0, r1, r2 int64

	started       bool // stream header (intel size flag) has been read
	framesRead    int
	intelFileSize int64
	intelStarted  bool

	mainLengths   []byte
	lengthLengths []byte

	mainTable    *huffTable
	lengthTable  *huffTable
	alignedTable *huffTable
}

// newState creates the state for one compressed stream. The block length
// fixes the only immutable property of the stream: the window size and with
// it the number of position slots and main tree symbols. The repeat-offset
// registers are seeded to 1.
func newState(blockLength int64) (*State, error) {
	if blockLength <= 0 {
		return nil, ErrBlockLength
	}

	bits := minWindowBits
	for bits < maxWindowBits && int64(1)<<bits < blockLength {
		bits++
	}

	var slots int
	switch bits {
	case 20:
		slots = 42
	case 21:
		slots = 50
	default:
		slots = bits << 1
	}

	s := &State{
		windowBits:       bits,
		positionSlots:    slots,
		mainTreeElements: numChars + slots<<3,
		blockType:        blockTypeInvalid,
		r0:               1,
		r1:               1,
		r2:               1,
	}
	s.mainLengths = make([]byte, s.mainTreeElements)
	s.lengthLengths = make([]byte, numSecondaryLengths)
	return s, nil
}
