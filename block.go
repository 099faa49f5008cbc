package lzx

import (
	"fmt"

	"github.com/ulikunitz/lzx/internal/xlog"
)

// Block holds one decoded block of an LZX stream. Blocks are not
// independently decodable: the decoder state carries over from the previous
// block and window match copies may reach back into the previous block's
// decoded content.
type Block struct {
	number int
	length int64 // uncompressed length declared by the container
	state  *State
	br     *bitReader

	content []byte
	clen    int // decoded bytes so far

	prevContent []byte
	prevType    int
}

// NewBlock decodes the compressed segment data as block number of a stream.
// length is the uncompressed block length declared by the container. prev is
// the directly preceding block of the same stream, or nil at a stream start;
// its state is carried forward and its content serves window copies that
// reach across the block boundary. The block is fully decoded on return.
func NewBlock(number int, data []byte, length int64, prev *Block) (*Block, error) {
	switch {
	case number < 0:
		return nil, ErrBlockNumber
	case len(data) == 0:
		return nil, ErrNoData
	case length <= 0:
		return nil, ErrBlockLength
	}

	b := &Block{
		number:   number,
		length:   length,
		br:       newBitReader(data),
		content:  make([]byte, length),
		prevType: -1,
	}
	if prev == nil {
		var err error
		if b.state, err = newState(length); err != nil {
			return nil, err
		}
	} else {
		b.state = prev.state
		b.prevContent = prev.content
		b.prevType = b.state.blockType
	}

	if err := b.decode(); err != nil {
		return nil, err
	}
	return b, nil
}

// Number returns the sequence number of the block within its stream.
func (b *Block) Number() int { return b.number }

// State returns the decoder state left behind by the block. It is handed to
// NewBlock for the next block of the stream.
func (b *Block) State() *State { return b.state }

// Content returns the decoded bytes of the block.
func (b *Block) Content() []byte { return b.content }

// ContentRange returns a copy of the decoded bytes in [start, end). The
// bounds are clamped to the content; a block without content yields a
// single zero byte, a degenerate case legacy callers rely on.
func (b *Block) ContentRange(start, end int) []byte {
	if b.content == nil {
		return make([]byte, 1)
	}
	if start < 0 {
		start = 0
	}
	if end > len(b.content) {
		end = len(b.content)
	}
	if start >= end {
		return nil
	}
	p := make([]byte, end-start)
	copy(p, b.content[start:end])
	return p
}

// ContentFrom returns a copy of the decoded bytes from start to the end of
// the block.
func (b *Block) ContentFrom(start int) []byte {
	return b.ContentRange(start, len(b.content))
}

// decode runs the block decode loop: read a block header whenever the
// previous one is exhausted, decode one run of output, then apply the Intel
// E8 transform while the stream is within its frame limit.
func (b *Block) decode() error {
	st := b.state
	for int64(b.clen) < b.length {
		if st.blockRemaining == 0 {
			if err := b.readBlockHeader(); err != nil {
				return err
			}
		}

		// split the run at the declared container block length
		var end int
		if int64(b.clen+st.blockRemaining) > b.length {
			st.blockRemaining = b.clen + st.blockRemaining -
				int(b.length)
			end = int(b.length)
		} else {
			end = b.clen + st.blockRemaining
			st.blockRemaining = 0
		}

		var err error
		switch st.blockType {
		case blockTypeAligned:
			err = b.decodeCompressed(end, true)
		case blockTypeVerbatim:
			err = b.decodeCompressed(end, false)
		case blockTypeUncompressed:
			b.decodeUncompressed(end)
		default:
			err = fmt.Errorf("lzx: invalid block type %d",
				st.blockType)
		}
		if err != nil {
			return err
		}

		st.framesRead++
		if st.framesRead < e8MaxFrames && st.intelFileSize != 0 {
			b.intelE8()
		}
	}
	return nil
}

// readBlockHeader reads the next block header: at a stream start the
// optional Intel file size, then the 3-bit block type, the 24-bit
// uncompressed block length and the per-type decode tables.
func (b *Block) readBlockHeader() error {
	st, r := b.state, b.br

	if !st.started {
		st.started = true
		if r.readBits(1) == 1 {
			size := int32(r.readBits(16)<<16 | r.readBits(16))
			if size > 0 {
				st.intelFileSize = int64(size)
			}
		}
	}

	st.blockType = int(r.readBits(3))
	st.blockLength = int(r.readBits(16)<<8 | r.readBits(8))
	st.blockRemaining = st.blockLength

	// Block types above 3 do not occur in well-formed streams. The
	// decoder substitutes the previous block's type if that one was a
	// compressed type; this fallback recovers some corrupt archives and
	// is kept for compatibility, it is not nominal LZX behavior.
	if st.blockType > blockTypeUncompressed &&
		b.prevType >= 0 && b.prevType < blockTypeUncompressed {
		st.blockType = b.prevType
	}

	xlog.Printf(debug, "block %d: type %d length %d", b.number,
		st.blockType, st.blockLength)

	switch st.blockType {
	case blockTypeAligned:
		if err := b.readAlignedTree(); err != nil {
			return err
		}
		fallthrough
	case blockTypeVerbatim:
		if err := b.readMainTree(); err != nil {
			return err
		}
		if err := b.readLengthTree(); err != nil {
			return err
		}
		// a code for the x86 CALL opcode indicates executable
		// content worth transforming
		if st.mainLengths[0xe8] != 0 {
			st.intelStarted = true
		}
	case blockTypeUncompressed:
		st.intelStarted = true
		r.alignByte()
		st.r0 = int64(r.readInt32LE())
		st.r1 = int64(r.readInt32LE())
		st.r2 = int64(r.readInt32LE())
	default:
		return fmt.Errorf("lzx: invalid block type %d", st.blockType)
	}
	return nil
}

// readPretree reads the 20 on-wire pretree code lengths and builds the
// pretree decode table.
func (b *Block) readPretree() (*huffTable, error) {
	lens := make([]byte, pretreeSymbols)
	for i := range lens {
		lens[i] = byte(b.br.readBits(pretreeElementLen))
	}
	return buildTable(lens, pretreeBits, pretreeSymbols)
}

// readMainTree rebuilds the main decode table. The literal symbols and the
// match symbols are transmitted as two delta-coded ranges, each with its own
// pretree.
func (b *Block) readMainTree() error {
	st := b.state
	pre, err := b.readPretree()
	if err != nil {
		return err
	}
	if err = readLengths(b.br, pre, st.mainLengths, 0, numChars); err != nil {
		return err
	}
	if pre, err = b.readPretree(); err != nil {
		return err
	}
	err = readLengths(b.br, pre, st.mainLengths, numChars,
		len(st.mainLengths))
	if err != nil {
		return err
	}
	st.mainTable, err = buildTable(st.mainLengths, mainTreeBits,
		st.mainTreeElements)
	return err
}

// readLengthTree rebuilds the length decode table from one delta-coded
// range.
func (b *Block) readLengthTree() error {
	st := b.state
	pre, err := b.readPretree()
	if err != nil {
		return err
	}
	err = readLengths(b.br, pre, st.lengthLengths, 0, numSecondaryLengths)
	if err != nil {
		return err
	}
	st.lengthTable, err = buildTable(st.lengthLengths, lengthTreeBits,
		numSecondaryLengths)
	return err
}

// readAlignedTree rebuilds the aligned offset decode table. Its eight code
// lengths are transmitted directly in 3 bits each, not delta-coded.
func (b *Block) readAlignedTree() error {
	lens := make([]byte, alignedSymbols)
	for i := range lens {
		lens[i] = byte(b.br.readBits(alignedElementLen))
	}
	t, err := buildTable(lens, alignedBits, alignedSymbols)
	if err != nil {
		return err
	}
	b.state.alignedTable = t
	return nil
}

// decodeCompressed decodes main tree symbols until the output position
// reaches end. Literals are emitted directly; match symbols carry a length
// slot and a position slot, with the aligned block type decoding the low
// offset bits through the aligned tree.
func (b *Block) decodeCompressed(end int, aligned bool) error {
	st, r := b.state, b.br
	if st.mainTable == nil || st.lengthTable == nil {
		return ErrCorrupt
	}
	if aligned && st.alignedTable == nil {
		return ErrCorrupt
	}

	for i := b.clen; i < end; i++ {
		s := st.mainTable.readSym(r)
		if s < 0 {
			return ErrCorrupt
		}
		if s < numChars {
			b.content[i] = byte(s)
			continue
		}

		s -= numChars
		matchlen := s & numPrimaryLengths
		if matchlen == numPrimaryLengths {
			footer := st.lengthTable.readSym(r)
			if footer < 0 {
				return ErrCorrupt
			}
			matchlen += footer
		}
		matchlen += minMatch

		var offset int
		switch slot := s >> 3; {
		case slot > 2:
			extra := uint(extraBits[slot])
			offset = int(positionBase[slot]) - 2
			switch {
			case aligned && extra > 3:
				offset += int(r.readBits(extra-3)) << 3
				a := st.alignedTable.readSym(r)
				if a < 0 {
					return ErrCorrupt
				}
				offset += a
			case aligned && extra == 3:
				a := st.alignedTable.readSym(r)
				if a < 0 {
					return ErrCorrupt
				}
				offset += a
			case extra > 0:
				offset += int(r.readBits(extra))
			default:
				offset = 1
			}
			st.r2, st.r1, st.r0 = st.r1, st.r0, int64(offset)
		case slot == 0:
			offset = int(st.r0)
		case slot == 1:
			offset = int(st.r1)
			st.r1, st.r0 = st.r0, int64(offset)
		default: // slot == 2
			offset = int(st.r2)
			st.r2, st.r0 = st.r0, int64(offset)
		}

		dest := i
		i += matchlen - 1
		if i > end {
			break
		}
		b.copyMatch(dest, offset, matchlen)
	}
	b.clen = end
	return nil
}

// copyMatch copies matchlen bytes from dest-offset to dest. A negative
// source index reaches into the previous block's content; self-overlapping
// copies proceed low to high so that repeated regions replicate. All writes
// are clamped to the buffers, preserving the reference decoder's tolerance
// of matches in malformed streams.
func (b *Block) copyMatch(dest, offset, matchlen int) {
	src := dest - offset
	switch {
	case src >= 0:
		for ; matchlen > 0 && src < len(b.content) &&
			dest < len(b.content); matchlen-- {
			b.content[dest] = b.content[src]
			dest++
			src++
		}
	case matchlen+src <= 0:
		// source lies wholly within the previous block
		src += len(b.prevContent)
		for ; matchlen > 0 && src >= 0 && src < len(b.prevContent) &&
			dest < len(b.content); matchlen-- {
			b.content[dest] = b.prevContent[src]
			dest++
			src++
		}
	default:
		// source spans the boundary: tail of the previous block,
		// then the start of this one
		n := -src
		ps := len(b.prevContent) - n
		for ; n > 0 && ps >= 0 && ps < len(b.prevContent) &&
			dest < len(b.content); n-- {
			b.content[dest] = b.prevContent[ps]
			dest++
			ps++
		}
		matchlen += src
		for src = 0; matchlen > 0 && src < len(b.content) &&
			dest < len(b.content); matchlen-- {
			b.content[dest] = b.content[src]
			dest++
			src++
		}
	}
}

// decodeUncompressed copies raw bytes from the byte stream until the output
// position reaches end.
func (b *Block) decodeUncompressed(end int) {
	for i := b.clen; i < end; i++ {
		b.content[i] = b.br.readByte()
	}
	b.clen = end
}
