package lzx

// tableEntry is one slot of a decode table: either a terminal symbol or a
// reference to an internal node whose children continue the code.
type tableEntry struct {
	val  uint16 // symbol if leaf, node id otherwise
	leaf bool
}

// huffTable is a canonical Huffman decode table. The first 1<<bits slots map
// a bits-wide prefix of the stream directly to an entry; codes longer than
// bits continue through pairs of internal nodes stored behind the direct
// region, with the children of node n at slots 2n and 2n+1.
type huffTable struct {
	bits    uint
	symbols int
	slots   []tableEntry
	lengths []byte // code length per symbol, consumed on decode
}

// buildTable constructs the canonical decode table for the given code
// lengths. A zero length means the symbol does not occur and gets no table
// space. Within each length class slots are assigned in ascending symbol
// order; this order defines the canonical code assignment and must not
// change. An inconsistent length set that overflows the table yields
// ErrDecodeTable.
func buildTable(lengths []byte, bits uint, symbols int) (*huffTable, error) {
	t := &huffTable{
		bits:    bits,
		symbols: symbols,
		slots:   make([]tableEntry, (1<<bits)+2*symbols),
		lengths: lengths,
	}

	var pos uint32
	tableMask := uint32(1) << bits
	bitMask := tableMask >> 1
	nextNode := bitMask

	// direct mapping for codes that fit the lookup width
	for bitNum := uint(1); bitNum <= bits; bitNum++ {
		for sym := 0; sym < symbols; sym++ {
			if sym >= len(lengths) || uint(lengths[sym]) != bitNum {
				continue
			}
			leaf := pos
			pos += bitMask
			if pos > tableMask {
				return nil, ErrDecodeTable
			}
			for fill := bitMask; fill > 0; fill-- {
				t.slots[leaf] = tableEntry{uint16(sym), true}
				leaf++
			}
		}
		bitMask >>= 1
	}

	if pos == tableMask {
		return t, nil
	}

	// Slots not covered so far keep the zero value. The builder claims
	// them for internal nodes below; readSym decodes a zero slot as
	// symbol 0, a leniency for malformed streams.

	// thread codes longer than the lookup width through internal node
	// pairs, allocating a pair the first time a path is taken
	pos <<= 16
	tableMask <<= 16
	bitMask = 1 << 15
	for bitNum := bits + 1; bitNum <= maxCodeLen; bitNum++ {
		for sym := 0; sym < symbols; sym++ {
			if sym >= len(lengths) || uint(lengths[sym]) != bitNum {
				continue
			}
			leaf := pos >> 16
			for fill := uint(0); fill < bitNum-bits; fill++ {
				e := t.slots[leaf]
				if !e.leaf && e.val == 0 {
					if int(nextNode)<<1+1 < len(t.slots) {
						t.slots[nextNode<<1] = tableEntry{}
						t.slots[nextNode<<1+1] = tableEntry{}
						t.slots[leaf] = tableEntry{
							uint16(nextNode), false}
						nextNode++
					}
				}
				leaf = uint32(t.slots[leaf].val) << 1
				if pos>>(15-fill)&1 != 0 {
					leaf++
				}
			}
			t.slots[leaf] = tableEntry{uint16(sym), true}
			pos += bitMask
			if pos > tableMask {
				return nil, ErrDecodeTable
			}
		}
		bitMask >>= 1
	}

	return t, nil
}

// readSym decodes one symbol from the bit stream: a bits-wide peek resolves
// short codes directly; longer codes extend the peek one bit at a time
// through the internal nodes. Exactly the symbol's code length is consumed.
// A corrupt table walk is reported as -1.
func (t *huffTable) readSym(r *bitReader) int {
	e := t.slots[r.peekBits(t.bits)]
	x := t.bits
	for !e.leaf {
		if e.val == 0 {
			// unclaimed path, decodes as symbol 0
			e = tableEntry{leaf: true}
			break
		}
		x++
		if x > maxCodeLen {
			return -1
		}
		i := uint32(e.val)<<1 + r.checkBit(x)
		if int(i) >= len(t.slots) {
			return -1
		}
		e = t.slots[i]
	}
	s := int(e.val)
	var n byte
	if s < len(t.lengths) {
		n = t.lengths[s]
	}
	r.readBits(uint(n))
	return s
}
