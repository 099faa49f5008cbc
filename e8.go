package lzx

// intelE8 runs the Intel E8 call-address transform over the decoded block
// content. Compressors rewrite the absolute 32-bit operands of x86 CALL
// instructions into position-relative form to make executables compress
// better; the decoder reverses that here. The window test against the
// transmitted file size, the 4/5 byte advance per hit and the block
// remaining bookkeeping must stay exactly as the reference decoder has
// them, including the subtraction that runs even when the transform itself
// is skipped.
func (b *Block) intelE8() {
	st := b.state
	if b.length <= pretreeBits || !st.intelStarted {
		st.blockRemaining -= int(b.length)
		return
	}

	curpos := int64(st.blockRemaining)
	st.blockRemaining -= int(b.length)

	i := 0
	for int64(i) < b.length-10 {
		if b.content[i] != 0xe8 {
			i++
			continue
		}
		absoff := int64(int32(uint32(b.content[i]) |
			uint32(b.content[i+1])<<8 |
			uint32(b.content[i+2])<<16 |
			uint32(b.content[i+3])<<24))
		if absoff >= -curpos && absoff < st.intelFileSize {
			reloff := absoff - curpos
			if absoff < 0 {
				reloff = absoff + st.intelFileSize
			}
			b.content[i] = byte(reloff)
			b.content[i+1] = byte(reloff >> 8)
			b.content[i+2] = byte(reloff >> 16)
			b.content[i+3] = byte(reloff >> 24)
		}
		i += 4
		curpos += 5
	}
}
