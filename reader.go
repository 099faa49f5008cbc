package lzx

import (
	"errors"
	"io"
)

// Stream describes the block geometry of one compressed content section.
// Containers store the section as fixed-size uncompressed blocks and
// restart the decoder every ResetInterval blocks, so that readers do not
// have to decode a whole section to reach its tail.
type Stream struct {
	// BlockLength is the uncompressed length of every block.
	BlockLength int64
	// ResetInterval is the number of blocks between decoder state
	// resets. Zero means the state is never reset.
	ResetInterval int
}

var errRange = errors.New("lzx: byte range out of stream bounds")

// reset reports whether block i starts with a fresh decoder state.
func (s *Stream) reset(i int) bool {
	return i == 0 || (s.ResetInterval > 0 && i%s.ResetInterval == 0)
}

// DecodeAll decodes the ordered compressed block segments of the stream and
// returns the concatenated decompressed bytes.
func (s *Stream) DecodeAll(segments [][]byte) ([]byte, error) {
	if s.BlockLength <= 0 {
		return nil, ErrBlockLength
	}
	out := make([]byte, 0, int64(len(segments))*s.BlockLength)
	var prev *Block
	for i, seg := range segments {
		if s.reset(i) {
			prev = nil
		}
		b, err := NewBlock(i, seg, s.BlockLength, prev)
		if err != nil {
			return nil, err
		}
		out = append(out, b.Content()...)
		prev = b
	}
	return out, nil
}

// NewReader returns a reader for the decompressed stream. Blocks are
// decoded lazily, one block per refill.
func (s *Stream) NewReader(segments [][]byte) (io.Reader, error) {
	if s.BlockLength <= 0 {
		return nil, ErrBlockLength
	}
	return &streamReader{s: s, segments: segments}, nil
}

type streamReader struct {
	s        *Stream
	segments [][]byte
	i        int
	prev     *Block
	buf      []byte
	err      error
}

func (r *streamReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.buf) == 0 {
			if err := r.fill(); err != nil {
				if n > 0 && err == io.EOF {
					return n, nil
				}
				return n, err
			}
		}
		k := copy(p[n:], r.buf)
		r.buf = r.buf[k:]
		n += k
	}
	return n, nil
}

// fill decodes the next block into the read buffer.
func (r *streamReader) fill() error {
	if r.err != nil {
		return r.err
	}
	if r.i >= len(r.segments) {
		r.err = io.EOF
		return r.err
	}
	if r.s.reset(r.i) {
		r.prev = nil
	}
	b, err := NewBlock(r.i, r.segments[r.i], r.s.BlockLength, r.prev)
	if err != nil {
		r.err = err
		return err
	}
	r.i++
	r.prev = b
	r.buf = b.Content()
	return nil
}

// Extract decodes the byte range [start, end) of the decompressed stream.
// Decoding begins at the last reset point before the range, so only the
// blocks the range depends on are decoded.
func (s *Stream) Extract(segments [][]byte, start, end int64) ([]byte, error) {
	if s.BlockLength <= 0 {
		return nil, ErrBlockLength
	}
	total := int64(len(segments)) * s.BlockLength
	if start < 0 || start > end || end > total {
		return nil, errRange
	}
	if start == end {
		return nil, nil
	}

	startBlock := int(start / s.BlockLength)
	endBlock := int((end - 1) / s.BlockLength)
	iniBlock := 0
	if s.ResetInterval > 0 {
		iniBlock = startBlock - startBlock%s.ResetInterval
	}

	out := make([]byte, 0, end-start)
	var prev *Block
	for i := iniBlock; i <= endBlock; i++ {
		if s.reset(i) {
			prev = nil
		}
		b, err := NewBlock(i, segments[i], s.BlockLength, prev)
		if err != nil {
			return nil, err
		}
		switch {
		case i == startBlock && i == endBlock:
			return b.ContentRange(int(start%s.BlockLength),
				int((end-1)%s.BlockLength)+1), nil
		case i == startBlock:
			out = append(out,
				b.ContentFrom(int(start%s.BlockLength))...)
		case i == endBlock:
			out = append(out,
				b.ContentRange(0, int((end-1)%s.BlockLength)+1)...)
		default:
			if i > startBlock {
				out = append(out, b.Content()...)
			}
		}
		prev = b
	}
	return out, nil
}
