// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lzx implements decompression of LZX-compressed content sections as
found in legacy archive containers, most prominently the CHM help file
format.

LZX combines an LZ77 sliding window with canonical Huffman coding. The
format is stateful across blocks: the Huffman code lengths of a block are
transmitted as deltas against the lengths of the previous block, the three
most recently used match offsets survive from block to block and window
match copies may reach back into the previous block's content. Blocks of
one stream must therefore be decoded strictly in order.

The central type is Block. The container layer extracts the compressed
byte segment for each block and decodes it with the preceding block as
context:

	b0, err := lzx.NewBlock(0, seg0, blockLen, nil)
	if err != nil {
		return err
	}
	b1, err := lzx.NewBlock(1, seg1, blockLen, b0)
	if err != nil {
		return err
	}
	data := append(b0.Content(), b1.Content()...)

Stream provides the loop above together with the reset-interval handling
containers use, including extraction of byte sub-ranges that span block
boundaries:

	s := lzx.Stream{BlockLength: blockLen, ResetInterval: 2}
	data, err := s.DecodeAll(segments)

Independent streams may be decoded concurrently; all decoder state is
confined to the Block and State values of one stream.
*/
package lzx
