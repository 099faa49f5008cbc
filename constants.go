package lzx

// Constants of the LZX bit stream format. The main tree covers the 256
// literal symbols followed by eight match symbols per position slot; the
// number of position slots is a function of the window size and fixed per
// stream.
const (
	numChars = 256 // literal symbols in the main tree
	minMatch = 2   // shortest encodable match

	pretreeSymbols    = 20 // symbols of the pretree: 17 deltas + 3 run escapes
	pretreeBits       = 6  // direct-lookup width of the pretree table
	pretreeElementLen = 4  // on-wire width of one pretree code length

	mainTreeBits   = 12 // direct-lookup width of the main table
	lengthTreeBits = 12 // direct-lookup width of the length table

	numPrimaryLengths   = 7   // match lengths coded inside the main symbol
	numSecondaryLengths = 249 // symbols of the length tree

	alignedSymbols    = 8 // symbols of the aligned offset tree
	alignedBits       = 7 // direct-lookup width of the aligned table
	alignedElementLen = 3 // on-wire width of one aligned code length

	maxCodeLen = 16 // longest Huffman code the format permits

	minWindowBits = 15
	maxWindowBits = 21
)

// Block types as transmitted in the 3-bit block header field. Values above
// blockTypeUncompressed do not occur in well-formed streams.
const (
	blockTypeInvalid      = 0
	blockTypeVerbatim     = 1
	blockTypeAligned      = 2
	blockTypeUncompressed = 3
)

// e8MaxFrames limits the Intel E8 transform to the first 32768 frames of a
// stream, as the format requires.
const e8MaxFrames = 32768

// extraBits holds the number of extra offset bits per position slot.
var extraBits = [51]byte{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3,
	4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	14, 14, 15, 15, 16, 16, 17, 17, 17, 17,
	17, 17, 17, 17, 17, 17, 17, 17, 17, 17,
	17,
}

// positionBase holds the base match offset per position slot.
var positionBase = [51]int32{
	0, 1, 2, 3, 4, 6, 8, 12,
	16, 24, 32, 48, 64, 96, 128, 192,
	256, 384, 512, 768, 1024, 1536, 2048, 3072,
	4096, 6144, 8192, 12288, 16384, 24576, 32768, 49152,
	65536, 98304, 131072, 196608, 262144, 393216, 524288, 655360,
	786432, 917504, 1048576, 1179648, 1310720, 1441792, 1572864, 1703936,
	1835008, 1966080, 2097152,
}
