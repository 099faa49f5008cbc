package lzx

import "errors"

// Errors reported for structurally invalid input. They are returned before
// any bit of the segment has been consumed.
var (
	ErrBlockNumber = errors.New("lzx: block number must not be negative")
	ErrNoData      = errors.New("lzx: data segment must not be empty")
	ErrBlockLength = errors.New("lzx: block length must be positive")
)

// Errors reported during decoding. A failed block leaves the stream state
// unusable; there is no recovery beyond treating the item as unreadable.
var (
	// ErrDecodeTable indicates a code length set whose canonical codes
	// overflow the decode table.
	ErrDecodeTable = errors.New(
		"lzx: inconsistent code lengths overflow decode table")
	// ErrCorrupt indicates compressed data that cannot be decoded.
	ErrCorrupt = errors.New("lzx: corrupt compressed data")
)
