// Copyright 2026 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Lzxcat decompresses a framed LZX block stream to a file or standard
// output. The input framing is minimal: each compressed block segment is
// preceded by its length as a 4-byte little-endian integer. Container
// parsing (directory listings, reset tables) is the job of the tool that
// produced the framing.
package main

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ulikunitz/lzx"
)

var cli struct {
	BlockSize     int64  `help:"Uncompressed length of every block." default:"32768"`
	ResetInterval int    `help:"Blocks between decoder state resets; 0 never resets." default:"0"`
	Output        string `short:"o" help:"Output file. Default is standard output." type:"path"`
	Debug         bool   `help:"Write decoder trace output to stderr."`
	File          string `arg:"" help:"Framed LZX block stream." type:"existingfile"`
}

// readSegments reads the framed block stream: a 4-byte little-endian
// segment length followed by the segment bytes, repeated until EOF.
func readSegments(r io.Reader) ([][]byte, error) {
	var segments [][]byte
	var hdr [4]byte
	for {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if err == io.EOF {
				return segments, nil
			}
			return nil, errors.Wrap(err, "segment header")
		}
		seg := make([]byte, binary.LittleEndian.Uint32(hdr[:]))
		if _, err := io.ReadFull(r, seg); err != nil {
			return nil, errors.Wrap(err, "segment body")
		}
		segments = append(segments, seg)
	}
}

func run() error {
	f, err := os.Open(cli.File)
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer f.Close()

	segments, err := readSegments(bufio.NewReader(f))
	if err != nil {
		return err
	}
	logrus.Debugf("read %d block segments", len(segments))

	s := lzx.Stream{
		BlockLength:   cli.BlockSize,
		ResetInterval: cli.ResetInterval,
	}
	r, err := s.NewReader(segments)
	if err != nil {
		return errors.Wrap(err, "decode")
	}

	w := os.Stdout
	if cli.Output != "" {
		if w, err = os.Create(cli.Output); err != nil {
			return errors.Wrap(err, "create output")
		}
		defer w.Close()
	}
	n, err := io.Copy(w, r)
	if err != nil {
		return errors.Wrap(err, "decode")
	}
	logrus.Debugf("wrote %d decompressed bytes", n)
	return nil
}

func main() {
	kong.Parse(&cli,
		kong.Name("lzxcat"),
		kong.Description("Decompress a framed LZX block stream."))
	if cli.Debug {
		logrus.SetLevel(logrus.DebugLevel)
		lzx.DebugOn(os.Stderr)
	}
	if err := run(); err != nil {
		logrus.Errorf("lzxcat: %s", err)
		os.Exit(1)
	}
}
