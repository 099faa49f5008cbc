package lzx

import (
	"io"
	"log"

	"github.com/ulikunitz/lzx/internal/xlog"
)

// debug stores the package debug logger. xlog.Quiet doesn't print any
// messages.
var debug xlog.Logger = xlog.Quiet

// DebugOn directs decoder trace output to w. If w is nil no output will be
// written.
func DebugOn(w io.Writer) {
	if w == nil {
		debug = xlog.Quiet
		return
	}
	debug = log.New(w, "lzx ", 0)
}

// DebugOff switches the decoder trace output off.
func DebugOff() { debug = xlog.Quiet }
