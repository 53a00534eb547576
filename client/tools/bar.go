package tools

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// NewBar starts a progress bar over total messages on w. A nil w gives a
// bar that is never drawn.
func NewBar(total int, w io.Writer) *pb.ProgressBar {
	bar := pb.New(total)
	if w == nil {
		return bar.SetWriter(io.Discard)
	}
	bar.SetWriter(w)
	return bar.Start()
}
