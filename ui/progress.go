package ui

import (
	"bufio"
	"io"
	"sync"
)

const (
	BytesPerStar = 64
	StarsPerLine = 79
)

// StarProgress draws a star for every BytesPerStar bytes received.
type StarProgress struct {
	mu sync.Mutex
	w  *bufio.Writer
}

func NewStarProgress(w io.Writer) *StarProgress {
	return &StarProgress{w: bufio.NewWriter(w)}
}

func (p *StarProgress) Update(done bool, total, added uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.w.Flush()

	if done {
		_ = p.w.WriteByte('\n')
		return
	}
	if added == 0 {
		return
	}

	lineMult := uint64(1 + BytesPerStar*StarsPerLine)
	last := uint64(total)
	for n := last + 1 - uint64(added); n <= last; n++ {
		if n%lineMult == 0 {
			_ = p.w.WriteByte('\n')
		}
		if n%BytesPerStar == 0 {
			_ = p.w.WriteByte('*')
		}
	}
}
