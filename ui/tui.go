package ui

import (
	"fmt"
	"sync"
	"time"

	tm "github.com/nsf/termbox-go"

	"github.com/scanimetrics/wsnperf/throughput"
)

const (
	tuiMinWidth  = 60
	tuiMinHeight = 16
	ringSize     = 8
	repaintEvery = 100 * time.Millisecond
)

// TUI shows the running session in a termbox screen. It implements
// throughput.Progress and io.Closer so it can be registered with the
// session's guard, which restores the terminal on termination.
type TUI struct {
	title       string
	onInterrupt func()

	mu        sync.Mutex
	w, h      int
	total     uint32
	start     time.Time
	lastPaint time.Time
	done      bool
	closed    bool
	msgRing   []string
	errRing   []string
	closeOnce sync.Once
}

// NewTUI takes over the terminal. Esc or Ctrl-C calls onInterrupt, since
// termbox reads Ctrl-C as a key instead of delivering SIGINT.
func NewTUI(title string, onInterrupt func()) (*TUI, error) {
	if err := tm.Init(); err != nil {
		return nil, err
	}
	w, h := tm.Size()
	if h < tuiMinHeight || w < tuiMinWidth {
		tm.Close()
		return nil, fmt.Errorf("terminal too small (%dwx%dh), must be at least %dhx%dw", w, h, tuiMinHeight, tuiMinWidth)
	}
	tm.SetInputMode(tm.InputEsc)
	tm.Clear(tm.ColorDefault, tm.ColorDefault)
	tm.SetCursor(0, 0)
	tm.Flush()

	u := &TUI{
		title:       title,
		onInterrupt: onInterrupt,
		w:           w,
		h:           h,
	}
	go u.pollEvents()
	u.paint()
	return u, nil
}

func (u *TUI) pollEvents() {
	for {
		switch ev := tm.PollEvent(); ev.Type {
		case tm.EventKey:
			if ev.Key == tm.KeyEsc || ev.Key == tm.KeyCtrlC {
				if u.onInterrupt != nil {
					u.onInterrupt()
				}
				return
			}
		case tm.EventResize:
			u.mu.Lock()
			u.w, u.h = ev.Width, ev.Height
			u.mu.Unlock()
			u.paint()
		case tm.EventInterrupt, tm.EventError:
			return
		}
	}
}

func (u *TUI) Update(done bool, total, added uint32) {
	u.mu.Lock()
	now := time.Now()
	if u.start.IsZero() {
		u.start = now
	}
	u.total = total
	u.done = done
	repaint := done || now.Sub(u.lastPaint) >= repaintEvery
	u.mu.Unlock()

	if repaint {
		u.paint()
	}
}

func (u *TUI) AddInfoMsg(msg string) {
	u.mu.Lock()
	u.msgRing = pushRing(u.msgRing, msg)
	u.mu.Unlock()
	u.paint()
}

func (u *TUI) AddErrorMsg(msg string) {
	u.mu.Lock()
	u.errRing = pushRing(u.errRing, msg)
	u.mu.Unlock()
	u.paint()
}

func pushRing(ring []string, msg string) []string {
	ring = append(ring, msg)
	if len(ring) > ringSize {
		ring = ring[len(ring)-ringSize:]
	}
	return ring
}

func (u *TUI) paint() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return
	}
	u.lastPaint = time.Now()

	tm.Clear(tm.ColorDefault, tm.ColorDefault)
	defer tm.Flush()

	w := u.w
	printCenterText(0, 0, w, u.title, tm.ColorBlack, tm.ColorWhite)
	printHLineText(0, 2, w, "Session")

	var elapsed time.Duration
	if !u.start.IsZero() {
		elapsed = u.lastPaint.Sub(u.start)
	}
	rate := throughput.Rate(u.total, elapsed)
	state := "running"
	if u.done {
		state = "done"
	}
	printText(0, 3, w, fmt.Sprintf("State:   %s", state), tm.ColorWhite, tm.ColorDefault)
	printText(0, 4, w, fmt.Sprintf("Bytes:   %d (%s)", u.total, FormatBytes(uint64(u.total))), tm.ColorWhite, tm.ColorDefault)
	printText(0, 5, w, fmt.Sprintf("Elapsed: %v", elapsed.Round(time.Millisecond)), tm.ColorWhite, tm.ColorDefault)
	printText(0, 6, w, fmt.Sprintf("Rate:    %s", FormatRate(rate)), tm.ColorWhite, tm.ColorDefault)
	printUsageBar(w/2, 6, w/2-1, uint64(rate), 1, tm.ColorGreen)

	half := (w + 1) / 2
	printHLineText(0, 8, half, "Messages")
	printHLineText(half, 8, w-half, "Errors")
	for i, s := range u.msgRing {
		printText(0, 9+i, half-1, s, tm.ColorWhite, tm.ColorDefault)
	}
	for i, s := range u.errRing {
		printText(half, 9+i, w-half, s, tm.ColorRed, tm.ColorDefault)
	}
}

// Close restores the terminal.
func (u *TUI) Close() error {
	u.closeOnce.Do(func() {
		u.mu.Lock()
		u.closed = true
		u.mu.Unlock()
		tm.Close()
	})
	return nil
}
