// Package guard releases the sockets of a measurement session when the
// process is interrupted.
//
// A Guard holds the handles registered for one session. When one of the
// watched signals arrives, or Terminate is called, every registered handle is
// closed in registration order and the process exits with a non-zero status.
// The storage for the handles is reserved when the Guard is created so the
// termination path never allocates.
package guard

import (
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
)

var (
	ErrCapacity    = errors.New("guard: handle capacity exhausted")
	ErrTerminating = errors.New("guard: terminating")
)

// DefaultCapacity covers a listening socket, an accepted connection and a
// few spares.
const DefaultCapacity = 8

type Option func(*Guard)

// WithExit replaces os.Exit. The function is called once Terminate has closed
// every handle.
func WithExit(exit func(code int)) Option {
	return func(g *Guard) {
		g.exit = exit
	}
}

func WithExitCode(code int) Option {
	return func(g *Guard) {
		g.code = code
	}
}

type Guard struct {
	mu          sync.Mutex
	handles     []io.Closer
	exit        func(int)
	code        int
	sigs        chan os.Signal
	watching    bool
	terminating bool
	done        chan struct{}
}

func New(capacity int, opts ...Option) *Guard {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	g := &Guard{
		handles: make([]io.Closer, 0, capacity),
		exit:    os.Exit,
		code:    1,
		sigs:    make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Register adds c to the set closed on termination. ErrCapacity means the
// reserved storage is used up; the caller cannot rely on the guard any more
// and must abort.
func (g *Guard) Register(c io.Closer) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.terminating {
		return ErrTerminating
	}
	if len(g.handles) == cap(g.handles) {
		return ErrCapacity
	}
	g.handles = append(g.handles, c)
	return nil
}

// Watch routes sigs to Terminate. It may be called more than once to add
// signals; the routing stays installed for the life of the process.
func (g *Guard) Watch(sigs ...os.Signal) {
	g.mu.Lock()
	start := !g.watching
	g.watching = true
	g.mu.Unlock()

	signal.Notify(g.sigs, sigs...)
	if start {
		go func() {
			<-g.sigs
			g.Terminate()
		}()
	}
}

// Stop forgets every registered handle without closing it. Watched signals
// stay routed to Terminate, which will then have nothing to close.
func (g *Guard) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.handles)
	g.handles = g.handles[:0]
}

// Terminate closes every registered handle in registration order and exits.
// Only the first call does the work; later callers block until the exit
// function has returned, which with os.Exit is never.
func (g *Guard) Terminate() {
	g.mu.Lock()
	if g.terminating {
		g.mu.Unlock()
		<-g.done
		return
	}
	g.terminating = true
	for i, h := range g.handles {
		_ = h.Close()
		g.handles[i] = nil
	}
	g.handles = g.handles[:0]
	g.exit(g.code)
	g.mu.Unlock()
	close(g.done)
}

// Len returns the number of registered handles.
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.handles)
}
