//go:build unix

package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestWatchSignal(t *testing.T) {
	log := &closeLog{}
	exited := make(chan int, 1)
	g := New(4, WithExit(func(code int) { exited <- code }))
	require.NoError(t, g.Register(namedCloser{"A", log}))
	require.NoError(t, g.Register(namedCloser{"B", log}))
	require.NoError(t, g.Register(namedCloser{"C", log}))
	g.Watch(unix.SIGUSR1)

	require.NoError(t, unix.Kill(unix.Getpid(), unix.SIGUSR1))

	select {
	case code := <-exited:
		assert.NotZero(t, code)
	case <-time.After(5 * time.Second):
		t.Fatal("signal did not terminate the guard")
	}
	assert.Equal(t, []string{"A", "B", "C"}, log.names())
}

func TestFDClosedOnTerminate(t *testing.T) {
	var p [2]int
	require.NoError(t, unix.Pipe(p[:]))
	g := New(2, WithExit(func(int) {}))
	require.NoError(t, g.Register(FD(p[0])))
	require.NoError(t, g.Register(FD(p[1])))

	g.Terminate()

	for _, fd := range p {
		_, err := unix.FcntlInt(uintptr(fd), unix.F_GETFD, 0)
		assert.ErrorIs(t, err, unix.EBADF)
	}
}
