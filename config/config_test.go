package config

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanimetrics/wsnperf/wsnperf"
)

func parse(args ...string) (*Config, error) {
	return Parse("wsnperf", args, &bytes.Buffer{})
}

func TestParseDefaults(t *testing.T) {
	cfg, err := parse()
	require.NoError(t, err)
	assert.Equal(t, wsnperf.ModeThroughput, cfg.Mode)
	assert.Equal(t, wsnperf.TCP, cfg.Protocol)
	assert.Equal(t, wsnperf.IPv6, cfg.IPVersion)
	assert.Equal(t, uint16(0), cfg.Port)
	assert.False(t, cfg.PingPong)
	assert.Equal(t, 0, cfg.BufferSize)
	assert.Equal(t, DefaultLinger, cfg.Linger)
	assert.Equal(t, "stdout", cfg.LogTo)
	assert.Equal(t, DefaultCount, cfg.Count)
	assert.Equal(t, DefaultSize, cfg.Size)
	assert.Equal(t, DefaultStopRepeat, cfg.StopRepeat)
}

func TestParseServerModes(t *testing.T) {
	cfg, err := parse("-e", "-port", "7777")
	require.NoError(t, err)
	assert.Equal(t, wsnperf.ModeEcho, cfg.Mode)
	assert.Equal(t, uint16(7777), cfg.Port)

	cfg, err = parse("-t", "-d", "-p", "-buf", "64KIB")
	require.NoError(t, err)
	assert.Equal(t, wsnperf.ModeThroughput, cfg.Mode)
	assert.Equal(t, wsnperf.UDP, cfg.Protocol)
	assert.True(t, cfg.PingPong)
	assert.Equal(t, 64*1024, cfg.BufferSize)

	cfg, err = parse("-throughput", "-udp", "-pingpong")
	require.NoError(t, err)
	assert.Equal(t, wsnperf.UDP, cfg.Protocol)
	assert.True(t, cfg.PingPong)
}

func TestParseConflicts(t *testing.T) {
	for _, args := range [][]string{
		{"-e", "-t"},
		{"-s", "-d"},
		{"-echo", "-udp"},
		{"-e", "-c", "fe80::1"},
		{"-port", "65536"},
		{"-ip", "not-an-ip"},
		{"-4", "-ip", "::1"},
		{"-tclass", "256"},
		{"-buf", "0"},
		{"-d", "-buf", "1024"},
		{"-linger", "soon"},
		{"-d", "-c", "::1", "-l", "65KIB"},
		{"-stoprepeat", "0", "-c", "::1"},
		{"-n", "10"},
		{"-c", "::1", "-ui"},
		{"extra"},
	} {
		_, err := parse(args...)
		assert.Error(t, err, "%v", args)
	}
}

func TestParseClient(t *testing.T) {
	cfg, err := parse("-c", "fe80::1", "-d", "-n", "16", "-l", "512", "-g", "10ms", "-port", "5683")
	require.NoError(t, err)
	assert.Equal(t, wsnperf.ModeClient, cfg.Mode)
	assert.Equal(t, "fe80::1", cfg.ClientDest)
	assert.Equal(t, wsnperf.UDP, cfg.Protocol)
	assert.Equal(t, 16, cfg.Count)
	assert.Equal(t, 512, cfg.Size)
	assert.Equal(t, 10*time.Millisecond, cfg.Gap)
}

func TestParseHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := Parse("wsnperf", []string{"-h"}, &out)
	assert.True(t, errors.Is(err, flag.ErrHelp))
	assert.Contains(t, out.String(), "-e,-echo")
}

func TestParseConfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wsnperf.hjson")
	conf := `{
  # listen for a ping-pong udp client
  udp: true
  pingpong: true
  port: "5683"
  linger: "2s"
}`
	require.NoError(t, os.WriteFile(path, []byte(conf), 0644))

	cfg, err := parse("-useconffile", path)
	require.NoError(t, err)
	assert.Equal(t, wsnperf.UDP, cfg.Protocol)
	assert.True(t, cfg.PingPong)
	assert.Equal(t, uint16(5683), cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.Linger)

	// Explicit flags win over the file.
	cfg, err = parse("-useconffile", path, "-s", "-port", "9000")
	require.NoError(t, err)
	assert.Equal(t, wsnperf.TCP, cfg.Protocol)
	assert.Equal(t, uint16(9000), cfg.Port)
}

func TestParseConfFileMissing(t *testing.T) {
	_, err := parse("-useconffile", filepath.Join(t.TempDir(), "nope.hjson"))
	assert.Error(t, err)
}

func TestParsePort(t *testing.T) {
	for in, want := range map[string]uint16{
		"0":       0,
		"80":      80,
		" 8888\n": 8888,
		"65535":   65535,
	} {
		got, err := ParsePort(in)
		require.NoError(t, err, "%q", in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "-1", "65536", "12ab", "0x10"} {
		_, err := ParsePort(in)
		assert.ErrorIs(t, err, ErrInvalidPort, "%q", in)
	}
}
