package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	for in, want := range map[string]uint64{
		"1024":   1024,
		"16KB":   16000,
		"2kib":   2048,
		" 1MiB ": MiB,
		"1.5k":   1500,
		"1B":     1,
	} {
		got, err := ParseSize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "0", "-4", "0.5", "4XB", "abc", "KiB"} {
		_, err := ParseSize(in)
		assert.ErrorIs(t, err, ErrInvalidSize, in)
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", FormatBytes(0))
	assert.Equal(t, "1023 B", FormatBytes(1023))
	assert.Equal(t, "1.50 KiB", FormatBytes(1536))
	assert.Equal(t, "4.00 MiB", FormatBytes(4*MiB))
	assert.Equal(t, "2048.00 GiB", FormatBytes(2048*GiB))
	assert.Equal(t, "12.50 kib/s", FormatRate(12.5))
}

func TestBarWidth(t *testing.T) {
	assert.Equal(t, 0, barWidth(0, 1, 10))
	assert.Equal(t, 1, barWidth(5, 1, 10))
	assert.Equal(t, 3, barWidth(150, 1, 10))
	assert.Equal(t, 2, barWidth(1e9, 1, 2))
	assert.Equal(t, 0, barWidth(10, 0, 10))
}
