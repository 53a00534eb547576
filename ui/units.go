package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	KiB = 1024
	MiB = 1024 * KiB
	GiB = 1024 * MiB
)

var ErrInvalidSize = errors.New("invalid size")

// Decimal suffixes are powers of 1000, the IEC ones powers of 1024.
var sizeUnits = map[string]uint64{
	"":    1,
	"B":   1,
	"K":   1000,
	"KB":  1000,
	"KIB": KiB,
	"M":   1000 * 1000,
	"MB":  1000 * 1000,
	"MIB": MiB,
	"G":   1000 * 1000 * 1000,
	"GB":  1000 * 1000 * 1000,
	"GIB": GiB,
}

// ParseSize reads a positive byte count such as "1024", "16KB" or "2KiB".
func ParseSize(s string) (uint64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	i := strings.IndexFunc(s, unicode.IsLetter)
	if i < 0 {
		i = len(s)
	}
	mult, ok := sizeUnits[s[i:]]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidSize, s[i:])
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	return uint64(v * float64(mult)), nil
}

var byteUnits = []string{"B", "KiB", "MiB", "GiB"}

// FormatBytes renders n with the largest binary unit that keeps the value
// at or above one, e.g. "1.50 KiB".
func FormatBytes(n uint64) string {
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(byteUnits)-1 {
		v /= 1024
		i++
	}
	if i == 0 {
		return strconv.FormatUint(n, 10) + " B"
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + " " + byteUnits[i]
}

// FormatRate formats a kib/s rate the way the session panel shows it.
func FormatRate(kibps float64) string {
	return strconv.FormatFloat(kibps, 'f', 2, 64) + " kib/s"
}
