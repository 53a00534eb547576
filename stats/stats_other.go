//go:build !linux

package stats

func GetNetStats() (NetStat, error) {
	return NetStat{}, ErrUnsupported
}
