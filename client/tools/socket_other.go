//go:build !unix

package tools

import "github.com/scanimetrics/wsnperf/wsnperf"

func (t Tools) setTrafficClass(fd uintptr, tclass int, ipVersion wsnperf.IPVersion) error {
	return nil
}
