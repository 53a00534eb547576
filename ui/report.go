package ui

import (
	"fmt"
	"io"

	"github.com/scanimetrics/wsnperf/throughput"
)

// TextReporter prints the final byte count and rate of a session.
type TextReporter struct {
	W io.Writer
}

func (r TextReporter) Report(res throughput.Result) {
	fmt.Fprintf(r.W, "Received %d bytes in total\n", res.Bytes)
	fmt.Fprintf(r.W, "Throughput was ~ %f kib/s\n", res.Throughput)
}
