// Package stats reads kernel network counters so a measured rate can be
// compared against what the interfaces actually carried.
package stats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

var ErrUnsupported = errors.New("network statistics are not available on this platform")

type NetStat struct {
	Devices []DeviceStats
	TCP     TCPStats
}

type DeviceStats struct {
	InterfaceName string
	RXBytes       uint64
	TXBytes       uint64
	RXPackets     uint64
	TXPackets     uint64
	RXErrs        uint64
	RXDrop        uint64
}

type TCPStats struct {
	RetransmittedSegments uint64
}

type netDevInfo struct {
	bytes   uint64
	packets uint64
	errs    uint64
	drop    uint64
}

// ParseNetDev parses the /proc/net/dev format. Only interfaces accepted by
// keep are returned, sorted by name; a nil keep accepts all.
func ParseNetDev(r io.Reader, keep func(name string) bool) ([]DeviceStats, error) {
	reader := bufio.NewReader(r)

	// Pass the header
	// Inter-|   Receive                                             |  Transmit
	//  face |bytes packets errs drop fifo frame compressed multicast|bytes packets errs drop fifo colls carrier compressed
	for i := 0; i < 2; i++ {
		if _, err := reader.ReadString('\n'); err != nil {
			return nil, fmt.Errorf("short net dev header: %w", err)
		}
	}

	var res []DeviceStats
	for {
		line, err := reader.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			dev, ok := buildNetDevStat(line)
			if ok && (keep == nil || keep(dev.InterfaceName)) {
				res = append(res, dev)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].InterfaceName < res[j].InterfaceName
	})
	return res, nil
}

func buildNetDevStat(line string) (DeviceStats, bool) {
	// "eth0:123" has no space after the colon when the counter is wide.
	name, rest, found := strings.Cut(line, ":")
	if !found {
		return DeviceStats{}, false
	}
	fields := strings.Fields(rest)
	if len(fields) < 16 {
		return DeviceStats{}, false
	}
	rxInfo := toNetDevInfo(fields[0:8])
	txInfo := toNetDevInfo(fields[8:16])
	return DeviceStats{
		InterfaceName: strings.TrimSpace(name),
		RXBytes:       rxInfo.bytes,
		TXBytes:       txInfo.bytes,
		RXPackets:     rxInfo.packets,
		TXPackets:     txInfo.packets,
		RXErrs:        rxInfo.errs,
		RXDrop:        rxInfo.drop,
	}, true
}

func toNetDevInfo(fields []string) netDevInfo {
	return netDevInfo{
		bytes:   toUInt64(fields[0]),
		packets: toUInt64(fields[1]),
		errs:    toUInt64(fields[2]),
		drop:    toUInt64(fields[3]),
	}
}

// ParseSNMP extracts the TCP counters from the /proc/net/snmp format, where
// a header line naming the columns precedes the line of values.
func ParseSNMP(r io.Reader) (TCPStats, error) {
	sc := bufio.NewScanner(r)
	var header []string
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "Tcp:") {
			continue
		}
		fields := strings.Fields(line)
		if header == nil {
			header = fields
			continue
		}
		for i, name := range header {
			if name == "RetransSegs" && i < len(fields) {
				return TCPStats{RetransmittedSegments: toUInt64(fields[i])}, nil
			}
		}
		return TCPStats{}, errors.New("no RetransSegs column in snmp statistics")
	}
	if err := sc.Err(); err != nil {
		return TCPStats{}, err
	}
	return TCPStats{}, errors.New("no Tcp section in snmp statistics")
}

func toUInt64(str string) uint64 {
	res, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0
	}
	return res
}
