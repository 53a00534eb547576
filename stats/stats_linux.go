//go:build linux

package stats

import (
	"fmt"
	"net"
	"os"
)

// GetNetStats reads the counters of every interface that is up.
func GetNetStats() (NetStat, error) {
	ifs, err := net.Interfaces()
	if err != nil {
		return NetStat{}, fmt.Errorf("error getting network interfaces: %w", err)
	}

	netStatsFile, err := os.Open("/proc/net/dev")
	if err != nil {
		return NetStat{}, fmt.Errorf("error opening /proc/net/dev: %w", err)
	}
	defer netStatsFile.Close()

	devices, err := ParseNetDev(netStatsFile, func(name string) bool { return isIfUp(name, ifs) })
	if err != nil {
		return NetStat{}, fmt.Errorf("could not build interface stats: %w", err)
	}
	stats := NetStat{Devices: devices}

	snmpStatsFile, err := os.Open("/proc/net/snmp")
	if err != nil {
		return stats, fmt.Errorf("error opening /proc/net/snmp: %w", err)
	}
	defer snmpStatsFile.Close()

	stats.TCP, err = ParseSNMP(snmpStatsFile)
	return stats, err
}

func isIfUp(ifName string, ifs []net.Interface) bool {
	for _, ifi := range ifs {
		if ifi.Name == ifName {
			return ifi.Flags&net.FlagUp != 0
		}
	}
	return false
}
