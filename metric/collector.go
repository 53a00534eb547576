package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/scanimetrics/wsnperf/stats"
	"github.com/scanimetrics/wsnperf/wsnperf"
)

var (
	rxBytesDesc = prometheus.NewDesc(namespace+"_netdev_receive_bytes_total",
		"Bytes received by the interface as counted by the kernel.", []string{"device"}, nil)
	rxPacketsDesc = prometheus.NewDesc(namespace+"_netdev_receive_packets_total",
		"Packets received by the interface.", []string{"device"}, nil)
	rxDropDesc = prometheus.NewDesc(namespace+"_netdev_receive_drop_total",
		"Received packets dropped by the interface.", []string{"device"}, nil)
	txBytesDesc = prometheus.NewDesc(namespace+"_netdev_transmit_bytes_total",
		"Bytes sent by the interface.", []string{"device"}, nil)
	retransDesc = prometheus.NewDesc(namespace+"_tcp_retransmitted_segments_total",
		"TCP segments retransmitted by the host.", nil, nil)
)

// netStatCollector samples kernel counters on every scrape.
type netStatCollector struct {
	read   func() (stats.NetStat, error)
	logger wsnperf.Logger
}

// NewNetStatCollector exports interface and TCP counters of the host. Read
// failures are logged at debug level and yield whatever was read.
func NewNetStatCollector(logger wsnperf.Logger) prometheus.Collector {
	return &netStatCollector{read: stats.GetNetStats, logger: logger}
}

func (c *netStatCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- rxBytesDesc
	ch <- rxPacketsDesc
	ch <- rxDropDesc
	ch <- txBytesDesc
	ch <- retransDesc
}

func (c *netStatCollector) Collect(ch chan<- prometheus.Metric) {
	ns, err := c.read()
	if err != nil {
		c.logger.Debug("Unable to read network statistics: %v", err)
	}
	for _, d := range ns.Devices {
		ch <- prometheus.MustNewConstMetric(rxBytesDesc, prometheus.CounterValue, float64(d.RXBytes), d.InterfaceName)
		ch <- prometheus.MustNewConstMetric(rxPacketsDesc, prometheus.CounterValue, float64(d.RXPackets), d.InterfaceName)
		ch <- prometheus.MustNewConstMetric(rxDropDesc, prometheus.CounterValue, float64(d.RXDrop), d.InterfaceName)
		ch <- prometheus.MustNewConstMetric(txBytesDesc, prometheus.CounterValue, float64(d.TXBytes), d.InterfaceName)
	}
	if err == nil {
		ch <- prometheus.MustNewConstMetric(retransDesc, prometheus.CounterValue, float64(ns.TCP.RetransmittedSegments))
	}
}
