//go:build !unix

package throughput

import "net"

func connectPeer(net.PacketConn, net.Addr) (bool, error) {
	return false, nil
}
