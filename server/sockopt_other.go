//go:build !unix

package server

import "syscall"

func (c *Config) Control(network, address string, rc syscall.RawConn) error {
	return nil
}
