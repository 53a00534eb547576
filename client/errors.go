package client

import "errors"

var (
	ErrNoPort         = errors.New("the server port must be given with -port or in the destination")
	ErrNotImplemented = errors.New("test not implemented for protocol")
)
