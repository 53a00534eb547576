// Package packet implements the minimal framing used by the UDP throughput
// protocol: a little-endian sequence number in the first four bytes of a
// datagram, a four byte acknowledgement echoing it, and an in-band stop
// sentinel.
package packet

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// SequenceSize is the number of bytes occupied by a sequence number and by a reply.
const SequenceSize = 4

// StopSentinel ends a UDP session when it appears anywhere in a datagram.
var StopSentinel = [SequenceSize]byte{0xFF, 0xFF, 0xFF, 0xFF}

var ErrTooShort = errors.New("datagram too short to carry a sequence number")

// SequenceNumber decodes the sequence number carried by payload.
func SequenceNumber(payload []byte) (uint32, error) {
	if len(payload) < SequenceSize {
		return 0, ErrTooShort
	}
	return binary.LittleEndian.Uint32(payload), nil
}

// BuildReply returns the acknowledgement for payload, or nil when payload has
// no sequence number. A nil reply must not be sent.
func BuildReply(payload []byte) []byte {
	seq, err := SequenceNumber(payload)
	if err != nil {
		return nil
	}
	return AppendSequenceNumber(make([]byte, 0, SequenceSize), seq)
}

func AppendSequenceNumber(dst []byte, seq uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, seq)
}

// HasStopSentinel reports whether the sentinel occurs as a contiguous run in
// payload. Payload bytes are not framed, so data that happens to contain the
// run also matches.
func HasStopSentinel(payload []byte) bool {
	return bytes.Contains(payload, StopSentinel[:])
}
