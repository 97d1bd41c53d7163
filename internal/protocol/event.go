package protocol

import (
	"errors"
	"fmt"

	"github.com/bluetrax/bluetrax/internal/hci"
)

// Event codes for the three inquiry-related events this tool understands.
// They double as the record tags in the binary log, so producer and decoder
// agree without a schema version field.
const (
	EvtInquiryComplete       = 0x01
	EvtInquiryResult         = 0x02
	EvtInquiryResultWithRSSI = 0x22
)

// EventHeaderSize is the size of the event header (event code + parameter
// length) that follows the packet type indicator.
const EventHeaderSize = 2

// Frame classification results. ErrShortRead and ErrPartial are expected,
// non-fatal conditions: the loop just reads again.
var (
	// ErrShortRead marks a read too small to carry an event header.
	ErrShortRead = errors.New("read shorter than event header")

	// ErrNotEvent marks a frame whose packet type is not an event packet.
	ErrNotEvent = errors.New("not an event packet")

	// ErrPartial marks a frame whose byte count does not match the
	// declared parameter length. The socket preserves message boundaries,
	// so the next read delivers the remainder.
	ErrPartial = errors.New("partial event frame")
)

// Event is one complete event frame with the framing stripped.
type Event struct {
	Code   uint8
	Params []byte
}

// ParseEvent classifies one raw read from the control socket. It returns a
// complete event, or one of ErrShortRead, ErrNotEvent, ErrPartial.
func ParseEvent(frame []byte) (Event, error) {
	if len(frame) <= EventHeaderSize {
		return Event{}, fmt.Errorf("%w: %d bytes", ErrShortRead, len(frame))
	}
	if frame[0] != hci.PacketTypeEvent {
		return Event{}, fmt.Errorf("%w: indicator 0x%02x", ErrNotEvent, frame[0])
	}

	code := frame[1]
	plen := int(frame[2])
	if len(frame) != 1+EventHeaderSize+plen {
		return Event{}, fmt.Errorf("%w: read %d bytes, header declares %d",
			ErrPartial, len(frame), 1+EventHeaderSize+plen)
	}

	return Event{Code: code, Params: frame[3:]}, nil
}
