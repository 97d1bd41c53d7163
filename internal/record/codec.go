package record

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Fixed payload sizes per tag. The tag byte itself is not included.
const (
	sizeTimestamp           = 16
	sizeCycleComplete       = sizeTimestamp
	sizeDiscovery           = sizeTimestamp + 6 + 3
	sizeDiscoveryWithSignal = sizeDiscovery + 1
)

var (
	// ErrUnknownTag means the stream contains a tag byte the decoder does
	// not know. The packed format has no resynchronization point, so this
	// is fatal to decoding.
	ErrUnknownTag = errors.New("unknown record tag")

	// ErrTruncated means the stream ended in the middle of a record.
	ErrTruncated = errors.New("truncated record")
)

// PayloadSize returns the fixed payload size for a tag.
func PayloadSize(tag byte) (int, error) {
	switch tag {
	case TagCycleComplete:
		return sizeCycleComplete, nil
	case TagDiscovery:
		return sizeDiscovery, nil
	case TagDiscoveryWithSignal:
		return sizeDiscoveryWithSignal, nil
	}
	return 0, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, tag)
}

// Encode serializes a record as its tag byte followed by the fixed-width
// little-endian payload. Every field is written explicitly; the layout never
// depends on in-memory struct representation.
func Encode(r Record) []byte {
	switch rec := r.(type) {
	case CycleComplete:
		buf := make([]byte, 0, 1+sizeCycleComplete)
		buf = append(buf, TagCycleComplete)
		return appendTimestamp(buf, rec.Time)
	case Discovery:
		buf := make([]byte, 0, 1+sizeDiscovery)
		buf = append(buf, TagDiscovery)
		buf = appendTimestamp(buf, rec.Time)
		buf = append(buf, rec.Addr[:]...)
		return append(buf, rec.Class[:]...)
	case DiscoveryWithSignal:
		buf := make([]byte, 0, 1+sizeDiscoveryWithSignal)
		buf = append(buf, TagDiscoveryWithSignal)
		buf = appendTimestamp(buf, rec.Time)
		buf = append(buf, rec.Addr[:]...)
		buf = append(buf, rec.Class[:]...)
		return append(buf, byte(rec.RSSI))
	}
	panic(fmt.Sprintf("record: unknown record type %T", r))
}

// Decode reverses Encode for one payload. The payload must be exactly the
// size PayloadSize reports for the tag.
func Decode(tag byte, payload []byte) (Record, error) {
	size, err := PayloadSize(tag)
	if err != nil {
		return nil, err
	}
	if len(payload) != size {
		return nil, fmt.Errorf("%w: tag 0x%02x has %d payload bytes, want %d",
			ErrTruncated, tag, len(payload), size)
	}

	ts := decodeTimestamp(payload)
	switch tag {
	case TagCycleComplete:
		return CycleComplete{Time: ts}, nil
	case TagDiscovery:
		rec := Discovery{Time: ts}
		copy(rec.Addr[:], payload[16:22])
		copy(rec.Class[:], payload[22:25])
		return rec, nil
	default: // TagDiscoveryWithSignal, PayloadSize rejected everything else
		rec := DiscoveryWithSignal{Time: ts}
		copy(rec.Addr[:], payload[16:22])
		copy(rec.Class[:], payload[22:25])
		rec.RSSI = int8(payload[25])
		return rec, nil
	}
}

func appendTimestamp(buf []byte, ts Timestamp) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, uint64(ts.Sec))
	return binary.LittleEndian.AppendUint64(buf, uint64(ts.Usec))
}

func decodeTimestamp(payload []byte) Timestamp {
	return Timestamp{
		Sec:  int64(binary.LittleEndian.Uint64(payload[0:8])),
		Usec: int64(binary.LittleEndian.Uint64(payload[8:16])),
	}
}
