package record

import (
	"fmt"
	"time"
)

// Log entry tags. Their values equal the HCI event codes the records were
// derived from, so the scan producer and the decoder agree without a shared
// schema version.
const (
	TagCycleComplete       = 0x01
	TagDiscovery           = 0x02
	TagDiscoveryWithSignal = 0x22
)

// Addr is a Bluetooth device address as it appears on the wire
// (little-endian byte order).
type Addr [6]byte

// String renders the address in the conventional colon-separated form, most
// significant byte first.
func (a Addr) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X",
		a[5], a[4], a[3], a[2], a[1], a[0])
}

// Timestamp is a microsecond-resolution wall-clock time, stored as separate
// seconds and microseconds so the binary layout is fixed-width.
type Timestamp struct {
	Sec  int64
	Usec int64
}

// NewTimestamp converts a time.Time, truncating to microseconds.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Sec: t.Unix(), Usec: int64(t.Nanosecond()) / 1000}
}

// Time converts back to a time.Time in the local zone.
func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Sec, ts.Usec*1000)
}

// Record is one normalized log entry. Exactly three implementations exist;
// the codec dispatches on them as a closed set.
type Record interface {
	// Tag returns the entry's type tag byte.
	Tag() byte

	// When returns the receive timestamp carried by the entry.
	When() Timestamp
}

// CycleComplete marks the end of one discovery cycle. The first entry of
// every log is a synthetic CycleComplete stamped with the session start
// time; all later timestamps come from the channel.
type CycleComplete struct {
	Time Timestamp
}

func (r CycleComplete) Tag() byte       { return TagCycleComplete }
func (r CycleComplete) When() Timestamp { return r.Time }

// Discovery is one device observed during a cycle.
type Discovery struct {
	Time  Timestamp
	Addr  Addr
	Class [3]byte
}

func (r Discovery) Tag() byte       { return TagDiscovery }
func (r Discovery) When() Timestamp { return r.Time }

// DiscoveryWithSignal is a Discovery plus the received signal strength in
// dBm. The valid range is -127 to +20.
type DiscoveryWithSignal struct {
	Time  Timestamp
	Addr  Addr
	Class [3]byte
	RSSI  int8
}

func (r DiscoveryWithSignal) Tag() byte       { return TagDiscoveryWithSignal }
func (r DiscoveryWithSignal) When() Timestamp { return r.Time }
