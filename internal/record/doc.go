// Package record defines the normalized discovery records, their binary log
// encoding, and the text decoder.
//
// # Log format
//
// The log is a sequence of entries, each a one-byte tag followed by a
// fixed-size little-endian payload. There is no length prefix and no
// version field; the tag value (which equals the originating event code)
// implies the payload size. Entries are append-only and ordered by
// discovery time, never rewritten or sorted.
//
//	tag 0x01  cycle complete      16 bytes (sec int64, usec int64)
//	tag 0x02  discovery           16 + 6 addr + 3 class
//	tag 0x22  discovery w/ signal 16 + 6 addr + 3 class + 1 rssi (signed)
//
// Because the format is packed with no resynchronization point, a truncated
// entry or unknown tag ends decoding with an error instead of skipping.
//
// # Text output
//
// WriteCSV renders the log as CSV with the fixed header
// "type,time,bdaddr,services,major,minor,rssi"; times are local with
// microsecond precision, and class bytes are resolved through the devclass
// tables.
package record
