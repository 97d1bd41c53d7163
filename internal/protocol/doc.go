// Package protocol parses the inquiry-related event frames delivered on a
// raw HCI socket.
//
// Three events matter to the scanner:
//   - inquiry result (0x02): one or more discovered devices with class bytes
//   - inquiry result with RSSI (0x22): the same plus signal strength
//   - inquiry complete (0x01): end of one discovery cycle with a status
//
// # Frame format
//
// Every frame starts with a one-byte packet type indicator, followed by a
// two-byte event header (event code, parameter length) and the parameters.
// ParseEvent distinguishes complete frames from short reads, partial frames
// (non-fatal: the socket delivers the rest on the next read) and non-event
// packets.
//
// Result payloads begin with a response count. Controllers in the field are
// only ever observed batching one response per event, but the count is
// honored: the count loop is protocol-legal and costs nothing.
//
// All parsing is stateless and safe for concurrent use.
package protocol
