package hci

import "encoding/binary"

// eventFilter mirrors the kernel's struct hci_filter: a packet-type bitmask,
// a 64-bit event bitmask and an opcode filter, 16 bytes total on the wire.
type eventFilter struct {
	typeMask  uint32
	eventMask [2]uint32
	opcode    uint16
}

// newEventFilter builds a filter that admits only event packets carrying one
// of the given event codes. Everything else is dropped in the kernel.
func newEventFilter(events ...uint8) eventFilter {
	var f eventFilter
	f.typeMask = 1 << PacketTypeEvent
	for _, evt := range events {
		bit := evt & 63
		f.eventMask[bit/32] |= 1 << (bit % 32)
	}
	return f
}

// encode lays the filter out the way setsockopt(SOL_HCI, HCI_FILTER) expects
// it: three little-endian words, the opcode, and two bytes of struct padding.
func (f eventFilter) encode() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], f.typeMask)
	binary.LittleEndian.PutUint32(buf[4:8], f.eventMask[0])
	binary.LittleEndian.PutUint32(buf[8:12], f.eventMask[1])
	binary.LittleEndian.PutUint16(buf[12:14], f.opcode)
	return buf
}

// Opcode combines a command group (OGF) and command (OCF) into the 16-bit
// opcode used in command packets.
func Opcode(ogf, ocf uint16) uint16 {
	return ogf<<10 | ocf&0x03ff
}

// commandPacket serializes a command frame: packet type indicator,
// little-endian opcode, parameter length, parameters.
func commandPacket(ogf, ocf uint16, params []byte) []byte {
	pkt := make([]byte, 0, 4+len(params))
	pkt = append(pkt, PacketTypeCommand)
	pkt = binary.LittleEndian.AppendUint16(pkt, Opcode(ogf, ocf))
	pkt = append(pkt, byte(len(params)))
	return append(pkt, params...)
}
