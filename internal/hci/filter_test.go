package hci

import (
	"bytes"
	"testing"
)

func TestNewEventFilter(t *testing.T) {
	f := newEventFilter(0x01, 0x02, 0x22)

	if f.typeMask != 1<<PacketTypeEvent {
		t.Errorf("typeMask = 0x%08x, want bit %d set", f.typeMask, PacketTypeEvent)
	}
	// 0x01 and 0x02 land in the low word, 0x22 in the high word
	if f.eventMask[0] != (1<<0x01)|(1<<0x02) {
		t.Errorf("eventMask[0] = 0x%08x", f.eventMask[0])
	}
	if f.eventMask[1] != 1<<(0x22-32) {
		t.Errorf("eventMask[1] = 0x%08x", f.eventMask[1])
	}
}

func TestEventFilterEncode(t *testing.T) {
	f := newEventFilter(0x01, 0x02, 0x22)
	got := f.encode()

	want := []byte{
		0x10, 0x00, 0x00, 0x00, // type mask: bit 4
		0x06, 0x00, 0x00, 0x00, // event mask low: bits 1, 2
		0x04, 0x00, 0x00, 0x00, // event mask high: bit 34-32
		0x00, 0x00, // opcode
		0x00, 0x00, // struct padding
	}
	if !bytes.Equal(got, want) {
		t.Errorf("encode() = % x, want % x", got, want)
	}
}

func TestOpcode(t *testing.T) {
	if op := Opcode(OGFLinkCtl, OCFPeriodicInquiry); op != 0x0403 {
		t.Errorf("Opcode(link ctl, periodic inquiry) = 0x%04x, want 0x0403", op)
	}
	if op := Opcode(OGFLinkCtl, OCFExitPeriodicInquiry); op != 0x0404 {
		t.Errorf("Opcode(link ctl, exit periodic inquiry) = 0x%04x, want 0x0404", op)
	}
}

func TestCommandPacket(t *testing.T) {
	pkt := commandPacket(OGFLinkCtl, OCFExitPeriodicInquiry, nil)
	want := []byte{PacketTypeCommand, 0x04, 0x04, 0x00}
	if !bytes.Equal(pkt, want) {
		t.Errorf("commandPacket() = % x, want % x", pkt, want)
	}

	pkt = commandPacket(OGFLinkCtl, OCFPeriodicInquiry, []byte{0x0a, 0x00, 0x09, 0x00, 0x33, 0x8b, 0x9e, 0x08, 0x00})
	if len(pkt) != 4+9 {
		t.Fatalf("packet length = %d, want 13", len(pkt))
	}
	if pkt[3] != 9 {
		t.Errorf("parameter length byte = %d, want 9", pkt[3])
	}
	if pkt[1] != 0x03 || pkt[2] != 0x04 {
		t.Errorf("opcode bytes = %02x %02x, want 03 04", pkt[1], pkt[2])
	}
}
