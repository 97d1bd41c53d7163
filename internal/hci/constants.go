package hci

// Packet type indicators (first byte of every frame on the raw socket)
const (
	PacketTypeCommand = 0x01
	PacketTypeEvent   = 0x04
)

// Socket-level options (SOL_HCI)
const (
	solHCI       = 0
	optFilter    = 2
	optTimestamp = 3

	// Control-message type carrying the kernel receive timestamp
	cmsgTimestamp = 2
)

// Link Control command group and the two inquiry-mode commands this tool
// issues. Opcode = (OGF << 10) | OCF.
const (
	OGFLinkCtl             = 0x01
	OCFPeriodicInquiry     = 0x0003
	OCFExitPeriodicInquiry = 0x0004
)

// MaxFrameSize is the largest frame the controller can deliver in one read
// (ACL header + maximum ACL payload). Event frames are much smaller, but the
// read buffer is sized for the worst case.
const MaxFrameSize = 1028
