// Package devclass translates the 3-byte Bluetooth device class field into
// human-readable major and minor category labels.
//
// The tables follow the Bluetooth baseband assigned numbers. Lookup is pure:
// no state, safe for concurrent use. Combinations the tables do not cover
// come back as a literal reserved label rather than an error.
package devclass

import "strings"

// reservedLabel is returned for any minor value the tables do not cover.
const reservedLabel = "Unknown (reserved) minor device class"

// majorDevices indexes the low five bits of the major class byte.
var majorDevices = [8]string{
	"Miscellaneous",
	"Computer",
	"Phone",
	"LAN Access",
	"Audio/Video",
	"Peripheral",
	"Imaging",
	"Uncategorized",
}

// Classify maps the raw major and minor class bytes to (major, minor)
// labels. Majors outside the assigned range yield two empty labels. The
// minor byte is taken raw; its low format bits are part of the lookups
// below, matching how the class bytes appear on the wire.
func Classify(major, minor uint8) (string, string) {
	idx := major & 0x1f
	if int(idx) >= len(majorDevices) {
		return "", ""
	}
	return majorDevices[idx], minorName(idx, minor)
}

// Service returns the service-class byte of a device class field. Callers
// that want the raw services bitmap print it as a number.
func Service(class [3]byte) uint8 { return class[2] }

// Major returns the raw major class byte.
func Major(class [3]byte) uint8 { return class[1] }

// Minor returns the raw minor class byte.
func Minor(class [3]byte) uint8 { return class[0] }

func minorName(major, minor uint8) string {
	switch major {
	case 0: // miscellaneous
		return ""
	case 1:
		return lookup(computerMinors, minor)
	case 2:
		return lookup(phoneMinors, minor)
	case 3:
		return lanMinor(minor)
	case 4:
		return lookup(audioVideoMinors, minor)
	case 5:
		return peripheralMinor(minor)
	case 6:
		return imagingMinor(minor)
	case 7:
		return lookup(wearableMinors, minor)
	}
	return reservedLabel
}

var computerMinors = map[uint8]string{
	0: "Uncategorized",
	1: "Desktop workstation",
	2: "Server",
	3: "Laptop",
	4: "Handheld",
	5: "Palm",
	6: "Wearable",
}

var phoneMinors = map[uint8]string{
	0: "Uncategorized",
	1: "Cellular",
	2: "Cordless",
	3: "Smart phone",
	4: "Wired modem or voice gateway",
	5: "Common ISDN Access",
	6: "Sim Card Reader",
}

var audioVideoMinors = map[uint8]string{
	0:  "Uncategorized",
	1:  "Device conforms to the Headset profile",
	2:  "Hands-free",
	4:  "Microphone",
	5:  "Loudspeaker",
	6:  "Headphones",
	7:  "Portable Audio",
	8:  "Car Audio",
	9:  "Set-top box",
	10: "HiFi Audio Device",
	11: "VCR",
	12: "Video Camera",
	13: "Camcorder",
	14: "Video Monitor",
	15: "Video Display and Loudspeaker",
	16: "Video Conferencing",
	18: "Gaming/Toy",
}

var wearableMinors = map[uint8]string{
	1: "Wrist Watch",
	2: "Pager",
	3: "Jacket",
	4: "Helmet",
	5: "Glasses",
}

// lanBands maps minor/8 to the advertised utilization band of a network
// access point.
var lanBands = [8]string{
	"Fully available",
	"1-17% utilized",
	"17-33% utilized",
	"33-50% utilized",
	"50-67% utilized",
	"67-83% utilized",
	"83-99% utilized",
	"No service available",
}

func lanMinor(minor uint8) string {
	if minor == 0 {
		return "Uncategorized"
	}
	band := minor / 8
	if int(band) >= len(lanBands) {
		return reservedLabel
	}
	return lanBands[band]
}

// peripheralMinor combines two independent bit-fields: bits 4-5 select the
// keyboard/pointing device flags, bits 0-3 the input device subtype. Both
// halves present join as "Keyboard/Joystick".
func peripheralMinor(minor uint8) string {
	var parts []string

	switch minor & 0x30 {
	case 0x10:
		parts = append(parts, "Keyboard")
	case 0x20:
		parts = append(parts, "Pointing device")
	case 0x30:
		parts = append(parts, "Combo keyboard/pointing device")
	}

	switch minor & 0x0f {
	case 0:
		// flags half only
	case 1:
		parts = append(parts, "Joystick")
	case 2:
		parts = append(parts, "Gamepad")
	case 3:
		parts = append(parts, "Remote control")
	case 4:
		parts = append(parts, "Sensing device")
	case 5:
		parts = append(parts, "Digitizer tablet")
	case 6:
		parts = append(parts, "Card reader")
	default:
		parts = append(parts, "(reserved)")
	}

	if len(parts) == 0 {
		return reservedLabel
	}
	return strings.Join(parts, "/")
}

func imagingMinor(minor uint8) string {
	switch {
	case minor&0x04 != 0:
		return "Display"
	case minor&0x08 != 0:
		return "Camera"
	case minor&0x10 != 0:
		return "Scanner"
	case minor&0x20 != 0:
		return "Printer"
	}
	return reservedLabel
}

func lookup(table map[uint8]string, minor uint8) string {
	if name, ok := table[minor]; ok {
		return name
	}
	return reservedLabel
}
