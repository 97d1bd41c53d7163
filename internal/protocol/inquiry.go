package protocol

import (
	"encoding/binary"
	"fmt"
)

// Inquiry response item sizes. Both layouts happen to be 14 bytes: the plain
// form carries an extra page-scan mode byte where the RSSI form carries the
// signal strength after the clock offset.
const (
	inquiryItemSize     = 14
	inquiryItemSizeRSSI = 14
)

// GIAC is the lower address part of the General Inquiry Access Code, the
// "everyone answer" inquiry channel.
var GIAC = [3]byte{0x33, 0x8b, 0x9e}

// InquiryItem is one discovered device from an inquiry result event.
type InquiryItem struct {
	Addr  [6]byte
	Class [3]byte
	RSSI  int8 // only meaningful for results with RSSI
}

// PeriodicInquiryParams builds the 9-byte parameter block for the Periodic
// Inquiry Mode command: max period, min period (both in 1.28s units),
// inquiry access code, cycle length, and an unlimited response count.
func PeriodicInquiryParams(minPeriod, maxPeriod uint16, length uint8) []byte {
	params := make([]byte, 0, 9)
	params = binary.LittleEndian.AppendUint16(params, maxPeriod)
	params = binary.LittleEndian.AppendUint16(params, minPeriod)
	params = append(params, GIAC[:]...)
	params = append(params, length)
	params = append(params, 0x00) // num_responses: no limit
	return params
}

// ParseInquiryResult unpacks an inquiry result payload: a response count
// followed by that many fixed-size items. A count/length mismatch is a
// protocol violation and fails the whole message.
func ParseInquiryResult(params []byte) ([]InquiryItem, error) {
	count, err := checkItemCount("inquiry result", params, inquiryItemSize)
	if err != nil {
		return nil, err
	}

	items := make([]InquiryItem, count)
	for i := 0; i < count; i++ {
		item := params[1+i*inquiryItemSize:]
		copy(items[i].Addr[:], item[0:6])
		// addr, page-scan repetition/period/mode, then the class bytes
		copy(items[i].Class[:], item[9:12])
	}
	return items, nil
}

// ParseInquiryResultRSSI unpacks an inquiry-result-with-RSSI payload. Same
// shape as ParseInquiryResult plus a signed RSSI byte per item.
func ParseInquiryResultRSSI(params []byte) ([]InquiryItem, error) {
	count, err := checkItemCount("inquiry result with rssi", params, inquiryItemSizeRSSI)
	if err != nil {
		return nil, err
	}

	items := make([]InquiryItem, count)
	for i := 0; i < count; i++ {
		item := params[1+i*inquiryItemSizeRSSI:]
		copy(items[i].Addr[:], item[0:6])
		copy(items[i].Class[:], item[8:11])
		items[i].RSSI = int8(item[13])
	}
	return items, nil
}

// ParseInquiryComplete validates an inquiry complete payload and returns an
// error when the controller reports a non-zero status. A failed inquiry
// leaves the periodic session in an unknown state, so the caller aborts.
func ParseInquiryComplete(params []byte) error {
	if len(params) != 1 {
		return fmt.Errorf("inquiry complete: bad parameter length %d, want 1", len(params))
	}
	if status := params[0]; status != 0 {
		return fmt.Errorf("inquiry failed: controller status 0x%02x", status)
	}
	return nil
}

func checkItemCount(what string, params []byte, itemSize int) (int, error) {
	if len(params) < 1 {
		return 0, fmt.Errorf("%s: empty payload", what)
	}
	count := int(params[0])
	if len(params) != count*itemSize+1 {
		return 0, fmt.Errorf("%s: %d responses do not fit payload length %d",
			what, count, len(params))
	}
	return count, nil
}
