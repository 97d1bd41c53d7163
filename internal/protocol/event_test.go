package protocol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resultFrame builds a complete inquiry result frame for count items.
func resultFrame(code uint8, count int, itemSize int) []byte {
	params := make([]byte, 1+count*itemSize)
	params[0] = byte(count)
	frame := []byte{0x04, code, byte(len(params))}
	return append(frame, params...)
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name    string
		frame   []byte
		wantErr error
	}{
		{
			name:    "empty read",
			frame:   nil,
			wantErr: ErrShortRead,
		},
		{
			name:    "header only",
			frame:   []byte{0x04, 0x01},
			wantErr: ErrShortRead,
		},
		{
			name:    "not an event packet",
			frame:   []byte{0x02, 0x01, 0x01, 0x00},
			wantErr: ErrNotEvent,
		},
		{
			name:    "partial frame",
			frame:   []byte{0x04, EvtInquiryResult, 0x0f, 0x01},
			wantErr: ErrPartial,
		},
		{
			name:  "complete frame",
			frame: []byte{0x04, EvtInquiryComplete, 0x01, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := ParseEvent(tt.frame)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint8(EvtInquiryComplete), ev.Code)
			assert.Len(t, ev.Params, 1)
		})
	}
}

func TestParseInquiryResult(t *testing.T) {
	frame := resultFrame(EvtInquiryResult, 2, inquiryItemSize)
	ev, err := ParseEvent(frame)
	require.NoError(t, err)

	// fill in recognizable addresses and classes
	for i := 0; i < 2; i++ {
		item := ev.Params[1+i*inquiryItemSize:]
		copy(item[0:6], []byte{byte(i + 1), 0x22, 0x33, 0x44, 0x55, 0x66})
		copy(item[9:12], []byte{0x04, 0x01, 0x12})
	}

	items, err := ParseInquiryResult(ev.Params)
	require.NoError(t, err)
	require.Len(t, items, 2)

	for i, item := range items {
		assert.Equal(t, byte(i+1), item.Addr[0])
		assert.Equal(t, [3]byte{0x04, 0x01, 0x12}, item.Class)
	}
}

func TestParseInquiryResultRSSI(t *testing.T) {
	frame := resultFrame(EvtInquiryResultWithRSSI, 1, inquiryItemSizeRSSI)
	ev, err := ParseEvent(frame)
	require.NoError(t, err)

	item := ev.Params[1:]
	copy(item[0:6], []byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff})
	copy(item[8:11], []byte{0x0c, 0x02, 0x5a})
	rssi := int8(-62)
	item[13] = byte(rssi)

	items, err := ParseInquiryResultRSSI(ev.Params)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, [6]byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}, items[0].Addr)
	assert.Equal(t, [3]byte{0x0c, 0x02, 0x5a}, items[0].Class)
	assert.Equal(t, int8(-62), items[0].RSSI)
}

func TestParseInquiryResultLengthMismatch(t *testing.T) {
	params := make([]byte, 1+inquiryItemSize)
	params[0] = 3 // declares three items, payload holds one

	_, err := ParseInquiryResult(params)
	require.Error(t, err)

	_, err = ParseInquiryResultRSSI(params)
	require.Error(t, err)

	_, err = ParseInquiryResult(nil)
	require.Error(t, err)
}

func TestParseInquiryComplete(t *testing.T) {
	require.NoError(t, ParseInquiryComplete([]byte{0x00}))

	err := ParseInquiryComplete([]byte{0x0f})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0x0f")

	require.Error(t, ParseInquiryComplete(nil))
	require.Error(t, ParseInquiryComplete([]byte{0x00, 0x00}))
}

func TestPeriodicInquiryParams(t *testing.T) {
	params := PeriodicInquiryParams(9, 10, 8)
	require.Len(t, params, 9)

	assert.Equal(t, []byte{0x0a, 0x00}, params[0:2], "max period")
	assert.Equal(t, []byte{0x09, 0x00}, params[2:4], "min period")
	assert.Equal(t, GIAC[:], params[4:7], "inquiry access code")
	assert.Equal(t, byte(8), params[7], "cycle length")
	assert.Equal(t, byte(0), params[8], "response limit")
}

func TestErrorsAreDistinct(t *testing.T) {
	_, err := ParseEvent([]byte{0x04, EvtInquiryResult, 0x10, 0x00})
	assert.True(t, errors.Is(err, ErrPartial))
	assert.False(t, errors.Is(err, ErrShortRead))
	assert.False(t, errors.Is(err, ErrNotEvent))
}
