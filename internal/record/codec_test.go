package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluetrax/bluetrax/internal/protocol"
)

var testTime = Timestamp{Sec: 1357924680, Usec: 123456}

func TestTagsMatchEventCodes(t *testing.T) {
	// Producer and decoder share no schema version; the tags must stay
	// equal to the channel's native event codes.
	assert.EqualValues(t, protocol.EvtInquiryComplete, TagCycleComplete)
	assert.EqualValues(t, protocol.EvtInquiryResult, TagDiscovery)
	assert.EqualValues(t, protocol.EvtInquiryResultWithRSSI, TagDiscoveryWithSignal)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	addr := Addr{0x66, 0x55, 0x44, 0x33, 0x22, 0x11}
	class := [3]byte{0x0c, 0x02, 0x5a}

	records := []Record{
		CycleComplete{Time: testTime},
		Discovery{Time: testTime, Addr: addr, Class: class},
		DiscoveryWithSignal{Time: testTime, Addr: addr, Class: class, RSSI: -127},
		DiscoveryWithSignal{Time: testTime, Addr: addr, Class: class, RSSI: 0},
		DiscoveryWithSignal{Time: testTime, Addr: addr, Class: class, RSSI: 20},
	}

	for _, rec := range records {
		buf := Encode(rec)
		size, err := PayloadSize(buf[0])
		require.NoError(t, err)
		require.Len(t, buf, 1+size)

		decoded, err := Decode(buf[0], buf[1:])
		require.NoError(t, err)
		assert.Equal(t, rec, decoded)
	}
}

func TestEncodeLayout(t *testing.T) {
	rec := DiscoveryWithSignal{
		Time:  Timestamp{Sec: 1, Usec: 2},
		Addr:  Addr{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff},
		Class: [3]byte{0x01, 0x02, 0x03},
		RSSI:  -1,
	}
	buf := Encode(rec)

	require.Len(t, buf, 27)
	assert.Equal(t, byte(TagDiscoveryWithSignal), buf[0])
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, buf[1:9], "seconds")
	assert.Equal(t, []byte{2, 0, 0, 0, 0, 0, 0, 0}, buf[9:17], "microseconds")
	assert.Equal(t, []byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}, buf[17:23], "address")
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, buf[23:26], "class")
	assert.Equal(t, byte(0xff), buf[26], "rssi")
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(0x7f, nil)
	assert.ErrorIs(t, err, ErrUnknownTag)

	_, err = Decode(TagCycleComplete, make([]byte, 8))
	assert.ErrorIs(t, err, ErrTruncated)

	_, err = PayloadSize(0x00)
	assert.ErrorIs(t, err, ErrUnknownTag)
}

func TestAddrString(t *testing.T) {
	// wire order is little-endian; display is most significant first
	addr := Addr{0x66, 0x55, 0x44, 0x33, 0x22, 0x11}
	assert.Equal(t, "11:22:33:44:55:66", addr.String())
}

func TestTimestampConversion(t *testing.T) {
	now := time.Date(2013, 1, 11, 17, 18, 0, 123456789, time.Local)
	ts := NewTimestamp(now)

	assert.Equal(t, now.Unix(), ts.Sec)
	assert.Equal(t, int64(123456), ts.Usec)
	assert.True(t, ts.Time().Equal(now.Truncate(time.Microsecond)))
}
