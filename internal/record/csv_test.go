package record

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	ts := NewTimestamp(time.Date(2013, 1, 11, 17, 18, 0, 123456000, time.Local))
	addr := Addr{0x66, 0x55, 0x44, 0x33, 0x22, 0x11}

	var log bytes.Buffer
	w := NewWriter(&log)
	require.NoError(t, w.Write(CycleComplete{Time: ts}))
	require.NoError(t, w.Write(Discovery{Time: ts, Addr: addr, Class: [3]byte{3, 1, 90}}))
	require.NoError(t, w.Write(DiscoveryWithSignal{Time: ts, Addr: addr, Class: [3]byte{0x11, 0x05, 0x00}, RSSI: -62}))
	require.NoError(t, w.Flush())

	var out bytes.Buffer
	require.NoError(t, WriteCSV(&out, NewReader(&log)))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "type,time,bdaddr,services,major,minor,rssi", lines[0])

	wantTime := ts.Time().Format(timeLayout)
	assert.Equal(t, "complete,"+wantTime+",,,,,", lines[1])
	assert.Equal(t, "inquiry,"+wantTime+",11:22:33:44:55:66,90,Computer,Laptop,", lines[2])
	assert.Equal(t, "inquiry,"+wantTime+",11:22:33:44:55:66,0,Peripheral,Keyboard/Joystick,-62", lines[3])
}

func TestWriteCSVTruncatedLog(t *testing.T) {
	full := Encode(DiscoveryWithSignal{Time: testTime, RSSI: 5})

	var out bytes.Buffer
	err := WriteCSV(&out, NewReader(bytes.NewReader(full[:12])))
	require.ErrorIs(t, err, ErrTruncated)

	// the header may be out, but no partial row follows it
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.LessOrEqual(t, len(lines), 1)
}

func TestWriteCSVUnknownTag(t *testing.T) {
	var out bytes.Buffer
	err := WriteCSV(&out, NewReader(strings.NewReader("\x55")))
	require.ErrorIs(t, err, ErrUnknownTag)
}
