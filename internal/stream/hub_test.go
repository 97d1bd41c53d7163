package stream

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluetrax/bluetrax/internal/record"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	// registration happens on the server side of the handshake; wait for it
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		2*time.Second, 10*time.Millisecond)

	return conn
}

func TestHubBroadcastsRecords(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub)

	ts := record.NewTimestamp(time.Now())
	require.NoError(t, hub.Write(record.DiscoveryWithSignal{
		Time:  ts,
		Addr:  record.Addr{0x66, 0x55, 0x44, 0x33, 0x22, 0x11},
		Class: [3]byte{0x03, 0x01, 0x5a},
		RSSI:  -55,
	}))

	var ev Event
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&ev))

	assert.Equal(t, "inquiry", ev.Type)
	assert.Equal(t, "11:22:33:44:55:66", ev.Addr)
	assert.Equal(t, "90", ev.Services)
	assert.Equal(t, "Computer", ev.Major)
	assert.Equal(t, "Laptop", ev.Minor)
	require.NotNil(t, ev.RSSI)
	assert.Equal(t, int8(-55), *ev.RSSI)
}

func TestHubOmitsDeviceFieldsForCycleComplete(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub)

	require.NoError(t, hub.Write(record.CycleComplete{Time: record.NewTimestamp(time.Now())}))

	var ev Event
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&ev))

	assert.Equal(t, "complete", ev.Type)
	assert.NotEmpty(t, ev.Time)
	assert.Empty(t, ev.Addr)
	assert.Nil(t, ev.RSSI)
}

func TestHubWriteWithoutClientsIsHarmless(t *testing.T) {
	hub := NewHub()
	assert.NoError(t, hub.Write(record.CycleComplete{}))
	assert.NoError(t, hub.Flush())
	assert.Zero(t, hub.ClientCount())
}

func TestHubClose(t *testing.T) {
	hub := NewHub()
	dialHub(t, hub)

	hub.Close()
	assert.Zero(t, hub.ClientCount())
}
