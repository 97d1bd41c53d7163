//go:build linux

package hci

import (
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// Socket is a raw HCI socket bound to one local adapter. It carries event
// frames from the controller along with kernel receive timestamps. A Socket
// is owned by a single goroutine for the lifetime of a scan.
type Socket struct {
	fd  int
	dev int
}

// Open binds a raw socket to the adapter with the given index (hci0 is 0).
func Open(dev int) (*Socket, error) {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.BTPROTO_HCI)
	if err != nil {
		return nil, fmt.Errorf("open hci socket: %w", err)
	}

	sa := &unix.SockaddrHCI{Dev: uint16(dev), Channel: unix.HCI_CHANNEL_RAW}
	if err := unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("bind hci%d: %w", dev, err)
	}

	return &Socket{fd: fd, dev: dev}, nil
}

// Device returns the adapter index this socket is bound to.
func (s *Socket) Device() int { return s.dev }

// Close releases the socket.
func (s *Socket) Close() error {
	return unix.Close(s.fd)
}

// EnableTimestamps asks the kernel to attach a receive timestamp to every
// frame delivered on this socket.
func (s *Socket) EnableTimestamps() error {
	if err := unix.SetsockoptInt(s.fd, solHCI, optTimestamp, 1); err != nil {
		return fmt.Errorf("enable hci timestamps: %w", err)
	}
	return nil
}

// FilterEvents installs a kernel-side filter admitting only event packets
// with one of the given event codes.
func (s *Socket) FilterEvents(events ...uint8) error {
	flt := newEventFilter(events...)
	if err := unix.SetsockoptString(s.fd, solHCI, optFilter, string(flt.encode())); err != nil {
		return fmt.Errorf("set hci filter: %w", err)
	}
	return nil
}

// Command sends one command packet to the controller.
func (s *Socket) Command(ogf, ocf uint16, params []byte) error {
	pkt := commandPacket(ogf, ocf, params)
	if _, err := unix.Write(s.fd, pkt); err != nil {
		return fmt.Errorf("send hci command 0x%04x: %w", Opcode(ogf, ocf), err)
	}
	return nil
}

// Wait blocks until the socket is readable or the timeout elapses. It
// returns false with a nil error on timeout or when interrupted by a signal.
func (s *Socket) Wait(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err == unix.EINTR {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("poll hci socket: %w", err)
	}
	return n > 0, nil
}

// Read receives one frame (or the remainder of a partially delivered one)
// into buf and extracts the kernel receive timestamp from the ancillary
// data. A zero count with a nil error means the call was interrupted and
// should simply be retried.
func (s *Socket) Read(buf []byte) (int, time.Time, error) {
	oob := make([]byte, 64)
	n, oobn, _, _, err := unix.Recvmsg(s.fd, buf, oob, 0)
	if err == unix.EINTR {
		return 0, time.Time{}, nil
	}
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("recvmsg: %w", err)
	}

	return n, recvTimestamp(oob[:oobn]), nil
}

// recvTimestamp pulls the HCI_CMSG_TSTAMP timeval out of the control
// messages, if present. The timeval is native-width: two 64-bit words on
// 64-bit kernels, two 32-bit words on 32-bit ones.
func recvTimestamp(oob []byte) time.Time {
	cmsgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return time.Time{}
	}
	for _, cmsg := range cmsgs {
		if cmsg.Header.Level != solHCI || cmsg.Header.Type != cmsgTimestamp {
			continue
		}
		switch len(cmsg.Data) {
		case 16:
			sec := int64(binary.LittleEndian.Uint64(cmsg.Data[0:8]))
			usec := int64(binary.LittleEndian.Uint64(cmsg.Data[8:16]))
			return time.Unix(sec, usec*1000)
		case 8:
			sec := int64(int32(binary.LittleEndian.Uint32(cmsg.Data[0:4])))
			usec := int64(int32(binary.LittleEndian.Uint32(cmsg.Data[4:8])))
			return time.Unix(sec, usec*1000)
		}
	}
	return time.Time{}
}
