// Package hci provides raw access to a local Bluetooth adapter's Host
// Controller Interface.
//
// The package covers exactly what a passive inquiry scanner needs: binding a
// raw socket to one adapter, installing a kernel-side event filter, enabling
// per-frame receive timestamps, sending Link Control commands, and reading
// event frames with their timestamps.
//
// # Frame delivery
//
// The raw socket preserves message boundaries: one successful read returns
// one frame (packet type indicator, event header, parameters). On
// constrained hosts a read may return fewer bytes than the header declares;
// the next read on the same socket delivers the remainder. Callers detect
// this by comparing the byte count against the declared parameter length.
//
// # Timestamps
//
// With EnableTimestamps set, the kernel attaches the receive time of each
// frame as ancillary data, which Read decodes into a time.Time. This is the
// time the frame reached the host, not the time the remote device responded.
package hci
