// Package scanner drives one continuous device-discovery session against a
// local Bluetooth adapter.
//
// A Session arms the channel (receive timestamps plus an event filter for
// the three inquiry events), puts the controller into periodic inquiry mode
// with the shortest legal inter-cycle window, and then runs a single-
// threaded read loop: wait for readability with a bounded stall budget,
// read one frame, reassemble partials, classify, and emit normalized
// records to a Sink.
//
// # Shutdown
//
// RequestStop sets an atomic flag checked once per loop iteration; the loop
// finishes the in-flight message, exits, and the session leaves periodic
// inquiry mode best-effort. The caller decides what a second stop request
// means (the CLI terminates the process immediately).
//
// # Error policy
//
// Configuration and transport failures are fatal. Payload validation
// failures (length mismatches, a non-zero cycle status) abort the run too:
// the packed binary log has no resynchronization point, so skipping a
// malformed message could silently desynchronize the stream. Partial reads
// and unknown-but-filtered event codes are the only tolerated anomalies.
package scanner
