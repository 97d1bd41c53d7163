// Package watch renders live discovery results as a terminal table.
//
// The watch command runs the same scan pipeline as the scan command, but
// instead of appending to the binary log it aggregates records per device
// address: class labels, most recent signal strength, observation count,
// and last-seen time. The view is lossy: it drops records under burst load
// rather than ever stalling the read loop.
package watch
