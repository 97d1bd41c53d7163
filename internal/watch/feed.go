package watch

import "github.com/bluetrax/bluetrax/internal/record"

// feedBuffer absorbs bursts while the UI is repainting. The framer never
// blocks on the UI: when the buffer is full, records are dropped from the
// view (the binary log, if any, is a separate sink and stays complete).
const feedBuffer = 256

// Feed adapts the scanner's sink contract to a record channel the UI can
// consume.
type Feed struct {
	ch chan record.Record
}

// NewFeed creates a feed with a bounded buffer.
func NewFeed() *Feed {
	return &Feed{ch: make(chan record.Record, feedBuffer)}
}

// Write hands a record to the UI without ever blocking the scan loop.
func (f *Feed) Write(r record.Record) error {
	select {
	case f.ch <- r:
	default:
	}
	return nil
}

// Flush is a no-op; the view has no durability to guarantee.
func (f *Feed) Flush() error { return nil }

// Records returns the channel the UI reads from.
func (f *Feed) Records() <-chan record.Record { return f.ch }

// Close marks the end of the feed. Call after the scan loop has exited;
// the UI quits when it drains the channel.
func (f *Feed) Close() { close(f.ch) }
