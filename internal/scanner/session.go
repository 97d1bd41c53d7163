package scanner

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/bluetrax/bluetrax/internal/hci"
	"github.com/bluetrax/bluetrax/internal/logging"
	"github.com/bluetrax/bluetrax/internal/protocol"
	"github.com/bluetrax/bluetrax/internal/record"
)

// Cycle length bounds accepted from the CLI, in 1.28s protocol time units.
const (
	MinCycleLength = 1
	MaxCycleLength = 100
)

// Channel is the control path to one local adapter. *hci.Socket implements
// it; tests substitute fakes.
type Channel interface {
	// EnableTimestamps requests a receive timestamp with every frame.
	EnableTimestamps() error

	// FilterEvents admits only the given event codes on the channel.
	FilterEvents(events ...uint8) error

	// Command issues one command to the controller.
	Command(ogf, ocf uint16, params []byte) error

	// Wait blocks until the channel is readable or the timeout elapses.
	Wait(timeout time.Duration) (bool, error)

	// Read receives one frame (or part of one) and its receive timestamp.
	// A zero count with nil error means interrupted; retry.
	Read(buf []byte) (int, time.Time, error)
}

// Sink receives normalized records in arrival order. Flush is called
// according to the session's flush policy.
type Sink interface {
	Write(r record.Record) error
	Flush() error
}

// Options configures one discovery session.
type Options struct {
	// CycleLength is the inquiry length in 1.28s units, 1 to 100.
	CycleLength int

	// FlushEvery flushes the sink after every record instead of only at
	// cycle boundaries.
	FlushEvery bool
}

// Session owns one continuous-discovery run end to end: it configures the
// channel, starts periodic inquiry, frames and dispatches events, and stops
// the inquiry on the way out. A Session is not reusable.
type Session struct {
	ch   Channel
	sink Sink
	opts Options
	log  *zap.Logger

	stopRequested atomic.Bool
}

// New validates the options and builds a session.
func New(ch Channel, sink Sink, opts Options) (*Session, error) {
	if opts.CycleLength < MinCycleLength || opts.CycleLength > MaxCycleLength {
		return nil, fmt.Errorf("cycle length %d out of range %d-%d",
			opts.CycleLength, MinCycleLength, MaxCycleLength)
	}
	return &Session{ch: ch, sink: sink, opts: opts, log: logging.GetLogger()}, nil
}

// RequestStop asks the run loop to exit at the next safe point. Safe to
// call from a signal-handling goroutine; it only sets a flag.
func (s *Session) RequestStop() {
	s.stopRequested.Store(true)
}

// Stopping reports whether a stop has been requested.
func (s *Session) Stopping() bool {
	return s.stopRequested.Load()
}

// periods derives the shortest inter-cycle delay window the controller
// accepts: it requires maxPeriod > minPeriod > length.
func periods(length int) (minPeriod, maxPeriod uint16) {
	minPeriod = uint16(length) + 1
	maxPeriod = minPeriod + 1
	return minPeriod, maxPeriod
}

// configure arms the channel: receive timestamps on every frame, and a
// filter admitting only the three events this scanner understands.
func (s *Session) configure() error {
	if err := s.ch.EnableTimestamps(); err != nil {
		return err
	}
	return s.ch.FilterEvents(
		protocol.EvtInquiryComplete,
		protocol.EvtInquiryResult,
		protocol.EvtInquiryResultWithRSSI,
	)
}

// begin puts the controller into periodic inquiry mode. The controller
// itself performs the randomized wait between cycles within the window.
func (s *Session) begin() error {
	minPeriod, maxPeriod := periods(s.opts.CycleLength)
	params := protocol.PeriodicInquiryParams(minPeriod, maxPeriod, uint8(s.opts.CycleLength))
	if err := s.ch.Command(hci.OGFLinkCtl, hci.OCFPeriodicInquiry, params); err != nil {
		return fmt.Errorf("start periodic inquiry: %w", err)
	}
	return nil
}

// end leaves periodic inquiry mode. Best-effort: shutdown is already under
// way, so a failure is logged and never escalated.
func (s *Session) end() {
	if err := s.ch.Command(hci.OGFLinkCtl, hci.OCFExitPeriodicInquiry, nil); err != nil {
		s.log.Error("failed to exit periodic inquiry", zap.Error(err))
	}
}

// Run executes the session: configure, start, read until stopped or a
// fatal error, then stop. The returned error is nil only when the loop
// exited because of a stop request with no processing failure.
func (s *Session) Run() error {
	if err := s.configure(); err != nil {
		return err
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	// Synthetic first record marking the scan start. Later timestamps
	// come from the channel; this one is wall clock.
	first := record.CycleComplete{Time: record.NewTimestamp(time.Now())}
	if err := s.sink.Write(first); err != nil {
		return err
	}

	return s.loop()
}
