package scanner

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bluetrax/bluetrax/internal/hci"
	"github.com/bluetrax/bluetrax/internal/protocol"
	"github.com/bluetrax/bluetrax/internal/record"
)

// stallTimeout bounds how long the channel may stay silent. Periodic
// inquiry emits a cycle-complete every few seconds, so five quiet minutes
// mean the controller has stopped producing events.
const stallTimeout = 5 * time.Minute

// pollSlice is the wait granularity. The stop flag is checked once per
// slice, so a shutdown request is observed within a second even while the
// channel is idle.
const pollSlice = time.Second

// ErrStalled is returned when the channel produces nothing for the whole
// stall budget without a stop request.
var ErrStalled = errors.New("no events from controller within stall timeout")

func (s *Session) loop() error {
	buf := make([]byte, hci.MaxFrameSize)
	var idle time.Duration

	for !s.stopRequested.Load() {
		ready, err := s.ch.Wait(pollSlice)
		if err != nil {
			return fmt.Errorf("wait for channel: %w", err)
		}
		if !ready {
			idle += pollSlice
			if idle >= stallTimeout {
				return ErrStalled
			}
			continue
		}
		idle = 0

		n, ts, err := s.ch.Read(buf)
		if err != nil {
			return fmt.Errorf("read channel: %w", err)
		}
		if n == 0 {
			// interrupted read; go around
			continue
		}

		ev, err := protocol.ParseEvent(buf[:n])
		switch {
		case errors.Is(err, protocol.ErrShortRead):
			continue
		case errors.Is(err, protocol.ErrNotEvent):
			s.log.Warn("dropping unexpected packet", zap.Error(err))
			continue
		case errors.Is(err, protocol.ErrPartial):
			// expected on constrained hosts; the next read completes it
			s.log.Debug("partial event frame", zap.Error(err))
			continue
		case err != nil:
			return err
		}

		if ts.IsZero() {
			// the channel timestamp facility produced nothing; fall
			// back to wall clock rather than logging a zero time
			ts = time.Now()
		}

		if err := s.dispatch(ev, record.NewTimestamp(ts)); err != nil {
			return err
		}
	}

	return nil
}

// dispatch classifies one complete event and hands the resulting records to
// the sink. A cycle boundary always flushes; otherwise the flush-every
// option decides. Malformed payloads abort the run: the packed log format
// has no safe resynchronization point, so nothing is emitted from a message
// that fails validation.
func (s *Session) dispatch(ev protocol.Event, ts record.Timestamp) error {
	flush := s.opts.FlushEvery

	switch ev.Code {
	case protocol.EvtInquiryResult:
		items, err := protocol.ParseInquiryResult(ev.Params)
		if err != nil {
			return err
		}
		for _, item := range items {
			rec := record.Discovery{Time: ts, Addr: item.Addr, Class: item.Class}
			if err := s.sink.Write(rec); err != nil {
				return err
			}
		}

	case protocol.EvtInquiryResultWithRSSI:
		items, err := protocol.ParseInquiryResultRSSI(ev.Params)
		if err != nil {
			return err
		}
		for _, item := range items {
			rec := record.DiscoveryWithSignal{Time: ts, Addr: item.Addr, Class: item.Class, RSSI: item.RSSI}
			if err := s.sink.Write(rec); err != nil {
				return err
			}
		}

	case protocol.EvtInquiryComplete:
		if err := protocol.ParseInquiryComplete(ev.Params); err != nil {
			return err
		}
		flush = true // end-of-cycle durability, regardless of mode
		if err := s.sink.Write(record.CycleComplete{Time: ts}); err != nil {
			return err
		}

	default:
		// admitted by the filter but not handled; skip, never forward
		s.log.Warn("unhandled event code", zap.Uint8("event", ev.Code))
		return nil
	}

	if flush {
		return s.sink.Flush()
	}
	return nil
}
