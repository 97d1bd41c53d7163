package scanner

import "github.com/bluetrax/bluetrax/internal/record"

// Multi fans records out to several sinks. With one sink it is returned
// as-is. Writes stop at the first sink error; the binary log writer comes
// first so a durable-write failure is never masked by a viewer sink.
func Multi(sinks ...Sink) Sink {
	if len(sinks) == 1 {
		return sinks[0]
	}
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) Write(r record.Record) error {
	for _, s := range m {
		if err := s.Write(r); err != nil {
			return err
		}
	}
	return nil
}

func (m multiSink) Flush() error {
	for _, s := range m {
		if err := s.Flush(); err != nil {
			return err
		}
	}
	return nil
}
