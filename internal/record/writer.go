package record

import (
	"bufio"
	"fmt"
	"io"
)

// Writer appends tagged records to an output sink. Entries are buffered;
// Flush pushes them to the underlying writer. The append-only log is
// single-writer: a Writer must not be shared between goroutines.
type Writer struct {
	buf *bufio.Writer
}

// NewWriter wraps an output sink, typically a log file opened for append.
func NewWriter(w io.Writer) *Writer {
	return &Writer{buf: bufio.NewWriter(w)}
}

// Write appends one encoded record.
func (w *Writer) Write(r Record) error {
	if _, err := w.buf.Write(Encode(r)); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// Flush forces buffered records out to the sink.
func (w *Writer) Flush() error {
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("flush records: %w", err)
	}
	return nil
}
