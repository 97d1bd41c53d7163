package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Reader decodes a tagged binary log sequentially. There is no length
// prefix: the tag byte alone determines how much to read next, so the
// reader cannot resynchronize after a bad tag or a short record.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps an input stream, typically the log file or stdin.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next record. It returns io.EOF at a clean end of stream,
// ErrTruncated when the stream ends mid-record, and ErrUnknownTag for a tag
// byte the codec does not know.
func (r *Reader) Next() (Record, error) {
	tag, err := r.r.ReadByte()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read tag: %w", err)
	}

	size, err := PayloadSize(tag)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r.r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: stream ended inside tag 0x%02x", ErrTruncated, tag)
		}
		return nil, fmt.Errorf("read record payload: %w", err)
	}

	return Decode(tag, payload)
}
