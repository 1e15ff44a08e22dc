package writer

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/feedwire/itchpipe/decoder"
)

// bufferedSink persists records through ordinary buffered writes: no
// O_DIRECT, no alignment requirement, a plain byte slice accumulates
// serialized records between flushes.
type bufferedSink struct {
	c      *counters
	buf    []byte
	cursor int

	f *os.File
}

func newBufferedSink(c *counters, bufferSize int) *bufferedSink {
	return &bufferedSink{c: c, buf: make([]byte, bufferSize)}
}

func (s *bufferedSink) open(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("buffered sink: open %s: %w", path, err)
	}
	s.f = f
	s.cursor = 0
	return nil
}

func (s *bufferedSink) writeRecord(rec decoder.Record) error {
	size, ok := decoder.Size(rec.MessageTag())
	if !ok {
		return nil
	}
	if s.cursor+size > len(s.buf) {
		if err := s.flush(); err != nil {
			return err
		}
	}
	decoder.Serialize(s.buf[s.cursor:s.cursor+size], rec)
	s.cursor += size
	return nil
}

func (s *bufferedSink) flush() error {
	if s.cursor == 0 {
		return nil
	}
	n, err := s.f.Write(s.buf[:s.cursor])
	if err != nil {
		s.c.addError()
		s.cursor = 0
		return fmt.Errorf("buffered sink: write: %w", err)
	}
	if n != s.cursor {
		s.c.addError()
		s.cursor = 0
		return fmt.Errorf("buffered sink: short write: wrote %d of %d bytes", n, s.cursor)
	}
	s.c.addWritten(uint64(n))
	s.cursor = 0
	return unix.Fdatasync(int(s.f.Fd()))
}

func (s *bufferedSink) close() error {
	return s.f.Close()
}
