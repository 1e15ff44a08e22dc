package writer

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/feedwire/itchpipe/decoder"
)

// directSink persists records through O_DIRECT, accumulating serialized
// records in a page-aligned bounce buffer and flushing in alignment-sized
// chunks. The kernel refuses misaligned O_DIRECT writes outright, so the
// buffer's backing array and every flush length must be a multiple of
// alignment.
type directSink struct {
	c         *counters
	alignment int
	raw       []byte // unused; buf alone keeps its backing allocation alive
	buf       []byte // alignment-aligned slice of an oversized allocation, len == buffer size
	cursor    int

	f *os.File
}

func newDirectSink(c *counters, bufferSize, alignment int) *directSink {
	return &directSink{c: c, alignment: alignment, buf: alignedBuffer(bufferSize, alignment)}
}

// alignedBuffer allocates size bytes starting at a multiple of alignment by
// over-allocating and slicing. Go's allocator gives no alignment guarantee
// beyond pointer size, so this is the idiomatic workaround the platform
// offers in place of posix_memalign.
func alignedBuffer(size, alignment int) []byte {
	raw := make([]byte, size+alignment)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	pad := 0
	if rem := addr % uintptr(alignment); rem != 0 {
		pad = alignment - int(rem)
	}
	return raw[pad : pad+size]
}

func (s *directSink) open(path string) error {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_CREAT|unix.O_TRUNC|unix.O_DIRECT, 0o644)
	if err != nil {
		return fmt.Errorf("direct sink: open %s: %w", path, err)
	}
	s.f = os.NewFile(uintptr(fd), path)
	s.cursor = 0
	return nil
}

func (s *directSink) writeRecord(rec decoder.Record) error {
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

// flush writes the accumulated records in one write whose length is the
// cursor rounded up to a multiple of alignment, zeroing the pad between the real data and the rounded-up length so the
// pad bytes never carry stale data from a previous flush. totalWritten
// only ever advances by the unrounded cursor, not the padded write length.
func (s *directSink) flush() error {
	if s.cursor == 0 {
		return nil
	}
	padded := roundUp(s.cursor, s.alignment)
	for i := s.cursor; i < padded; i++ {
		s.buf[i] = 0
	}
	n, err := s.f.Write(s.buf[:padded])
	if err != nil {
		s.c.addError()
		s.cursor = 0
		return fmt.Errorf("direct sink: write: %w", err)
	}
	if n != padded {
		s.c.addError()
		s.cursor = 0
		return fmt.Errorf("direct sink: short write: wrote %d of %d bytes", n, padded)
	}
	s.c.addWritten(uint64(s.cursor))
	s.cursor = 0
	return unix.Fdatasync(int(s.f.Fd()))
}

func (s *directSink) close() error {
	return s.f.Close()
}

func roundUp(n, multiple int) int {
	if n%multiple == 0 {
		return n
	}
	return n + (multiple - n%multiple)
}
