package writer

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"

	"github.com/feedwire/itchpipe/decoder"
)

// mmapSink persists records by copying their serialized form straight into
// a memory-mapped region of the sink file, doubling the mapping whenever a
// record would overflow it. The region is a single append-only growing
// mapping, and it goes through github.com/edsrzf/mmap-go for the
// map/unmap/flush lifecycle instead of calling unix.Mmap directly.
type mmapSink struct {
	c       *counters
	initial int64

	f        *os.File
	mm       mmap.MMap
	fileSize int64
	cursor   int64
}

func newMmapSink(c *counters, initialSize int64) *mmapSink {
	return &mmapSink{c: c, initial: initialSize}
}

func (s *mmapSink) open(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("mmap sink: open %s: %w", path, err)
	}
	if err := f.Truncate(s.initial); err != nil {
		f.Close()
		return fmt.Errorf("mmap sink: truncate %s: %w", path, err)
	}
	mm, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		return fmt.Errorf("mmap sink: map %s: %w", path, err)
	}
	// Best-effort; madvise failures do not affect correctness.
	_ = unix.Madvise(mm, unix.MADV_SEQUENTIAL)

	s.f = f
	s.mm = mm
	s.fileSize = s.initial
	s.cursor = 0
	return nil
}

func (s *mmapSink) writeRecord(rec decoder.Record) error {
	size, ok := decoder.Size(rec.MessageTag())
	if !ok {
		return nil
	}
	if s.cursor+int64(size) > s.fileSize {
		if err := s.grow(); err != nil {
			return err
		}
	}
	decoder.Serialize(s.mm[s.cursor:s.cursor+int64(size)], rec)
	s.cursor += int64(size)
	s.c.addWritten(uint64(size))
	return nil
}

// grow doubles the mapping: sync, unmap, extend the backing file, remap,
// re-advise. This keeps the invariant that s.mm is always at least
// s.fileSize bytes and s.cursor never exceeds it.
func (s *mmapSink) grow() error {
	if err := s.mm.Flush(); err != nil {
		return fmt.Errorf("mmap sink: flush before grow: %w", err)
	}
	if err := s.mm.Unmap(); err != nil {
		return fmt.Errorf("mmap sink: unmap before grow: %w", err)
	}
	newSize := s.fileSize * 2
	if err := s.f.Truncate(newSize); err != nil {
		return fmt.Errorf("mmap sink: extend to %d: %w", newSize, err)
	}
	mm, err := mmap.Map(s.f, mmap.RDWR, 0)
	if err != nil {
		return fmt.Errorf("mmap sink: remap after grow: %w", err)
	}
	_ = unix.Madvise(mm, unix.MADV_SEQUENTIAL)
	s.mm = mm
	s.fileSize = newSize
	return nil
}

// flush opportunistically syncs the mapping. Stop's final flush and close
// are what actually guarantee durability; this is best-effort in between.
func (s *mmapSink) flush() error {
	if s.mm == nil {
		return nil
	}
	return s.mm.Flush()
}

func (s *mmapSink) close() error {
	if err := s.mm.Flush(); err != nil {
		return fmt.Errorf("mmap sink: final flush: %w", err)
	}
	if err := s.mm.Unmap(); err != nil {
		return fmt.Errorf("mmap sink: final unmap: %w", err)
	}
	if err := s.f.Truncate(s.cursor); err != nil {
		return fmt.Errorf("mmap sink: truncate to %d: %w", s.cursor, err)
	}
	return s.f.Close()
}
