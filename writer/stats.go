package writer

import "sync/atomic"

// counters holds the advisory write-side statistics a Writer exposes.
// Every backend shares one counters value so Stop and the worker goroutine
// never disagree about totals.
type counters struct {
	totalWritten uint64
	writeErrors  uint64
}

func (c *counters) addWritten(n uint64) { atomic.AddUint64(&c.totalWritten, n) }
func (c *counters) addError()           { atomic.AddUint64(&c.writeErrors, 1) }
func (c *counters) written() uint64     { return atomic.LoadUint64(&c.totalWritten) }
func (c *counters) errors() uint64      { return atomic.LoadUint64(&c.writeErrors) }

// TotalWritten is the number of logical bytes committed to the sink so far.
// Advisory: it lags Publish by every record still queued in the ring and,
// for ModeDirect and ModeBuffered, by every record held in the bounce
// buffer until its next flush.
func (w *Writer) TotalWritten() uint64 { return w.counters.written() }

// WriteErrors counts SinkWriteFailure occurrences since construction. Each
// one is also logged; none of them stop the worker.
func (w *Writer) WriteErrors() uint64 { return w.counters.errors() }

// RingLen is an advisory snapshot of the backing ring's occupancy.
func (w *Writer) RingLen() int { return w.ring.Len() }
