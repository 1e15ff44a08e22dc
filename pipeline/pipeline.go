package pipeline

import (
	"github.com/feedwire/itchpipe/decoder"
	"github.com/feedwire/itchpipe/writer"
)

// Pipeline is the lifecycle controller spec.md's dataflow diagram draws as
// wire buffer -> decoder -> ring -> writer -> sink file. It owns exactly one
// writer.Writer (which owns the ring) and adds nothing of its own beyond a
// convenience entry point that decodes and publishes in one call.
type Pipeline struct {
	w *writer.Writer
}

// New constructs a Pipeline that will persist to path under opts once
// Start is called.
func New(path string, opts writer.Options) *Pipeline {
	return &Pipeline{w: writer.New(path, opts)}
}

// Start opens the sink and spawns the writer's worker goroutine.
func (p *Pipeline) Start() error { return p.w.Start() }

// Stop drains the ring, flushes, and releases the sink. Idempotent.
func (p *Pipeline) Stop() error { return p.w.Stop() }

// Publish enqueues an already-decoded record. False means either the
// pipeline isn't Running or the ring is momentarily full; the caller's
// remedy in both cases is the same: back off and try again, or drop.
func (p *Pipeline) Publish(rec decoder.Record) bool { return p.w.Publish(rec) }

// DecodeAndPublish decodes buf and publishes the result in one call. It
// returns false if the buffer didn't decode (MalformedWire) or if Publish
// would have returned false for the decoded record.
func (p *Pipeline) DecodeAndPublish(buf []byte) bool {
	rec, ok := decoder.Decode(buf)
	if !ok {
		return false
	}
	return p.w.Publish(rec)
}

// Stats is an advisory snapshot of the pipeline's write-side counters.
type Stats struct {
	TotalWritten uint64
	WriteErrors  uint64
	RingLen      int
}

// Stats returns a snapshot of the underlying writer's counters.
func (p *Pipeline) Stats() Stats {
	return Stats{
		TotalWritten: p.w.TotalWritten(),
		WriteErrors:  p.w.WriteErrors(),
		RingLen:      p.w.RingLen(),
	}
}
