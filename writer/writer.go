package writer

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/feedwire/itchpipe/decoder"
	"github.com/feedwire/itchpipe/ring"
)

const (
	stateIdle int32 = iota
	stateRunning
	stateStopping
	stateClosed
)

// sinkBackend is the per-Mode persistence strategy. Exactly one is
// constructed in Start, based on Options.Mode.
type sinkBackend interface {
	open(path string) error
	writeRecord(rec decoder.Record) error
	flush() error
	close() error
}

// Writer drains a bounded ring of decoded records on a single dedicated
// goroutine and appends their serialized form to a sink file. It is the Go
// realization of the asynchronous persistence pipeline in spec.md §4.3:
// Publish never blocks on I/O, and all durability work happens off the
// producer's path.
//
// The lifecycle is Idle -> Running -> Stopping -> Closed. Start and Stop are
// both idempotent; Closed is terminal.
type Writer struct {
	path string
	opts Options

	state int32
	ring  *ring.Ring[decoder.Record]

	counters counters
	backend  sinkBackend

	wg sync.WaitGroup
}

// New constructs a Writer for path under opts. The sink file is not opened
// and no goroutine is spawned until Start.
func New(path string, opts Options) *Writer {
	opts = opts.withDefaults()
	return &Writer{
		path: path,
		opts: opts,
		ring: ring.New[decoder.Record](opts.RingCapacity),
	}
}

// errClosed is returned by Start when called on a Writer that has already
// run through Stop once. Restarting a closed Writer is not supported; build
// a new one instead.
var errClosed = fmt.Errorf("writer: already closed")

// Start opens the sink under the configured Mode and spawns the worker
// goroutine. Calling Start on an already-Running Writer is a no-op. Calling
// it on a Closed Writer returns an error.
func (w *Writer) Start() error {
	switch atomic.LoadInt32(&w.state) {
	case stateRunning, stateStopping:
		return nil
	case stateClosed:
		return errClosed
	}

	backend, err := w.newBackend()
	if err != nil {
		return err
	}
	if err := backend.open(w.path); err != nil {
		return fmt.Errorf("writer: sink open failure: %w", err)
	}
	w.backend = backend

	atomic.StoreInt32(&w.state, stateRunning)
	w.wg.Add(1)
	go w.workerLoop()
	return nil
}

func (w *Writer) newBackend() (sinkBackend, error) {
	switch w.opts.Mode {
	case ModeMMAP:
		return newMmapSink(&w.counters, w.opts.InitialMmapSize), nil
	case ModeDirect:
		return newDirectSink(&w.counters, w.opts.BounceBufferSize, w.opts.Alignment), nil
	case ModeBuffered:
		return newBufferedSink(&w.counters, w.opts.BounceBufferSize), nil
	default:
		return nil, fmt.Errorf("writer: unrecognized mode %v", w.opts.Mode)
	}
}

// Publish enqueues rec for persistence. It returns false if the Writer is
// not Running (Misuse) or if the ring is momentarily full (RingFull);
// either way Publish never blocks and never allocates.
func (w *Writer) Publish(rec decoder.Record) bool {
	if atomic.LoadInt32(&w.state) != stateRunning {
		return false
	}
	return w.ring.TryPush(rec)
}

// Stop drains the ring, performs a final flush, and releases the sink.
// It is idempotent: calling it on an Idle or already-Closed Writer returns
// nil immediately.
func (w *Writer) Stop() error {
	switch atomic.LoadInt32(&w.state) {
	case stateIdle, stateClosed:
		return nil
	}

	atomic.StoreInt32(&w.state, stateStopping)
	w.wg.Wait()

	flushErr := w.backend.flush()
	closeErr := w.backend.close()

	atomic.StoreInt32(&w.state, stateClosed)

	if flushErr != nil {
		return fmt.Errorf("writer: final flush: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("writer: close: %w", closeErr)
	}
	return nil
}

// workerLoop is the single goroutine each Writer owns for its whole
// lifetime. It pops as fast as it can while Running, yielding to the
// scheduler and opportunistically flushing whenever the ring runs dry; once
// told to stop it drains whatever remains without yielding.
func (w *Writer) workerLoop() {
	defer w.wg.Done()

	for atomic.LoadInt32(&w.state) == stateRunning {
		if rec, ok := w.ring.TryPop(); ok {
			w.writeOne(rec)
			continue
		}
		if err := w.backend.flush(); err != nil {
			w.counters.addError()
			log.Printf("writer: opportunistic flush failed: %v", err)
		}
		runtime.Gosched()
	}

	for {
		rec, ok := w.ring.TryPop()
		if !ok {
			return
		}
		w.writeOne(rec)
	}
}

func (w *Writer) writeOne(rec decoder.Record) {
	if err := w.backend.writeRecord(rec); err != nil {
		w.counters.addError()
		log.Printf("writer: sink write failure: %v", err)
	}
}
