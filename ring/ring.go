package ring

import "sync/atomic"

// slot holds one payload and the sequence counter that coordinates its
// publication and consumption. Only head and tail are padded apart; a
// slot's sequence word sits directly beside its payload with no padding, so
// a sequence word shares cache lines with payload storage and with
// neighbouring slots.
type slot[T any] struct {
	seq uint64
	val T
}

// Ring is a bounded lock-free multi-producer/multi-consumer queue. Capacity
// is fixed at construction and must be a power of two. TryPush and TryPop
// are non-blocking, allocate nothing, and never panic once constructed.
//
// The padding around head and tail keeps a hot producer's CAS loop from
// sharing a cache line with a hot consumer's CAS loop — the same concern
// the teacher's sharded-lock cache sidesteps with per-shard mutexes, and
// that this pack's ring.go and seqlock-style buffers (evm_triarb, aleph-tx)
// solve with explicit byte padding instead.
type Ring[T any] struct {
	head uint64
	_    [56]byte
	tail uint64
	_    [56]byte
	mask uint64
	buf  []slot[T]
}

// New constructs a Ring with the given capacity, which must be a power of
// two. It panics otherwise — this is a construction-time contract
// violation, not a runtime condition callers need to recover from.
func New[T any](capacity int) *Ring[T] {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		panic("ring: capacity must be a power of two")
	}
	r := &Ring[T]{
		mask: uint64(capacity - 1),
		buf:  make([]slot[T], capacity),
	}
	for i := range r.buf {
		r.buf[i].seq = uint64(i)
	}
	return r
}

// TryPush attempts to enqueue v. It returns false if the ring is full.
//
// Go's sync/atomic has no relaxed/acquire/release distinction the way the
// source's C++ does — every operation here is sequentially consistent,
// which is strictly stronger than spec.md §4.2 requires but costs nothing
// extra to reason about.
func (r *Ring[T]) TryPush(v T) bool {
	pos := atomic.LoadUint64(&r.head)
	for {
		idx := pos & r.mask
		seq := atomic.LoadUint64(&r.buf[idx].seq)
		diff := int64(seq) - int64(pos)

		switch {
		case diff == 0:
			if atomic.CompareAndSwapUint64(&r.head, pos, pos+1) {
				r.buf[idx].val = v
				atomic.StoreUint64(&r.buf[idx].seq, pos+1)
				return true
			}
			pos = atomic.LoadUint64(&r.head)
		case diff < 0:
			return false
		default:
			pos = atomic.LoadUint64(&r.head)
		}
	}
}

// TryPop attempts to dequeue the oldest published value. It returns
// (zero, false) if the ring is empty.
func (r *Ring[T]) TryPop() (T, bool) {
	pos := atomic.LoadUint64(&r.tail)
	for {
		idx := pos & r.mask
		seq := atomic.LoadUint64(&r.buf[idx].seq)
		diff := int64(seq) - int64(pos+1)

		switch {
		case diff == 0:
			if atomic.CompareAndSwapUint64(&r.tail, pos, pos+1) {
				v := r.buf[idx].val
				atomic.StoreUint64(&r.buf[idx].seq, pos+uint64(len(r.buf)))
				return v, true
			}
			pos = atomic.LoadUint64(&r.tail)
		case diff < 0:
			var zero T
			return zero, false
		default:
			pos = atomic.LoadUint64(&r.tail)
		}
	}
}

// Len is advisory: under concurrent access it may momentarily exceed Cap or
// underflow by one. Callers must not rely on an exact count.
func (r *Ring[T]) Len() int {
	head := atomic.LoadUint64(&r.head)
	tail := atomic.LoadUint64(&r.tail)
	return int(head - tail)
}

// Cap returns the ring's fixed capacity.
func (r *Ring[T]) Cap() int { return len(r.buf) }

// Empty reports whether Len is currently zero.
func (r *Ring[T]) Empty() bool { return r.Len() == 0 }
