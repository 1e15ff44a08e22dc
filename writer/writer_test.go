package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/feedwire/itchpipe/decoder"
)

func addOrder(stockLocate uint16, orderRef uint64, shares uint32, symbol string, price uint32) decoder.AddOrder {
	var stock [8]byte
	copy(stock[:], symbol)
	for i := len(symbol); i < 8; i++ {
		stock[i] = ' '
	}
	return decoder.AddOrder{
		Header: decoder.Header{
			Type:        decoder.TagAddOrder,
			StockLocate: stockLocate,
		},
		OrderRef: orderRef,
		Side:     'B',
		Shares:   shares,
		Stock:    stock,
		Price:    price,
	}
}

// TestPublishBeforeStartFails is part of the Misuse/Idle contract: Publish
// on a Writer that was never started returns false rather than blocking or
// panicking.
func TestPublishBeforeStartFails(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "sink.bin"), DefaultOptions(ModeBuffered))
	if w.Publish(addOrder(1, 1, 1, "AAPL", 1)) {
		t.Fatal("expected Publish to fail before Start")
	}
}

// TestStopIsIdempotent covers both directions: stopping an Idle writer and
// stopping an already-Closed one are both no-ops.
func TestStopIsIdempotent(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "sink.bin"), DefaultOptions(ModeBuffered))
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop on Idle: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("first Stop: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("second Stop on Closed: %v", err)
	}
}

// TestBufferedRoundTrip is P8 and scenario 7: publish N AddOrder
// records, stop, reopen the file, and expect N*36 bytes that parse back to
// N records matching what was published.
func TestBufferedRoundTrip(t *testing.T) {
	const n = 1000
	path := filepath.Join(t.TempDir(), "sink.bin")

	w := New(path, DefaultOptions(ModeBuffered))
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for i := 0; i < n; i++ {
		rec := addOrder(uint16(i%65536), uint64(i), uint32(i), "AAPL", uint32(15000+i))
		for !w.Publish(rec) {
			// ring momentarily full; retry until the worker drains it.
		}
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	if got := w.WriteErrors(); got != 0 {
		t.Fatalf("WriteErrors() = %d, want 0", got)
	}
	if got := w.TotalWritten(); got != uint64(n*36) {
		t.Fatalf("TotalWritten() = %d, want %d", got, n*36)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != n*36 {
		t.Fatalf("file size = %d, want %d", len(data), n*36)
	}

	off := 0
	for i := 0; i < n; i++ {
		rec, size, ok := decoder.ParseRecord(data[off:])
		if !ok {
			t.Fatalf("record %d: ParseRecord failed", i)
		}
		ao, isAdd := rec.(decoder.AddOrder)
		if !isAdd {
			t.Fatalf("record %d: got %T, want AddOrder", i, rec)
		}
		if ao.OrderRef != uint64(i) || ao.Shares != uint32(i) || ao.Price != uint32(15000+i) {
			t.Fatalf("record %d: field mismatch: %+v", i, ao)
		}
		if ao.Symbol() != "AAPL" {
			t.Fatalf("record %d: symbol = %q, want AAPL", i, ao.Symbol())
		}
		off += size
	}
	if off != len(data) {
		t.Fatalf("parsed %d bytes, file has %d", off, len(data))
	}
}

// TestMmapRoundTrip exercises ModeMMAP's grow path by forcing an initial
// mapping far smaller than the data published, so writeRecord's grow()
// runs at least once.
func TestMmapRoundTrip(t *testing.T) {
	const n = 200
	path := filepath.Join(t.TempDir(), "sink.bin")

	opts := DefaultOptions(ModeMMAP)
	opts.InitialMmapSize = 64 // force several doublings for 200*36 bytes
	w := New(path, opts)
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for i := 0; i < n; i++ {
		rec := addOrder(1, uint64(i), 10, "MSFT", 99990000)
		for !w.Publish(rec) {
		}
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != n*36 {
		t.Fatalf("file size = %d, want %d (no trailing zero padding should survive the final truncate)", len(data), n*36)
	}

	rec, _, ok := decoder.ParseRecord(data)
	if !ok {
		t.Fatal("ParseRecord on first record failed")
	}
	if ao := rec.(decoder.AddOrder); ao.OrderRef != 0 {
		t.Fatalf("first record OrderRef = %d, want 0", ao.OrderRef)
	}
}

// TestDirectAlignedFlush checks that under ModeDirect, whose flushes are
// rounded up to the alignment, TotalWritten counts only the unrounded
// logical size. The padded on-disk length is not checked.
func TestDirectAlignedFlush(t *testing.T) {
	const n = 50
	path := filepath.Join(t.TempDir(), "sink.bin")

	opts := DefaultOptions(ModeDirect)
	opts.BounceBufferSize = 8192
	opts.Alignment = 512
	w := New(path, opts)
	if err := w.Start(); err != nil {
		t.Skipf("O_DIRECT unavailable in this environment: %v", err)
	}

	for i := 0; i < n; i++ {
		rec := addOrder(1, uint64(i), 10, "GOOG", 123400)
		for !w.Publish(rec) {
		}
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	want := uint64(n * 36)
	if got := w.TotalWritten(); got != want {
		t.Fatalf("TotalWritten() = %d, want %d", got, want)
	}
}
