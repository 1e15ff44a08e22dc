package pipeline

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/feedwire/itchpipe/decoder"
	"github.com/feedwire/itchpipe/writer"
)

// wireAddOrder builds a valid 36-byte big-endian AddOrder message, the
// exact shape decoder.Decode expects.
func wireAddOrder(orderRef uint64, shares uint32, symbol string, price uint32) []byte {
	buf := make([]byte, 36)
	buf[0] = 'A'
	binary.BigEndian.PutUint64(buf[11:19], orderRef)
	buf[19] = 'B'
	binary.BigEndian.PutUint32(buf[20:24], shares)
	copy(buf[24:32], []byte(symbol+"        ")[:8])
	binary.BigEndian.PutUint32(buf[32:36], price)
	return buf
}

// TestDecodeAndPublishEndToEnd is scenario 7 run through the public facade
// instead of decoder/writer directly: publish malformed and valid wire
// buffers, stop, and check that the byte counts and the sink's size account
// for exactly the valid ones.
func TestDecodeAndPublishEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sink.bin")
	p := New(path, writer.DefaultOptions(writer.ModeBuffered))
	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if p.DecodeAndPublish([]byte{1, 2, 3}) {
		t.Fatal("expected DecodeAndPublish to fail on a too-short buffer")
	}

	const n = 500
	for i := 0; i < n; i++ {
		buf := wireAddOrder(uint64(i), uint32(i), "IBM", uint32(100000+i))
		for !p.DecodeAndPublish(buf) {
		}
	}

	if err := p.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	stats := p.Stats()
	if stats.WriteErrors != 0 {
		t.Fatalf("WriteErrors = %d, want 0", stats.WriteErrors)
	}
	if stats.TotalWritten != uint64(n*36) {
		t.Fatalf("TotalWritten = %d, want %d", stats.TotalWritten, n*36)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != int64(n*36) {
		t.Fatalf("file size = %d, want %d", info.Size(), n*36)
	}
}

// TestPublishBeforeStart covers Misuse: an un-started Pipeline refuses
// both Publish and DecodeAndPublish.
func TestPublishBeforeStart(t *testing.T) {
	p := New(filepath.Join(t.TempDir(), "sink.bin"), writer.DefaultOptions(writer.ModeBuffered))
	if p.DecodeAndPublish(wireAddOrder(1, 1, "AAPL", 1)) {
		t.Fatal("expected DecodeAndPublish to fail before Start")
	}
	rec, ok := decoder.Decode(wireAddOrder(1, 1, "AAPL", 1))
	if !ok {
		t.Fatal("expected the AddOrder fixture to decode")
	}
	if p.Publish(rec) {
		t.Fatal("expected Publish to fail before Start")
	}
}

// TestStopBeforeStart: stopping a Pipeline that was never started is a
// no-op that returns nil.
func TestStopBeforeStart(t *testing.T) {
	p := New(filepath.Join(t.TempDir(), "sink.bin"), writer.DefaultOptions(writer.ModeBuffered))
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop before Start: %v", err)
	}
}
