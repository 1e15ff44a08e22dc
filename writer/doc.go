// Package writer implements the single background writer that drains a
// ring of decoded records and appends their host-endian serialized form to
// a sink file, under one of three I/O disciplines.
//
// Files are organised by concern, echoing this repository's teacher's
// habit of one file per responsibility around a small central type:
//
//	options.go  – Mode and construction-time Options
//	stats.go    – atomic counters shared by every backend
//	mmap.go     – ModeMMAP backend (github.com/edsrzf/mmap-go)
//	direct.go   – ModeDirect backend (golang.org/x/sys/unix, O_DIRECT)
//	buffered.go – ModeBuffered backend
//	writer.go   – Writer: state machine, ring ownership, worker goroutine
//
// Host-endian serialization of decoder.Record to and from the sink's on-disk
// format lives in decoder/serialize.go rather than here, since the decoder
// package already owns the Record types it serializes.
package writer
