// Package itchpipe decodes NASDAQ ITCH 5.0 market-data messages and
// persists them asynchronously through a bounded lock-free ring and a
// single background writer.
//
// The three hard subsystems live in their own packages and are usable on
// their own:
//
//	decoder  – Decode([]byte) (Record, bool), the zero-copy wire parser
//	ring     – Ring[T], the bounded lock-free MPMC queue decoupling
//	           decode from persistence
//	writer   – Writer, the background persister with three I/O
//	           disciplines (mmap, O_DIRECT, buffered)
//	pipeline – Pipeline, the lifecycle controller wiring the three
//	           together behind Start/Stop/Publish/DecodeAndPublish
//
// This file and itchpipe.go re-export the handful of names most callers
// reach for so they don't need to import all four subpackages directly.
package itchpipe
