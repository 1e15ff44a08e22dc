// Package decoder turns a single NASDAQ ITCH 5.0 wire message into a
// host-endian decoded record.
//
// The parser is zero-copy and zero-allocation: it never retains the input
// slice, never allocates beyond the returned value, and never panics on bad
// input. Files are organised by concern:
//
//	tags.go   – recognized message tags and their fixed wire sizes
//	wire.go   – decoded record types, one per tag
//	swap.go   – unaligned big-endian field readers
//	symbol.go – stock symbol trimming
//	decode.go – Decode, the sole entry point for wire messages
//	serialize.go – Serialize/ParseRecord, the host-endian on-disk codec
package decoder
