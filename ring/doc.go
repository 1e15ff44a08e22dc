// Package ring implements the bounded lock-free multi-producer/multi-
// consumer queue that decouples decoders from the writer goroutine.
//
// The algorithm is the standard sequence-number bounded MPMC ring: a power-
// of-two slot array, a head counter claimed by producers and a tail counter
// claimed by consumers, and a per-slot sequence word that hands a slot off
// between a producer's write and a consumer's read without a mutex. See
// ring.go for the claim/publish/consume protocol and its memory-ordering
// rationale.
package ring
