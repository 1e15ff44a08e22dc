// Package pipeline glues decoder, ring, and writer into the lifecycle
// controller a caller actually holds: one Pipeline owns one Writer (which
// in turn owns the ring), and exposes Start/Stop/Publish/DecodeAndPublish
// over that single object instead of three.
package pipeline
