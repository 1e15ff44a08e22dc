package decoder

import "encoding/binary"

// The wire is big-endian and the decoder's output is host-endian. Go slices
// carry no alignment requirement, so there is no "unaligned load" concern
// here the way there is in the C original — encoding/binary already reads
// byte-by-byte regardless of slice alignment. These wrappers exist so
// decode.go reads as a field-by-field transcription of spec.md's wire
// tables rather than a pile of binary.BigEndian calls.
func readU16(b []byte) uint16 { return binary.BigEndian.Uint16(b) }
func readU32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }
func readU64(b []byte) uint64 { return binary.BigEndian.Uint64(b) }
