package itchpipe

import (
	"github.com/feedwire/itchpipe/decoder"
	"github.com/feedwire/itchpipe/pipeline"
	"github.com/feedwire/itchpipe/writer"
)

// Record is decoder.Record: the host-endian decoded form of one ITCH
// message.
type Record = decoder.Record

// Decode is decoder.Decode.
func Decode(buf []byte) (Record, bool) { return decoder.Decode(buf) }

// Mode selects a Pipeline's I/O discipline.
type Mode = writer.Mode

const (
	ModeMMAP     = writer.ModeMMAP
	ModeDirect   = writer.ModeDirect
	ModeBuffered = writer.ModeBuffered
)

// Options is writer.Options.
type Options = writer.Options

// DefaultOptions is writer.DefaultOptions.
func DefaultOptions(mode Mode) Options { return writer.DefaultOptions(mode) }

// Pipeline is pipeline.Pipeline.
type Pipeline = pipeline.Pipeline

// New constructs a Pipeline that will persist to path under opts once
// Start is called.
func New(path string, opts Options) *Pipeline { return pipeline.New(path, opts) }
