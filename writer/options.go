package writer

// Mode selects the I/O discipline a Writer uses to persist records.
type Mode int

const (
	// ModeMMAP maps the sink file into memory and copies each serialized
	// record directly into the mapping, doubling the mapping when it would
	// overflow.
	ModeMMAP Mode = iota
	// ModeDirect opens the sink file with O_DIRECT and accumulates records
	// in a page-aligned bounce buffer, flushing in alignment-sized chunks.
	ModeDirect
	// ModeBuffered opens the sink file with ordinary buffered I/O and
	// accumulates records in an unaligned bounce buffer.
	ModeBuffered
)

func (m Mode) String() string {
	switch m {
	case ModeMMAP:
		return "mmap"
	case ModeDirect:
		return "direct"
	case ModeBuffered:
		return "buffered"
	default:
		return "unknown"
	}
}

// Options configures a Writer at construction time. There is no runtime
// reconfiguration, matching the construction-time-only shape of the
// teacher cache's CacheOptions (see DESIGN.md).
type Options struct {
	// Mode selects the I/O discipline. Zero value is ModeMMAP.
	Mode Mode
	// RingCapacity is the backing ring's slot count; must be a power of
	// two. Zero selects DefaultRingCapacity.
	RingCapacity int
	// InitialMmapSize is the file size ModeMMAP pre-extends to before the
	// first write. Zero selects DefaultInitialMmapSize.
	InitialMmapSize int64
	// BounceBufferSize is the accumulation buffer size for ModeDirect and
	// ModeBuffered. Zero selects DefaultBounceBufferSize.
	BounceBufferSize int
	// Alignment is the page size ModeDirect aligns its bounce buffer and
	// flush lengths to. Zero selects DefaultAlignment.
	Alignment int
}

const (
	DefaultRingCapacity     = 1 << 16
	DefaultInitialMmapSize  = 1 << 30 // 1 GiB
	DefaultBounceBufferSize = 4 << 20 // 4 MiB
	DefaultAlignment        = 4096
)

// DefaultOptions returns the options a Writer uses when the caller only
// cares about picking a Mode.
func DefaultOptions(mode Mode) Options {
	return Options{
		Mode:             mode,
		RingCapacity:     DefaultRingCapacity,
		InitialMmapSize:  DefaultInitialMmapSize,
		BounceBufferSize: DefaultBounceBufferSize,
		Alignment:        DefaultAlignment,
	}
}

func (o Options) withDefaults() Options {
	if o.RingCapacity <= 0 {
		o.RingCapacity = DefaultRingCapacity
	}
	if o.InitialMmapSize <= 0 {
		o.InitialMmapSize = DefaultInitialMmapSize
	}
	if o.BounceBufferSize <= 0 {
		o.BounceBufferSize = DefaultBounceBufferSize
	}
	if o.Alignment <= 0 {
		o.Alignment = DefaultAlignment
	}
	return o
}
