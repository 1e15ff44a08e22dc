package decoder

// Record is the decoded, host-endian form of one ITCH message. There is one
// concrete type per recognized tag; Record is the discriminator common to
// all of them; a type switch on the concrete value recovers the full field
// set. This is the Go realization of the source's tag-discriminated union
// (design note in spec.md §9): a sum type with one variant per tag, no
// shared storage between variants.
type Record interface {
	// MessageTag returns the wire tag this record was decoded from.
	MessageTag() Tag
	// ParseTimestampNs is the decoder's local clock sample, taken
	// immediately after field extraction. It is not a wire field.
	ParseTimestampNs() uint64
}

// Header is the 11-byte common prefix of every ITCH message, host-endian
// after decode; the 48-bit wire timestamp is zero-extended into Timestamp. Timestamp is opaque to this package — it is the source
// feed's nanoseconds-since-midnight field, carried through unconverted.
type Header struct {
	Type           Tag
	StockLocate    uint16
	TrackingNumber uint16
	Timestamp      uint64
}

// AddOrder is message type 'A'.
type AddOrder struct {
	Header
	OrderRef       uint64
	Side           byte // 'B' or 'S', copied verbatim
	Shares         uint32
	Stock          [8]byte
	Price          uint32
	ParseTimestamp uint64
}

func (r AddOrder) MessageTag() Tag          { return r.Header.Type }
func (r AddOrder) ParseTimestampNs() uint64 { return r.ParseTimestamp }

// Symbol returns the trimmed stock symbol.
func (r AddOrder) Symbol() string { return TrimSymbol(r.Stock[:]) }

// PriceDecimal divides the fixed-point price by its four implied decimals.
func (r AddOrder) PriceDecimal() float64 { return float64(r.Price) / 10000.0 }

// ExecuteOrder is message type 'E'.
type ExecuteOrder struct {
	Header
	OrderRef       uint64
	ExecutedShares uint32
	MatchNumber    uint64
	ParseTimestamp uint64
}

func (r ExecuteOrder) MessageTag() Tag          { return r.Header.Type }
func (r ExecuteOrder) ParseTimestampNs() uint64 { return r.ParseTimestamp }

// ExecuteOrderWithPrice is message type 'C'.
type ExecuteOrderWithPrice struct {
	Header
	OrderRef       uint64
	ExecutedShares uint32
	MatchNumber    uint64
	Printable      byte // 'Y' or 'N', copied verbatim
	ExecutionPrice uint32
	ParseTimestamp uint64
}

func (r ExecuteOrderWithPrice) MessageTag() Tag          { return r.Header.Type }
func (r ExecuteOrderWithPrice) ParseTimestampNs() uint64 { return r.ParseTimestamp }

func (r ExecuteOrderWithPrice) PriceDecimal() float64 { return float64(r.ExecutionPrice) / 10000.0 }

// OrderCancel is message type 'X'.
type OrderCancel struct {
	Header
	OrderRef        uint64
	CancelledShares uint32
	ParseTimestamp  uint64
}

func (r OrderCancel) MessageTag() Tag          { return r.Header.Type }
func (r OrderCancel) ParseTimestampNs() uint64 { return r.ParseTimestamp }

// OrderDelete is message type 'D'.
type OrderDelete struct {
	Header
	OrderRef       uint64
	ParseTimestamp uint64
}

func (r OrderDelete) MessageTag() Tag          { return r.Header.Type }
func (r OrderDelete) ParseTimestampNs() uint64 { return r.ParseTimestamp }

// OrderReplace is message type 'U'.
type OrderReplace struct {
	Header
	OrigRef        uint64
	NewRef         uint64
	Shares         uint32
	Price          uint32
	ParseTimestamp uint64
}

func (r OrderReplace) MessageTag() Tag          { return r.Header.Type }
func (r OrderReplace) ParseTimestampNs() uint64 { return r.ParseTimestamp }

func (r OrderReplace) PriceDecimal() float64 { return float64(r.Price) / 10000.0 }

// Trade is message type 'P'.
type Trade struct {
	Header
	OrderRef       uint64
	Side           byte
	Shares         uint32
	Stock          [8]byte
	Price          uint32
	MatchNumber    uint64
	ParseTimestamp uint64
}

func (r Trade) MessageTag() Tag          { return r.Header.Type }
func (r Trade) ParseTimestampNs() uint64 { return r.ParseTimestamp }

func (r Trade) Symbol() string        { return TrimSymbol(r.Stock[:]) }
func (r Trade) PriceDecimal() float64 { return float64(r.Price) / 10000.0 }

// SystemEvent is message type 'S'.
type SystemEvent struct {
	Header
	EventCode      byte
	ParseTimestamp uint64
}

func (r SystemEvent) MessageTag() Tag          { return r.Header.Type }
func (r SystemEvent) ParseTimestampNs() uint64 { return r.ParseTimestamp }

// StockDirectory is message type 'R'.
type StockDirectory struct {
	Header
	Stock          [8]byte
	MarketCategory byte
	FinStatus      byte
	RoundLotSize   uint32
	RoundLotsOnly  byte
	IssueClass     byte
	IssueSubType   [2]byte
	Authenticity   byte
	SSThreshold    byte
	IPOFlag        byte
	LULDTier       byte
	ETPFlag        byte
	ETPLeverage    uint32
	Inverse        byte
	ParseTimestamp uint64
}

func (r StockDirectory) MessageTag() Tag          { return r.Header.Type }
func (r StockDirectory) ParseTimestampNs() uint64 { return r.ParseTimestamp }

func (r StockDirectory) Symbol() string { return TrimSymbol(r.Stock[:]) }
