package decoder

import "time"

// Decode validates and parses a single wire message. It is pure, reentrant,
// non-blocking, and allocates nothing beyond the returned Record value.
//
// Length/identity policy, in order (spec §4.1):
//  1. len(buf) < HeaderSize -> not ok. This is a cheap pre-check before the
//     tag byte is even inspected; it never rejects a genuinely valid
//     message since every recognized wire size exceeds HeaderSize.
//  2. buf[0] not a recognized tag -> not ok.
//  3. len(buf) != the exact wire size for that tag -> not ok.
//  4. Otherwise extract fields, stamp ParseTimestampNs, return ok.
//
// A and E are checked first since they dominate ITCH feed volume; the
// remaining tags fall through a switch, and anything unrecognized returns
// not-ok without further work.
func Decode(buf []byte) (Record, bool) {
	if len(buf) < HeaderSize {
		return nil, false
	}
	tag := Tag(buf[0])

	if tag == TagAddOrder {
		if len(buf) != wireSize[tag] {
			return nil, false
		}
		return decodeAddOrder(buf), true
	}
	if tag == TagExecuteOrder {
		if len(buf) != wireSize[tag] {
			return nil, false
		}
		return decodeExecuteOrder(buf), true
	}

	switch tag {
	case TagExecuteOrderWithPrice:
		if len(buf) != wireSize[tag] {
			return nil, false
		}
		return decodeExecuteOrderWithPrice(buf), true
	case TagOrderCancel:
		if len(buf) != wireSize[tag] {
			return nil, false
		}
		return decodeOrderCancel(buf), true
	case TagOrderDelete:
		if len(buf) != wireSize[tag] {
			return nil, false
		}
		return decodeOrderDelete(buf), true
	case TagOrderReplace:
		if len(buf) != wireSize[tag] {
			return nil, false
		}
		return decodeOrderReplace(buf), true
	case TagTrade:
		if len(buf) != wireSize[tag] {
			return nil, false
		}
		return decodeTrade(buf), true
	case TagSystemEvent:
		if len(buf) != wireSize[tag] {
			return nil, false
		}
		return decodeSystemEvent(buf), true
	case TagStockDirectory:
		if len(buf) != wireSize[tag] {
			return nil, false
		}
		return decodeStockDirectory(buf), true
	default:
		return nil, false
	}
}

// commonHeaderWidth is the number of bytes the type/stock_locate/
// tracking_number/timestamp prefix actually occupies on the wire: 1 + 2 + 2
// + 6. The timestamp is NASDAQ ITCH 5.0's real 48-bit nanoseconds-since-
// midnight field, zero-extended into the decoded Header's 64-bit field.
// Only an 11-byte prefix makes the per-type sizes in wireSize add up: for
// example AddOrder's body fields take 8+1+4+8+4 = 25 bytes, and 11+25 = 36.
const commonHeaderWidth = 11

func readHeader(buf []byte) Header {
	return Header{
		Type:           Tag(buf[0]),
		StockLocate:    readU16(buf[1:3]),
		TrackingNumber: readU16(buf[3:5]),
		Timestamp:      readU48(buf[5:11]),
	}
}

func readU48(b []byte) uint64 {
	return uint64(b[0])<<40 | uint64(b[1])<<32 | uint64(b[2])<<24 |
		uint64(b[3])<<16 | uint64(b[4])<<8 | uint64(b[5])
}

// clockBase anchors nowNs to Go's monotonic clock: time.Since subtracts
// monotonic readings, so successive samples never go backwards even if the
// wall clock is stepped. Samples are nanoseconds since package init.
var clockBase = time.Now()

func nowNs() uint64 { return uint64(time.Since(clockBase)) }

func decodeAddOrder(buf []byte) Record {
	r := AddOrder{
		Header:   readHeader(buf),
		OrderRef: readU64(buf[11:19]),
		Side:     buf[19],
		Shares:   readU32(buf[20:24]),
		Price:    readU32(buf[32:36]),
	}
	copy(r.Stock[:], buf[24:32])
	r.ParseTimestamp = nowNs()
	return r
}

func decodeExecuteOrder(buf []byte) Record {
	r := ExecuteOrder{
		Header:         readHeader(buf),
		OrderRef:       readU64(buf[11:19]),
		ExecutedShares: readU32(buf[19:23]),
		MatchNumber:    readU64(buf[23:31]),
	}
	r.ParseTimestamp = nowNs()
	return r
}

func decodeExecuteOrderWithPrice(buf []byte) Record {
	r := ExecuteOrderWithPrice{
		Header:         readHeader(buf),
		OrderRef:       readU64(buf[11:19]),
		ExecutedShares: readU32(buf[19:23]),
		MatchNumber:    readU64(buf[23:31]),
		Printable:      buf[31],
		ExecutionPrice: readU32(buf[32:36]),
	}
	r.ParseTimestamp = nowNs()
	return r
}

func decodeOrderCancel(buf []byte) Record {
	r := OrderCancel{
		Header:          readHeader(buf),
		OrderRef:        readU64(buf[11:19]),
		CancelledShares: readU32(buf[19:23]),
	}
	r.ParseTimestamp = nowNs()
	return r
}

func decodeOrderDelete(buf []byte) Record {
	r := OrderDelete{
		Header:   readHeader(buf),
		OrderRef: readU64(buf[11:19]),
	}
	r.ParseTimestamp = nowNs()
	return r
}

func decodeOrderReplace(buf []byte) Record {
	r := OrderReplace{
		Header:  readHeader(buf),
		OrigRef: readU64(buf[11:19]),
		NewRef:  readU64(buf[19:27]),
		Shares:  readU32(buf[27:31]),
		Price:   readU32(buf[31:35]),
	}
	r.ParseTimestamp = nowNs()
	return r
}

func decodeTrade(buf []byte) Record {
	r := Trade{
		Header:      readHeader(buf),
		OrderRef:    readU64(buf[11:19]),
		Side:        buf[19],
		Shares:      readU32(buf[20:24]),
		Price:       readU32(buf[32:36]),
		MatchNumber: readU64(buf[36:44]),
	}
	copy(r.Stock[:], buf[24:32])
	r.ParseTimestamp = nowNs()
	return r
}

// systemEventReserved is the 4-byte filler between the common header and
// the event_code byte that spec.md's §3 table implies for 'S' (total 16,
// against an 11-byte header and a 1-byte body) but never names. It carries
// no information and is ignored on decode.
const systemEventReserved = 4

func decodeSystemEvent(buf []byte) Record {
	r := SystemEvent{
		Header:    readHeader(buf),
		EventCode: buf[commonHeaderWidth+systemEventReserved],
	}
	r.ParseTimestamp = nowNs()
	return r
}

func decodeStockDirectory(buf []byte) Record {
	r := StockDirectory{
		Header:         readHeader(buf),
		MarketCategory: buf[19],
		FinStatus:      buf[20],
		RoundLotSize:   readU32(buf[21:25]),
		RoundLotsOnly:  buf[25],
		IssueClass:     buf[26],
		Authenticity:   buf[29],
		SSThreshold:    buf[30],
		IPOFlag:        buf[31],
		LULDTier:       buf[32],
		ETPFlag:        buf[33],
		ETPLeverage:    readU32(buf[34:38]),
		Inverse:        buf[38],
	}
	copy(r.Stock[:], buf[11:19])
	copy(r.IssueSubType[:], buf[27:29])
	r.ParseTimestamp = nowNs()
	return r
}
