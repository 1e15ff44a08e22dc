package decoder

import "encoding/binary"

// Serialize writes rec's host-endian on-disk form into dst and returns the
// number of bytes written, which always equals Size(rec.MessageTag()) for a
// recognized tag. dst must be at least that long. An unrecognized record
// type writes nothing and returns 0 — this can only happen if a caller
// hand-builds a Record outside of Decode, since Decode itself never
// returns one.
//
// The on-disk layout mirrors the wire layout field-for-field (same offsets,
// same per-type total size) but in the host's native endianness rather than
// the wire's big-endian, and with the decoder's local ParseTimestamp folded
// into the 6-byte timestamp slot instead of the original wire timestamp.
// Consumers of anything built from Serialize must know the platform's
// endianness used to produce it; ParseRecord is its inverse.
func Serialize(dst []byte, rec Record) int {
	switch r := rec.(type) {
	case AddOrder:
		writeHeaderNative(dst, r.Header, r.ParseTimestamp)
		binary.NativeEndian.PutUint64(dst[11:19], r.OrderRef)
		dst[19] = r.Side
		binary.NativeEndian.PutUint32(dst[20:24], r.Shares)
		copy(dst[24:32], r.Stock[:])
		binary.NativeEndian.PutUint32(dst[32:36], r.Price)
		return 36
	case ExecuteOrder:
		writeHeaderNative(dst, r.Header, r.ParseTimestamp)
		binary.NativeEndian.PutUint64(dst[11:19], r.OrderRef)
		binary.NativeEndian.PutUint32(dst[19:23], r.ExecutedShares)
		binary.NativeEndian.PutUint64(dst[23:31], r.MatchNumber)
		return 31
	case ExecuteOrderWithPrice:
		writeHeaderNative(dst, r.Header, r.ParseTimestamp)
		binary.NativeEndian.PutUint64(dst[11:19], r.OrderRef)
		binary.NativeEndian.PutUint32(dst[19:23], r.ExecutedShares)
		binary.NativeEndian.PutUint64(dst[23:31], r.MatchNumber)
		dst[31] = r.Printable
		binary.NativeEndian.PutUint32(dst[32:36], r.ExecutionPrice)
		return 36
	case OrderCancel:
		writeHeaderNative(dst, r.Header, r.ParseTimestamp)
		binary.NativeEndian.PutUint64(dst[11:19], r.OrderRef)
		binary.NativeEndian.PutUint32(dst[19:23], r.CancelledShares)
		return 23
	case OrderDelete:
		writeHeaderNative(dst, r.Header, r.ParseTimestamp)
		binary.NativeEndian.PutUint64(dst[11:19], r.OrderRef)
		return 19
	case OrderReplace:
		writeHeaderNative(dst, r.Header, r.ParseTimestamp)
		binary.NativeEndian.PutUint64(dst[11:19], r.OrigRef)
		binary.NativeEndian.PutUint64(dst[19:27], r.NewRef)
		binary.NativeEndian.PutUint32(dst[27:31], r.Shares)
		binary.NativeEndian.PutUint32(dst[31:35], r.Price)
		return 35
	case Trade:
		writeHeaderNative(dst, r.Header, r.ParseTimestamp)
		binary.NativeEndian.PutUint64(dst[11:19], r.OrderRef)
		dst[19] = r.Side
		binary.NativeEndian.PutUint32(dst[20:24], r.Shares)
		copy(dst[24:32], r.Stock[:])
		binary.NativeEndian.PutUint32(dst[32:36], r.Price)
		binary.NativeEndian.PutUint64(dst[36:44], r.MatchNumber)
		return 44
	case SystemEvent:
		writeHeaderNative(dst, r.Header, r.ParseTimestamp)
		dst[11], dst[12], dst[13], dst[14] = 0, 0, 0, 0
		dst[15] = r.EventCode
		return 16
	case StockDirectory:
		writeHeaderNative(dst, r.Header, r.ParseTimestamp)
		copy(dst[11:19], r.Stock[:])
		dst[19] = r.MarketCategory
		dst[20] = r.FinStatus
		binary.NativeEndian.PutUint32(dst[21:25], r.RoundLotSize)
		dst[25] = r.RoundLotsOnly
		dst[26] = r.IssueClass
		copy(dst[27:29], r.IssueSubType[:])
		dst[29] = r.Authenticity
		dst[30] = r.SSThreshold
		dst[31] = r.IPOFlag
		dst[32] = r.LULDTier
		dst[33] = r.ETPFlag
		binary.NativeEndian.PutUint32(dst[34:38], r.ETPLeverage)
		dst[38] = r.Inverse
		return 39
	default:
		return 0
	}
}

func writeHeaderNative(dst []byte, h Header, parseTimestamp uint64) {
	dst[0] = byte(h.Type)
	binary.NativeEndian.PutUint16(dst[1:3], h.StockLocate)
	binary.NativeEndian.PutUint16(dst[3:5], h.TrackingNumber)
	putU48Native(dst[5:11], parseTimestamp)
}

// nativeIsLittleEndian is resolved once at init by probing
// binary.NativeEndian directly, rather than importing an arch-specific
// build tag, so putU48Native/readU48Native track whatever the platform
// actually is.
var nativeIsLittleEndian = func() bool {
	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 1)
	return probe[0] == 1
}()

// putU48Native and readU48Native round-trip the 48-bit timestamp slot
// through the same byte order binary.NativeEndian uses for everything
// else in the record, since encoding/binary has no PutUint48.
func putU48Native(b []byte, v uint64) {
	var scratch [8]byte
	binary.NativeEndian.PutUint64(scratch[:], v)
	if nativeIsLittleEndian {
		copy(b, scratch[:6])
	} else {
		copy(b, scratch[2:8])
	}
}

func readU48Native(b []byte) uint64 {
	var scratch [8]byte
	if nativeIsLittleEndian {
		copy(scratch[:6], b)
	} else {
		copy(scratch[2:8], b)
	}
	return binary.NativeEndian.Uint64(scratch[:])
}

// ParseRecord decodes one Serialize-produced record back out of buf, which
// must hold at least Size(Tag(buf[0])) bytes. It returns the record, the
// number of bytes it occupied, and whether buf[0] was a recognized tag.
// It is the inverse of Serialize, not of Decode — the two disagree on
// endianness and on what the timestamp field holds.
func ParseRecord(buf []byte) (Record, int, bool) {
	if len(buf) == 0 {
		return nil, 0, false
	}
	tag := Tag(buf[0])
	size, ok := Size(tag)
	if !ok || len(buf) < size {
		return nil, 0, false
	}
	h := Header{
		Type:           tag,
		StockLocate:    binary.NativeEndian.Uint16(buf[1:3]),
		TrackingNumber: binary.NativeEndian.Uint16(buf[3:5]),
		Timestamp:      readU48Native(buf[5:11]),
	}
	switch tag {
	case TagAddOrder:
		r := AddOrder{
			Header:   h,
			OrderRef: binary.NativeEndian.Uint64(buf[11:19]),
			Side:     buf[19],
			Shares:   binary.NativeEndian.Uint32(buf[20:24]),
			Price:    binary.NativeEndian.Uint32(buf[32:36]),
		}
		copy(r.Stock[:], buf[24:32])
		return r, size, true
	case TagExecuteOrder:
		r := ExecuteOrder{
			Header:         h,
			OrderRef:       binary.NativeEndian.Uint64(buf[11:19]),
			ExecutedShares: binary.NativeEndian.Uint32(buf[19:23]),
			MatchNumber:    binary.NativeEndian.Uint64(buf[23:31]),
		}
		return r, size, true
	case TagExecuteOrderWithPrice:
		r := ExecuteOrderWithPrice{
			Header:         h,
			OrderRef:       binary.NativeEndian.Uint64(buf[11:19]),
			ExecutedShares: binary.NativeEndian.Uint32(buf[19:23]),
			MatchNumber:    binary.NativeEndian.Uint64(buf[23:31]),
			Printable:      buf[31],
			ExecutionPrice: binary.NativeEndian.Uint32(buf[32:36]),
		}
		return r, size, true
	case TagOrderCancel:
		r := OrderCancel{
			Header:          h,
			OrderRef:        binary.NativeEndian.Uint64(buf[11:19]),
			CancelledShares: binary.NativeEndian.Uint32(buf[19:23]),
		}
		return r, size, true
	case TagOrderDelete:
		r := OrderDelete{
			Header:   h,
			OrderRef: binary.NativeEndian.Uint64(buf[11:19]),
		}
		return r, size, true
	case TagOrderReplace:
		r := OrderReplace{
			Header:  h,
			OrigRef: binary.NativeEndian.Uint64(buf[11:19]),
			NewRef:  binary.NativeEndian.Uint64(buf[19:27]),
			Shares:  binary.NativeEndian.Uint32(buf[27:31]),
			Price:   binary.NativeEndian.Uint32(buf[31:35]),
		}
		return r, size, true
	case TagTrade:
		r := Trade{
			Header:      h,
			OrderRef:    binary.NativeEndian.Uint64(buf[11:19]),
			Side:        buf[19],
			Shares:      binary.NativeEndian.Uint32(buf[20:24]),
			Price:       binary.NativeEndian.Uint32(buf[32:36]),
			MatchNumber: binary.NativeEndian.Uint64(buf[36:44]),
		}
		copy(r.Stock[:], buf[24:32])
		return r, size, true
	case TagSystemEvent:
		r := SystemEvent{Header: h, EventCode: buf[15]}
		return r, size, true
	case TagStockDirectory:
		r := StockDirectory{
			Header:         h,
			MarketCategory: buf[19],
			FinStatus:      buf[20],
			RoundLotSize:   binary.NativeEndian.Uint32(buf[21:25]),
			RoundLotsOnly:  buf[25],
			IssueClass:     buf[26],
			Authenticity:   buf[29],
			SSThreshold:    buf[30],
			IPOFlag:        buf[31],
			LULDTier:       buf[32],
			ETPFlag:        buf[33],
			ETPLeverage:    binary.NativeEndian.Uint32(buf[34:38]),
			Inverse:        buf[38],
		}
		copy(r.Stock[:], buf[11:19])
		copy(r.IssueSubType[:], buf[27:29])
		return r, size, true
	default:
		return nil, 0, false
	}
}
