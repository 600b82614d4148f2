package hc

import "github.com/martinthomson/minhpack/iobuf"

// maxHpackInteger bounds decoded integers. No sane peer sends a header
// block anywhere near this large, so anything bigger is treated as an
// overflow attack. RFC 7541 Section 5.1.
const maxHpackInteger = 10 * 1024 * 1024

// encodeInteger writes value as a prefix integer with prefixSize
// payload bits in the first byte. msb carries the representation's
// opcode bits in the top 8-prefixSize bits; its low bits must be zero.
// Returns the number of bytes written.
func encodeInteger(out iobuf.Appender, msb byte, prefixSize uint8, value uint32) int {
	maxPrefixValue := uint32(1)<<prefixSize - 1
	if value < maxPrefixValue {
		out.AppendByte(msb | byte(value))
		return 1
	}
	value -= maxPrefixValue
	out.AppendByte(msb | byte(maxPrefixValue))
	outBytes := 1
	for ; value >= 128; outBytes++ {
		out.AppendByte(byte(value&0x7f) | 0x80)
		value >>= 7
	}
	out.AppendByte(byte(value))
	return outBytes + 1
}

// decodeInteger reads a prefix integer with prefixSize payload bits.
// Returns the bytes consumed, or (0, nil) when the input ran out
// before the integer was complete.
func decodeInteger(iter *iobuf.BytesIterator, prefixSize uint8, value *uint32) (int, error) {
	if iter.BytesLeft() == 0 {
		return 0, nil
	}
	maxPrefixValue := uint64(1)<<prefixSize - 1
	tmp := uint64(iter.NextByte()) & maxPrefixValue
	if tmp < maxPrefixValue {
		*value = uint32(tmp)
		return 1, nil
	}
	inBytes := 1
	m := uint(0)
	for {
		if iter.BytesLeft() == 0 {
			return 0, nil
		}
		curByte := iter.NextByte()
		inBytes++
		tmp += uint64(curByte&0x7f) << m
		m += 7
		if tmp >= maxHpackInteger {
			log.Errorf("integer exceeds %d, source stream is likely malformed", maxHpackInteger)
			return 0, ErrIntegerBound
		}
		if curByte&0x80 == 0 {
			break
		}
	}
	*value = uint32(tmp)
	return inBytes, nil
}
