package hc

import "github.com/martinthomson/minhpack/iobuf"

// encodeString writes a length-prefixed octet string, Huffman-coded if
// huffman is set. Returns the number of bytes written.
func encodeString(out iobuf.Appender, s string, huffman bool) int {
	if !huffman {
		outBytes := encodeInteger(out, 0x00, 7, uint32(len(s)))
		out.AppendString(s)
		return outBytes + len(s)
	}
	bitLen := huffmanBitLength(s)
	outBytes := encodeInteger(out, 0x80, 7, uint32((bitLen+7)>>3))
	e := newHuffmanEncoder(out)
	for i := 0; i < len(s); i++ {
		e.encode(s[i])
	}
	e.endStream()
	return outBytes + e.outBytes
}

// decodeString reads a length-prefixed octet string. Returns the bytes
// consumed, or (0, nil) when the prefix or the string body extends past
// the available bytes.
func decodeString(iter *iobuf.BytesIterator, out *string) (int, error) {
	if iter.BytesLeft() == 0 {
		return 0, nil
	}
	huffman := iter.PeekByte()&0x80 != 0
	var length uint32
	inBytes, err := decodeInteger(iter, 7, &length)
	if err != nil {
		log.Errorf("fail to decode string length: %v", err)
		return 0, err
	}
	if inBytes == 0 {
		return 0, nil
	}
	if int(length) > iter.BytesLeft() {
		return 0, nil
	}
	if !huffman {
		*out = iter.ReadString(int(length))
		return inBytes + int(length), nil
	}
	d := newHuffmanDecoder(hpackHuffmanTree, int(length))
	for i := uint32(0); i < length; i++ {
		if err := d.decode(iter.NextByte()); err != nil {
			return 0, err
		}
	}
	if err := d.endStream(); err != nil {
		return 0, err
	}
	*out = string(d.out)
	return inBytes + int(length), nil
}
