package hc

import "github.com/martinthomson/minhpack/iobuf"

// DefaultHeaderTableSize is the initial SETTINGS_HEADER_TABLE_SIZE
// value from RFC 7540 Section 6.5.2.
const DefaultHeaderTableSize TableCapacity = 4096

// HPacker compresses and decompresses header fields for one direction
// of a connection. It is stateful and single-threaded: the encode and
// decode dynamic tables must only ever be mutated by that direction's
// serializer and parser respectively.
type HPacker struct {
	encodeTable *IndexTable
	decodeTable *IndexTable
}

// NewHPacker builds a codec whose dynamic tables are bounded to
// maxTableSize octets. Both peers must agree on the bound or later
// indexed fields become undecodable.
func NewHPacker(maxTableSize TableCapacity) *HPacker {
	createStaticTablesOnce()
	startIndex := staticTable.EndIndex()
	return &HPacker{
		encodeTable: NewIndexTable(maxTableSize, startIndex, true),
		decodeTable: NewIndexTable(maxTableSize, startIndex, false),
	}
}

// EncoderTable exposes the encode-side dynamic table. Callers must
// treat it as read-only.
func (p *HPacker) EncoderTable() *IndexTable {
	return p.encodeTable
}

// DecoderTable exposes the decode-side dynamic table. Callers must
// treat it as read-only.
func (p *HPacker) DecoderTable() *IndexTable {
	return p.decodeTable
}

func (p *HPacker) findHeaderFromIndexTable(h Header) int {
	if index := staticTable.IndexOfHeader(h); index > 0 {
		return index
	}
	return p.encodeTable.IndexOfHeader(h)
}

func (p *HPacker) findNameFromIndexTable(name string) int {
	if index := staticTable.IndexOfName(name); index > 0 {
		return index
	}
	return p.encodeTable.IndexOfName(name)
}

func (p *HPacker) headerAt(index int) *Header {
	if index >= p.decodeTable.StartIndex() {
		return p.decodeTable.HeaderAt(index)
	}
	return staticTable.HeaderAt(index)
}

// Encode appends the compressed representation of header to out and
// returns the number of bytes written. A full (name, value) match in
// the tables is emitted as a single indexed field even under
// NotIndexHeader, since that form is smaller and leaves the peer's
// table untouched; NeverIndexHeader disables the short-circuit because
// the caller is asserting the value must always travel as a literal.
func (p *HPacker) Encode(out iobuf.Appender, header Header, options EncodeOptions) int {
	if options.IndexPolicy != NeverIndexHeader {
		if index := p.findHeaderFromIndexTable(header); index > 0 {
			return encodeInteger(out, 0x80, 7, uint32(index))
		}
	}
	// The header can't be indexed, or it wasn't in the tables.
	nameIndex := p.findNameFromIndexTable(header.Name)
	if options.IndexPolicy == IndexHeader {
		// Insert before emitting, so the encoder's view of the table
		// matches what the peer decoder computes for the next field.
		p.encodeTable.AddHeader(header)
	}
	outBytes := 0
	switch options.IndexPolicy {
	case IndexHeader:
		outBytes += encodeInteger(out, 0x40, 6, uint32(nameIndex))
	case NotIndexHeader:
		outBytes += encodeInteger(out, 0x00, 4, uint32(nameIndex))
	case NeverIndexHeader:
		outBytes += encodeInteger(out, 0x10, 4, uint32(nameIndex))
	}
	if nameIndex == 0 {
		outBytes += encodeString(out, header.Name, options.EncodeName)
	}
	outBytes += encodeString(out, header.Value, options.EncodeValue)
	return outBytes
}

// decodeWithKnownPrefix reads one literal representation whose name
// index carries prefixSize payload bits, then the value string.
func (p *HPacker) decodeWithKnownPrefix(iter *iobuf.BytesIterator, h *Header, prefixSize uint8) (int, error) {
	var index uint32
	indexBytes, err := decodeInteger(iter, prefixSize, &index)
	if err != nil || indexBytes == 0 {
		return 0, err
	}
	nameBytes := 0
	if index != 0 {
		indexedHeader := p.headerAt(int(index))
		if indexedHeader == nil {
			log.Errorf("no header at index=%d", index)
			return 0, ErrIndexError
		}
		h.Name = indexedHeader.Name
	} else {
		nameBytes, err = decodeString(iter, &h.Name)
		if err != nil || nameBytes == 0 {
			return 0, err
		}
	}
	valueBytes, err := decodeString(iter, &h.Value)
	if err != nil || valueBytes == 0 {
		return 0, err
	}
	return indexBytes + nameBytes + valueBytes, nil
}

// Decode reads at most one header field from iter into h. It returns
// the bytes consumed, (0, nil) when the available bytes do not hold a
// complete field (retry with more input; no table state was changed),
// or an error when the stream is malformed. After an error the decode
// table is undefined and the caller should tear the connection down.
// On a non-positive return the iterator position is unspecified; use
// DecodeBuffer when the consumed prefix needs tracking.
func (p *HPacker) Decode(iter *iobuf.BytesIterator, h *Header) (int, error) {
	if iter.BytesLeft() == 0 {
		return 0, nil
	}
	firstByte := iter.PeekByte()
	switch {
	case firstByte&0x80 != 0:
		// (1xxx) Indexed Header Field Representation
		// https://tools.ietf.org/html/rfc7541#section-6.1
		var index uint32
		indexBytes, err := decodeInteger(iter, 7, &index)
		if err != nil || indexBytes == 0 {
			return 0, err
		}
		indexedHeader := p.headerAt(int(index))
		if indexedHeader == nil {
			log.Errorf("no header at index=%d", index)
			return 0, ErrIndexError
		}
		*h = *indexedHeader
		return indexBytes, nil
	case firstByte&0x40 != 0:
		// (01xx) Literal Header Field with Incremental Indexing
		// https://tools.ietf.org/html/rfc7541#section-6.2.1
		inBytes, err := p.decodeWithKnownPrefix(iter, h, 6)
		if err != nil || inBytes == 0 {
			return 0, err
		}
		// The header is fully materialised, so a name index referring
		// to an entry this insertion evicts was already resolved.
		p.decodeTable.AddHeader(*h)
		return inBytes, nil
	case firstByte&0x20 != 0:
		// (001x) Dynamic Table Size Update
		// https://tools.ietf.org/html/rfc7541#section-6.3
		log.Errorf("dynamic table size update not supported")
		return 0, ErrTableSizeUpdate
	case firstByte&0x10 != 0:
		// (0001) Literal Header Field Never Indexed
		// https://tools.ietf.org/html/rfc7541#section-6.2.3
		return p.decodeWithKnownPrefix(iter, h, 4)
	default:
		// (0000) Literal Header Field without Indexing
		// https://tools.ietf.org/html/rfc7541#section-6.2.2
		return p.decodeWithKnownPrefix(iter, h, 4)
	}
}

// DecodeBuffer decodes at most one header field from the front of src,
// popping the consumed bytes on success and leaving src untouched on an
// incomplete or malformed result.
func (p *HPacker) DecodeBuffer(src *iobuf.Buffer, h *Header) (int, error) {
	iter := src.Iterator()
	inBytes, err := p.Decode(&iter, h)
	if inBytes > 0 {
		src.PopFront(inBytes)
	}
	return inBytes, err
}
