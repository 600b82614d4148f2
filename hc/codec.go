// Package hc implements RFC 7541 (HPACK) header compression for an
// HTTP/2 stack. Each direction of a connection owns one HPacker; the
// enclosing framing layer delimits header blocks and feeds the decoder
// until the block is exhausted.
package hc

import (
	"errors"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("hpack")

// ErrIndexError is a decoder error for the case where an invalid index is
// received.
var ErrIndexError = errors.New("decoder read an invalid index")

// ErrIntegerBound indicates that a prefix integer exceeded the decoder's
// sanity bound and the stream is assumed to be malformed.
var ErrIntegerBound = errors.New("decoder read an integer past the sanity bound")

// ErrHuffmanCoding indicates an invalid Huffman coding: a code with no
// symbol assigned, or an encoded EOS.
var ErrHuffmanCoding = errors.New("invalid Huffman coding")

// ErrHuffmanPadding indicates that a Huffman-coded string did not end on
// the most-significant bits of EOS.
var ErrHuffmanPadding = errors.New("invalid Huffman padding")

// ErrTableSizeUpdate is returned when a dynamic table size update
// instruction appears; the codec does not support resizing.
var ErrTableSizeUpdate = errors.New("dynamic table size update not supported")

// Header is a decoded header field. Name is required to be lowercase
// ASCII and non-empty; the codec does not lowercase for the caller.
type Header struct {
	Name  string
	Value string
}

func (h Header) String() string {
	return h.Name + ": " + h.Value
}

// Size is the octet count the header occupies in an index table, per
// RFC 7541 Section 4.1.
func (h Header) Size() TableCapacity {
	return TableCapacity(len(h.Name) + len(h.Value) + 32)
}

// IndexPolicy selects the representation used when encoding a header.
type IndexPolicy byte

const (
	// IndexHeader adds the header to the dynamic table, so that later
	// occurrences can be replaced by an index.
	IndexHeader IndexPolicy = iota
	// NotIndexHeader emits the header without touching the dynamic
	// table. A full match in the tables is still replaced by an index.
	NotIndexHeader
	// NeverIndexHeader emits the header as a literal every time and
	// marks it so that re-encoding intermediaries must not index it
	// either.
	NeverIndexHeader
)

// EncodeOptions control the representation of one encoded header. The
// zero value is the default: index, no Huffman coding.
type EncodeOptions struct {
	// IndexPolicy says how the header relates to the dynamic table.
	IndexPolicy IndexPolicy
	// EncodeName enables Huffman coding of the name string.
	EncodeName bool
	// EncodeValue enables Huffman coding of the value string.
	EncodeValue bool
}
