// Package iobuf provides the byte buffers that stage encoded header
// blocks and the forward iterator that the decoder consumes.
package iobuf

import "github.com/valyala/bytebufferpool"

// Appender is a byte-append sink. Appends do not fail; anything that
// can report a short write belongs above this layer.
type Appender interface {
	AppendByte(c byte)
	Append(p []byte)
	AppendString(s string)
}

// Buffer is an Appender over pooled storage. Get one with NewBuffer
// and return the storage with Release when done.
type Buffer struct {
	bb *bytebufferpool.ByteBuffer
}

// NewBuffer takes a buffer from the pool.
func NewBuffer() *Buffer {
	return &Buffer{bb: bytebufferpool.Get()}
}

// Release returns the backing storage to the pool. The buffer must not
// be used afterwards.
func (b *Buffer) Release() {
	bytebufferpool.Put(b.bb)
	b.bb = nil
}

// Len is the number of buffered bytes.
func (b *Buffer) Len() int {
	return len(b.bb.B)
}

// Bytes exposes the buffered bytes. The slice is only valid until the
// next append or Release.
func (b *Buffer) Bytes() []byte {
	return b.bb.B
}

// Reset empties the buffer without releasing its storage.
func (b *Buffer) Reset() {
	b.bb.Reset()
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(c byte) {
	b.bb.B = append(b.bb.B, c)
}

// Append appends p.
func (b *Buffer) Append(p []byte) {
	b.bb.B = append(b.bb.B, p...)
}

// AppendString appends s.
func (b *Buffer) AppendString(s string) {
	b.bb.B = append(b.bb.B, s...)
}

// PopFront discards the first n buffered bytes, moving the remainder
// down so the storage keeps being reused.
func (b *Buffer) PopFront(n int) {
	if n >= len(b.bb.B) {
		b.bb.B = b.bb.B[:0]
		return
	}
	m := copy(b.bb.B, b.bb.B[n:])
	b.bb.B = b.bb.B[:m]
}

// Iterator returns an iterator positioned at the first buffered byte.
func (b *Buffer) Iterator() BytesIterator {
	return NewBytesIterator(b.bb.B)
}

// BytesIterator walks forward over a byte window. It never blocks: the
// window is whatever was available when the iterator was made, and
// BytesLeft says how much of it remains.
type BytesIterator struct {
	data []byte
	pos  int
}

// NewBytesIterator wraps data.
func NewBytesIterator(data []byte) BytesIterator {
	return BytesIterator{data: data}
}

// BytesLeft is the number of unread bytes.
func (it *BytesIterator) BytesLeft() int {
	return len(it.data) - it.pos
}

// PeekByte returns the next byte without consuming it. The caller must
// have checked BytesLeft.
func (it *BytesIterator) PeekByte() byte {
	return it.data[it.pos]
}

// NextByte consumes and returns the next byte. The caller must have
// checked BytesLeft.
func (it *BytesIterator) NextByte() byte {
	c := it.data[it.pos]
	it.pos++
	return c
}

// ReadString consumes n bytes and returns them as a string.
func (it *BytesIterator) ReadString(n int) string {
	s := string(it.data[it.pos : it.pos+n])
	it.pos += n
	return s
}
