// Package encoding implements the canonical deterministic byte layout used
// for every hashed or persisted ledger entity: fixed field order,
// little-endian integers, length-prefixed byte sequences, and explicit tag
// bytes for variants. Two implementations that agree on this layout agree
// bit-for-bit on every hash, which is the whole point of having it.
package encoding

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// ErrShortBuffer is returned when a Decoder runs out of bytes mid-field.
var ErrShortBuffer = errors.New("encoding: short buffer")

// Encodable is implemented by every type that has a canonical byte form.
type Encodable interface {
	Encode(enc *Encoder)
}

// Encoder accumulates a canonical byte stream.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the accumulated canonical encoding.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// WriteTag writes a single variant tag byte.
func (e *Encoder) WriteTag(tag byte) {
	e.buf.WriteByte(tag)
}

// WriteU32 writes a little-endian uint32.
func (e *Encoder) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

// WriteU64 writes a little-endian uint64.
func (e *Encoder) WriteU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

// WriteFixed appends raw bytes with no length prefix. Use this only for
// fields whose length is implied by the type (hashes, public keys).
func (e *Encoder) WriteFixed(b []byte) {
	e.buf.Write(b)
}

// WriteBytes writes a u32-length-prefixed byte sequence.
func (e *Encoder) WriteBytes(b []byte) {
	e.WriteU32(uint32(len(b)))
	e.buf.Write(b)
}

// WriteEncodable writes x's canonical encoding inline.
func (e *Encoder) WriteEncodable(x Encodable) {
	x.Encode(e)
}

// Decoder reads a canonical byte stream produced by Encoder.
type Decoder struct {
	buf []byte
	off int
}

// NewDecoder wraps b for sequential decoding.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

// Done reports whether every byte of the stream has been consumed.
func (d *Decoder) Done() bool {
	return d.off >= len(d.buf)
}

// ReadTag reads a single variant tag byte.
func (d *Decoder) ReadTag() (byte, error) {
	if d.off+1 > len(d.buf) {
		return 0, ErrShortBuffer
	}
	b := d.buf[d.off]
	d.off++
	return b, nil
}

// ReadU32 reads a little-endian uint32.
func (d *Decoder) ReadU32() (uint32, error) {
	if d.off+4 > len(d.buf) {
		return 0, ErrShortBuffer
	}
	v := binary.LittleEndian.Uint32(d.buf[d.off : d.off+4])
	d.off += 4
	return v, nil
}

// ReadU64 reads a little-endian uint64.
func (d *Decoder) ReadU64() (uint64, error) {
	if d.off+8 > len(d.buf) {
		return 0, ErrShortBuffer
	}
	v := binary.LittleEndian.Uint64(d.buf[d.off : d.off+8])
	d.off += 8
	return v, nil
}

// ReadFixed reads exactly n raw bytes.
func (d *Decoder) ReadFixed(n int) ([]byte, error) {
	if d.off+n > len(d.buf) {
		return nil, ErrShortBuffer
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return append([]byte(nil), b...), nil
}

// ReadBytes reads a u32-length-prefixed byte sequence.
func (d *Decoder) ReadBytes() ([]byte, error) {
	n, err := d.ReadU32()
	if err != nil {
		return nil, err
	}
	return d.ReadFixed(int(n))
}

// Encode is a convenience that runs x.Encode against a fresh Encoder and
// returns the resulting bytes.
func Encode(x Encodable) []byte {
	enc := NewEncoder()
	x.Encode(enc)
	return enc.Bytes()
}
