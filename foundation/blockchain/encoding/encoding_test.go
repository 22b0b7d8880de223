package encoding

import (
	"bytes"
	"testing"
)

func TestRoundTripPrimitives(t *testing.T) {
	enc := NewEncoder()
	enc.WriteTag(7)
	enc.WriteU32(42)
	enc.WriteU64(1 << 40)
	enc.WriteFixed([]byte{1, 2, 3, 4})
	enc.WriteBytes([]byte("hello"))

	dec := NewDecoder(enc.Bytes())

	tag, err := dec.ReadTag()
	if err != nil || tag != 7 {
		t.Fatalf("ReadTag() = %d, %v; want 7, nil", tag, err)
	}
	u32, err := dec.ReadU32()
	if err != nil || u32 != 42 {
		t.Fatalf("ReadU32() = %d, %v; want 42, nil", u32, err)
	}
	u64, err := dec.ReadU64()
	if err != nil || u64 != 1<<40 {
		t.Fatalf("ReadU64() = %d, %v; want %d, nil", u64, err, uint64(1)<<40)
	}
	fixed, err := dec.ReadFixed(4)
	if err != nil || !bytes.Equal(fixed, []byte{1, 2, 3, 4}) {
		t.Fatalf("ReadFixed() = %v, %v; want [1 2 3 4], nil", fixed, err)
	}
	bs, err := dec.ReadBytes()
	if err != nil || string(bs) != "hello" {
		t.Fatalf("ReadBytes() = %q, %v; want hello, nil", bs, err)
	}
	if !dec.Done() {
		t.Fatal("Done() = false after consuming every field")
	}
}

func TestReadPastEndReturnsShortBuffer(t *testing.T) {
	dec := NewDecoder([]byte{1, 2})
	if _, err := dec.ReadU64(); err != ErrShortBuffer {
		t.Fatalf("ReadU64() error = %v; want ErrShortBuffer", err)
	}
}

type fixedEncodable struct{ v byte }

func (f fixedEncodable) Encode(enc *Encoder) { enc.WriteTag(f.v) }

func TestEncodeDeterministic(t *testing.T) {
	a := Encode(fixedEncodable{v: 9})
	b := Encode(fixedEncodable{v: 9})
	if !bytes.Equal(a, b) {
		t.Fatalf("Encode is not deterministic: %v != %v", a, b)
	}
}
