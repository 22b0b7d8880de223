package database

import "github.com/wtran29/ledgercore/foundation/blockchain/encoding"

// SignatureKind tags the two Signature variants.
type SignatureKind uint8

const (
	// SignatureUnsigned marks a transaction as not yet (or never) signed.
	SignatureUnsigned SignatureKind = iota
	// SignatureSigned carries a raw EdDSA signature.
	SignatureSigned
)

// Signature is the tagged Unsigned|Signed(bytes) variant. A transaction's
// signing pre-image is its encoding with this field forced to Unsigned
// (Transaction.SigningHash hashes it); signature verification checks the
// Signed bytes against that pre-image. Transaction.Hash, the Merkle leaf,
// covers the full encoding including this field.
type Signature struct {
	Kind  SignatureKind
	Bytes []byte
}

// Unsigned is the zero-value, sig-not-present signature.
var Unsigned = Signature{Kind: SignatureUnsigned}

// NewSignature wraps raw signature bytes as a Signed variant.
func NewSignature(b []byte) Signature {
	return Signature{Kind: SignatureSigned, Bytes: append([]byte(nil), b...)}
}

// Encode writes the tagged canonical form.
func (s Signature) Encode(enc *encoding.Encoder) {
	enc.WriteTag(byte(s.Kind))
	if s.Kind == SignatureSigned {
		enc.WriteBytes(s.Bytes)
	}
}

// DecodeSignature reads a Signature written by Signature.Encode.
func DecodeSignature(dec *encoding.Decoder) (Signature, error) {
	tag, err := dec.ReadTag()
	if err != nil {
		return Signature{}, err
	}
	if SignatureKind(tag) == SignatureUnsigned {
		return Unsigned, nil
	}
	b, err := dec.ReadBytes()
	if err != nil {
		return Signature{}, err
	}
	return NewSignature(b), nil
}
