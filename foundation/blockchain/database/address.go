package database

import (
	"bytes"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/ed25519"

	"github.com/wtran29/ledgercore/foundation/blockchain/encoding"
)

// AddressKind tags the two Address variants.
type AddressKind uint8

const (
	// AddressKindTreasury is the implicit singleton issuing account.
	AddressKindTreasury AddressKind = iota
	// AddressKindPublicKey is a wallet address backed by an EdDSA key.
	AddressKindPublicKey
)

// Address is the tagged Treasury|PublicKey(pk) variant. Addresses are
// totally ordered by their canonical encoding and stringify uniquely.
type Address struct {
	Kind AddressKind
	PK   ed25519.PublicKey // nil for Treasury
}

// Treasury is the singleton issuing account that holds the entire money
// supply until it is spent.
var Treasury = Address{Kind: AddressKindTreasury}

// ErrInvalidAddress is returned when parsing or decoding an address fails.
var ErrInvalidAddress = errors.New("database: invalid address")

// NewPublicKeyAddress wraps pk as a PublicKey address.
func NewPublicKeyAddress(pk ed25519.PublicKey) Address {
	return Address{Kind: AddressKindPublicKey, PK: append(ed25519.PublicKey(nil), pk...)}
}

// Equal reports whether a and b name the same account.
func (a Address) Equal(b Address) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == AddressKindTreasury {
		return true
	}
	return bytes.Equal(a.PK, b.PK)
}

// Less orders a before b by canonical encoding: Treasury first, then
// PublicKey addresses ordered by raw key bytes.
func (a Address) Less(b Address) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	return bytes.Compare(a.PK, b.PK) < 0
}

// String renders the address the way it appears in persisted account keys.
func (a Address) String() string {
	if a.Kind == AddressKindTreasury {
		return "Treasury"
	}
	return hex.EncodeToString(a.PK)
}

// ParseAddress parses a string produced by Address.String.
func ParseAddress(s string) (Address, error) {
	if s == "Treasury" {
		return Treasury, nil
	}
	pk, err := hex.DecodeString(s)
	if err != nil || len(pk) != ed25519.PublicKeySize {
		return Address{}, ErrInvalidAddress
	}
	return NewPublicKeyAddress(pk), nil
}

// Encode writes the tagged canonical form: a tag byte, then (for
// PublicKey) the length-prefixed raw key bytes.
func (a Address) Encode(enc *encoding.Encoder) {
	enc.WriteTag(byte(a.Kind))
	if a.Kind == AddressKindPublicKey {
		enc.WriteBytes(a.PK)
	}
}

// DecodeAddress reads an Address written by Address.Encode.
func DecodeAddress(dec *encoding.Decoder) (Address, error) {
	tag, err := dec.ReadTag()
	if err != nil {
		return Address{}, err
	}
	switch AddressKind(tag) {
	case AddressKindTreasury:
		return Treasury, nil
	case AddressKindPublicKey:
		pk, err := dec.ReadBytes()
		if err != nil {
			return Address{}, err
		}
		return NewPublicKeyAddress(pk), nil
	default:
		return Address{}, ErrInvalidAddress
	}
}
