package database

import (
	"bytes"
	"math"
	"math/big"

	"github.com/wtran29/ledgercore/foundation/blockchain/encoding"
	"github.com/wtran29/ledgercore/foundation/blockchain/signature"
)

// ProofOfWork is the mined portion of a Header: the timestamp it was
// mined at, the 256-bit target its keyed hash must not exceed, and the
// nonce a miner grinds to find a hash that meets the target.
type ProofOfWork struct {
	Timestamp uint64
	Target    signature.Hash32 // big-endian 256-bit threshold
	Nonce     uint64
}

// Encode writes the canonical form: timestamp, target, nonce.
func (p ProofOfWork) Encode(enc *encoding.Encoder) {
	enc.WriteU64(p.Timestamp)
	enc.WriteFixed(p.Target[:])
	enc.WriteU64(p.Nonce)
}

// DecodeProofOfWork reads a ProofOfWork written by ProofOfWork.Encode.
func DecodeProofOfWork(dec *encoding.Decoder) (ProofOfWork, error) {
	ts, err := dec.ReadU64()
	if err != nil {
		return ProofOfWork{}, err
	}
	targetB, err := dec.ReadFixed(32)
	if err != nil {
		return ProofOfWork{}, err
	}
	nonce, err := dec.ReadU64()
	if err != nil {
		return ProofOfWork{}, err
	}
	var target signature.Hash32
	copy(target[:], targetB)
	return ProofOfWork{Timestamp: ts, Target: target, Nonce: nonce}, nil
}

// Header is the hashed, linked portion of a Block.
type Header struct {
	Number      uint64
	ParentHash  signature.Hash32
	BlockRoot   signature.Hash32
	ProofOfWork ProofOfWork
}

// Encode writes the canonical form: number, parent hash, block root, PoW.
func (h Header) Encode(enc *encoding.Encoder) {
	enc.WriteU64(h.Number)
	enc.WriteFixed(h.ParentHash[:])
	enc.WriteFixed(h.BlockRoot[:])
	h.ProofOfWork.Encode(enc)
}

// DecodeHeader reads a Header written by Header.Encode.
func DecodeHeader(dec *encoding.Decoder) (Header, error) {
	number, err := dec.ReadU64()
	if err != nil {
		return Header{}, err
	}
	parentB, err := dec.ReadFixed(32)
	if err != nil {
		return Header{}, err
	}
	rootB, err := dec.ReadFixed(32)
	if err != nil {
		return Header{}, err
	}
	pow, err := DecodeProofOfWork(dec)
	if err != nil {
		return Header{}, err
	}
	var parent, root signature.Hash32
	copy(parent[:], parentB)
	copy(root[:], rootB)
	return Header{Number: number, ParentHash: parent, BlockRoot: root, ProofOfWork: pow}, nil
}

// Hash is the header's canonical content hash. Block linkage (ParentHash)
// references this, never the body, so a light client can validate the
// chain from headers alone.
func (h Header) Hash() signature.Hash32 {
	return signature.Hash(h)
}

// powHash is the keyed PoW hash: the canonical header encoding with the
// rotating pow_key appended, then hashed. Keying the hash this way is what
// makes pow_key rotation defeat precomputed work against a fixed key.
func (h Header) powHash(key signature.Hash32) signature.Hash32 {
	enc := encoding.NewEncoder()
	h.Encode(enc)
	enc.WriteFixed(key[:])
	return signature.HashBytes(enc.Bytes())
}

// MeetsTarget reports whether h's keyed PoW hash does not exceed its
// target, treating both as big-endian 256-bit unsigned integers.
func (h Header) MeetsTarget(key signature.Hash32) bool {
	hash := h.powHash(key)
	return bytes.Compare(hash[:], h.ProofOfWork.Target[:]) <= 0
}

// Power is h's contribution to cumulative chain power, computed from h's
// actual keyed PoW hash rather than from its target: the expected number
// of hash attempts needed to find a hash no larger than it, i.e.
// floor(2^256 / (hash+1)). Harder (numerically smaller) hashes contribute
// more power. The result saturates at math.MaxUint64.
func (h Header) Power(key signature.Hash32) uint64 {
	hash := h.powHash(key)
	hashInt := new(big.Int).SetBytes(hash[:])
	hashInt.Add(hashInt, big.NewInt(1))

	maxSpace := new(big.Int).Lsh(big.NewInt(1), 256)
	work := new(big.Int).Div(maxSpace, hashInt)
	if !work.IsUint64() {
		return math.MaxUint64
	}
	return work.Uint64()
}
