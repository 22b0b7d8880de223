// Package signature provides the core's canonical hashing primitive and the
// abstract signature verifier it depends on. The hash-function and
// signature-scheme internals are external collaborators per the project
// contract; this package pins the SHA3-256 and EdDSA concrete defaults
// without embedding protocol logic that belongs in database or state.
package signature

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/wtran29/ledgercore/foundation/blockchain/encoding"
)

// Hash32 is the 32-byte digest produced by the canonical hash function.
type Hash32 = [32]byte

// ZeroHash is the parent hash used by the genesis block, which has no
// parent.
var ZeroHash Hash32

// Hash returns SHA3-256 over x's canonical encoding.
func Hash(x encoding.Encodable) Hash32 {
	return HashBytes(encoding.Encode(x))
}

// HashBytes returns SHA3-256 over raw bytes.
func HashBytes(b []byte) Hash32 {
	return sha3.Sum256(b)
}

// Verifier checks a signature against a public key and message. The core
// never generates keys or signs on its own behalf; it only verifies.
type Verifier interface {
	Verify(pk ed25519.PublicKey, message, sig []byte) bool
}

// Ed25519Verifier is the default Verifier, EdDSA over Curve25519.
type Ed25519Verifier struct{}

// Verify reports whether sig is a valid EdDSA signature of message by pk.
func (Ed25519Verifier) Verify(pk ed25519.PublicKey, message, sig []byte) bool {
	if len(pk) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(pk, message, sig)
}

// GenerateKeyPair produces a fresh EdDSA key pair. Wallet key management is
// out of scope for the ledger core; this exists so tests and tooling don't
// need to hand-roll key generation.
func GenerateKeyPair(rnd io.Reader) (ed25519.PublicKey, ed25519.PrivateKey, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	return ed25519.GenerateKey(rnd)
}

// Sign produces an EdDSA signature of message under sk.
func Sign(sk ed25519.PrivateKey, message []byte) []byte {
	return ed25519.Sign(sk, message)
}
