package database

import (
	"testing"

	"github.com/wtran29/ledgercore/foundation/blockchain/encoding"
	"github.com/wtran29/ledgercore/foundation/blockchain/signature"
)

func mustKeyPair(t *testing.T) (signature.Verifier, Address, []byte) {
	t.Helper()
	pk, sk, err := signature.GenerateKeyPair(nil)
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}
	return signature.Ed25519Verifier{}, NewPublicKeyAddress(pk), sk
}

func TestSignAndVerifySignature(t *testing.T) {
	verifier, src, sk := mustKeyPair(t)
	dst := src

	tx := Transaction{
		Src:   src,
		Nonce: 1,
		Data:  RegularSend(dst, 10),
		Fee:   1,
	}
	signed := Sign(tx, sk)

	if !signed.VerifySignature(verifier) {
		t.Fatal("VerifySignature() = false for a transaction signed by its own src key")
	}

	tampered := signed
	tampered.Nonce = 2
	if tampered.VerifySignature(verifier) {
		t.Fatal("VerifySignature() = true after mutating a signed field")
	}
}

func TestTreasuryBypassesSignatureVerification(t *testing.T) {
	verifier, dst, _ := mustKeyPair(t)
	tx := Transaction{
		Src:   Treasury,
		Nonce: 1,
		Data:  RegularSend(dst, 100),
	}
	if !tx.VerifySignature(verifier) {
		t.Fatal("VerifySignature() = false for a Treasury-sourced transaction")
	}
}

func TestTransactionEncodeDecodeRoundTrip(t *testing.T) {
	_, src, sk := mustKeyPair(t)
	tx := Sign(Transaction{
		Src:   src,
		Nonce: 3,
		Data:  RegularSend(src, 5),
		Fee:   2,
	}, sk)

	raw := encoding.Encode(tx)
	got, err := DecodeTransaction(encoding.NewDecoder(raw))
	if err != nil {
		t.Fatalf("DecodeTransaction() error = %v", err)
	}
	if got.Hash() != tx.Hash() {
		t.Fatalf("decoded transaction hash %x != original %x", got.Hash(), tx.Hash())
	}
}

func TestUIDIsStablePerAccountAndNonce(t *testing.T) {
	_, src, _ := mustKeyPair(t)
	a := Transaction{Src: src, Nonce: 5, Data: RegularSend(src, 1)}
	b := Transaction{Src: src, Nonce: 5, Data: RegularSend(src, 2)}
	if a.UID() != b.UID() {
		t.Fatalf("UID() differs for two transactions sharing (src, nonce): %q != %q", a.UID(), b.UID())
	}

	c := Transaction{Src: src, Nonce: 6, Data: RegularSend(src, 1)}
	if a.UID() == c.UID() {
		t.Fatal("UID() collided across two different nonces")
	}
}
