package database

import (
	"bytes"
	"testing"

	"github.com/wtran29/ledgercore/foundation/blockchain/signature"
)

func TestMeetsTargetAgreesWithPower(t *testing.T) {
	var key signature.Hash32
	copy(key[:], []byte("test-key"))

	h := Header{
		Number: 1,
		ProofOfWork: ProofOfWork{
			Target: signature.Hash32{
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
			},
		},
	}
	if !h.MeetsTarget(key) {
		t.Fatal("MeetsTarget() = false against a target that accepts every hash")
	}
	if h.Power(key) == 0 {
		t.Fatal("Power() = 0 for a header that meets an easy target")
	}
}

func TestMeetsTargetRejectsZeroTarget(t *testing.T) {
	var key signature.Hash32
	h := Header{Number: 1}
	if h.MeetsTarget(key) {
		t.Fatal("MeetsTarget() = true against the zero target, which no hash can satisfy")
	}
}

func TestHeaderHashChangesWithNonce(t *testing.T) {
	h1 := Header{Number: 1, ProofOfWork: ProofOfWork{Nonce: 1}}
	h2 := Header{Number: 1, ProofOfWork: ProofOfWork{Nonce: 2}}
	if h1.Hash() == h2.Hash() {
		t.Fatal("Hash() did not change when Nonce changed")
	}
}

func TestHarderHashHasMorePower(t *testing.T) {
	var key signature.Hash32
	easy := Header{Number: 1, ProofOfWork: ProofOfWork{Nonce: 1}}
	hard := Header{Number: 1, ProofOfWork: ProofOfWork{Nonce: 2}}

	easyHash := easy.powHash(key)
	hardHash := hard.powHash(key)
	if bytes.Compare(hardHash[:], easyHash[:]) >= 0 {
		// swap so "hard" always names the numerically smaller hash
		easy, hard = hard, easy
	}
	if easy.Power(key) >= hard.Power(key) {
		t.Fatalf("Power() did not increase for a numerically smaller (harder) hash")
	}
}
