package genesis

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/wtran29/ledgercore/foundation/blockchain/signature"
)

func TestBlockIsFixedAndSelfConsistent(t *testing.T) {
	a := Block()
	b := Block()

	if a.Header.Number != 0 {
		t.Fatalf("Block().Header.Number = %d; want 0", a.Header.Number)
	}
	if a.Header.ParentHash != signature.ZeroHash {
		t.Fatal("Block().Header.ParentHash != ZeroHash")
	}
	if len(a.Body) != 0 {
		t.Fatalf("Block().Body has %d transactions; want 0", len(a.Body))
	}
	if a.Header.Hash() != b.Header.Hash() {
		t.Fatal("Block() is not deterministic: two calls produced different hashes")
	}
}

func TestNextTargetHoldsSteadyOnSchedule(t *testing.T) {
	old := signature.Hash32{0x00, 0x00, 0x0f, 0xff}
	const blockTime, interval = uint64(60), uint64(64)

	got := NextTarget(old, blockTime*interval, blockTime, interval)
	if got != old {
		t.Fatalf("NextTarget() on-schedule = %x; want unchanged %x", got, old)
	}
}

func TestNextTargetLoosensWhenBlocksAreSlow(t *testing.T) {
	old := signature.Hash32{0x00, 0x00, 0x0f, 0xff}
	const blockTime, interval = uint64(60), uint64(64)

	// Blocks took twice as long as expected: target should loosen (grow).
	got := NextTarget(old, 2*blockTime*interval, blockTime, interval)
	oldInt := new(big.Int).SetBytes(old[:])
	gotInt := new(big.Int).SetBytes(got[:])
	if gotInt.Cmp(oldInt) <= 0 {
		t.Fatalf("NextTarget() did not loosen for a slow interval: old=%x got=%x", old, got)
	}
}

func TestNextTargetClampsToFourX(t *testing.T) {
	old := signature.Hash32{0x00, 0x00, 0x0f, 0xff}
	const blockTime, interval = uint64(60), uint64(64)

	// An enormous actual interval would ask for a much-looser-than-4x target.
	got := NextTarget(old, 1000*blockTime*interval, blockTime, interval)

	oldInt := new(big.Int).SetBytes(old[:])
	max := new(big.Int).Mul(oldInt, big.NewInt(4))
	gotInt := new(big.Int).SetBytes(got[:])
	if gotInt.Cmp(max) > 0 {
		t.Fatalf("NextTarget() exceeded the 4x clamp: got=%x max=%x", got, max)
	}
}

func TestNextTargetTightensAndClampsToQuarter(t *testing.T) {
	old := signature.Hash32{0x00, 0x00, 0x0f, 0xff}
	const blockTime, interval = uint64(60), uint64(64)

	// A near-zero actual interval asks for a much-tighter-than-1/4 target.
	got := NextTarget(old, 1, blockTime, interval)

	oldInt := new(big.Int).SetBytes(old[:])
	min := new(big.Int).Div(oldInt, big.NewInt(4))
	gotInt := new(big.Int).SetBytes(got[:])
	if gotInt.Cmp(min) < 0 {
		t.Fatalf("NextTarget() exceeded the 1/4 clamp: got=%x min=%x", got, min)
	}
	if bytes.Equal(got[:], old[:]) {
		t.Fatal("NextTarget() did not tighten for a very fast interval")
	}
}
