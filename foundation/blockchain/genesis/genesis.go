// Package genesis constructs the fixed genesis block every chain starts
// from and implements the difficulty-retargeting formula spec.md §9 left
// incomplete.
package genesis

import (
	"math/big"

	"github.com/wtran29/ledgercore/foundation/blockchain/database"
	"github.com/wtran29/ledgercore/foundation/blockchain/merkle"
	"github.com/wtran29/ledgercore/foundation/blockchain/signature"
)

// initialTarget is the genesis difficulty target: a generous threshold so
// blocks are cheap to mine on a single node. Drafted blocks copy the tip's
// target, and nothing in the core calls NextTarget, so this target is
// carried forward unchanged.
var initialTarget = signature.Hash32{
	0x00, 0x00, 0x0f, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
}

// Block is the fixed constant genesis block: number 0, the zero parent
// hash, and an empty body (merkle.RootOf of an empty body is hash("empty")
// per spec.md §4.B). The Treasury's full supply is never written as an
// account key; it is synthesized by database.GetAccount for as long as no
// transaction has touched Treasury.
func Block() database.Block {
	body := []database.Transaction{}
	header := database.Header{
		Number:     0,
		ParentHash: signature.ZeroHash,
		BlockRoot:  merkle.RootOf(body),
		ProofOfWork: database.ProofOfWork{
			Timestamp: 0,
			Target:    initialTarget,
			Nonce:     0,
		},
	}
	return database.Block{Header: header, Body: body}
}

// NextTarget resolves spec.md §9 open question 1: the retargeting formula
// computed a diff_change factor and then discarded it. The redesigned rule
// is:
//
//	new_target := old_target * (actual_interval / (BlockTime * DifficultyCalcInterval))
//
// clamped to [old_target/4, old_target*4] so a single run of adversarial
// timestamps can't swing difficulty by more than 4x in one retarget, the
// same clamp bitcoin-style chains use.
func NextTarget(oldTarget signature.Hash32, actualIntervalSeconds uint64, blockTime, calcInterval uint64) signature.Hash32 {
	old := new(big.Int).SetBytes(oldTarget[:])

	expected := new(big.Int).SetUint64(blockTime * calcInterval)
	if expected.Sign() == 0 {
		return oldTarget
	}
	actual := new(big.Int).SetUint64(actualIntervalSeconds)

	next := new(big.Int).Mul(old, actual)
	next.Div(next, expected)

	min := new(big.Int).Div(old, big.NewInt(4))
	max := new(big.Int).Mul(old, big.NewInt(4))
	if next.Cmp(min) < 0 {
		next = min
	}
	if next.Cmp(max) > 0 {
		next = max
	}

	return clampToHash(next)
}

// clampToHash renders a big.Int back into a 32-byte big-endian target,
// saturating at the maximum representable 256-bit value instead of
// overflowing.
func clampToHash(v *big.Int) signature.Hash32 {
	var out signature.Hash32
	maxSpace := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	if v.Cmp(maxSpace) > 0 {
		v = maxSpace
	}
	if v.Sign() < 0 {
		v = big.NewInt(0)
	}
	b := v.Bytes()
	copy(out[32-len(b):], b)
	return out
}
