// Package state implements the core business rules: the transaction
// applier, the block applier and its journal, and the fork-choice and
// chain-extension protocol. Every mutating algorithm in this file is
// written once against the kv.Store interface and reused for both
// speculative execution (against a kv.Mirror) and real commits (against
// the backing store) — see spec.md §9's polymorphism design note.
package state

import (
	"sort"

	"github.com/wtran29/ledgercore/foundation/blockchain/config"
	"github.com/wtran29/ledgercore/foundation/blockchain/database"
	"github.com/wtran29/ledgercore/foundation/blockchain/encoding"
	"github.com/wtran29/ledgercore/foundation/blockchain/kv"
	"github.com/wtran29/ledgercore/foundation/blockchain/merkle"
	"github.com/wtran29/ledgercore/foundation/blockchain/signature"
)

// heightOf returns the number of blocks committed to s.
func heightOf(s kv.Store) (uint64, error) {
	b, ok, err := s.Get(database.HeightKey())
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return database.DecodeU64(b)
}

// blockOf returns the block at height i, distinguishing an out-of-range
// query (ErrBlockNotFound, caller misuse) from a missing key inside the
// tracked range (ErrInconsistency, store corruption).
func blockOf(s kv.Store, i uint64) (database.Block, error) {
	height, err := heightOf(s)
	if err != nil {
		return database.Block{}, err
	}
	if i >= height {
		return database.Block{}, ErrBlockNotFound
	}
	b, ok, err := s.Get(database.BlockKey(i))
	if err != nil {
		return database.Block{}, err
	}
	if !ok {
		return database.Block{}, ErrInconsistency
	}
	return database.DecodeBlock(b)
}

// powerOf returns cumulative power through height i.
func powerOf(s kv.Store, i uint64) (uint64, error) {
	b, ok, err := s.Get(database.PowerKey(i))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrInconsistency
	}
	return database.DecodeU64(b)
}

// powKeyOf implements the PoW key schedule: a fixed base key below
// PowKeyBaseHeight, otherwise the header hash of a periodically-rotating
// buried past block.
func powKeyOf(s kv.Store, index uint64) (signature.Hash32, error) {
	if index < config.PowKeyBaseHeight {
		return config.PowBaseKey, nil
	}
	ref := ((index - config.PowKeyChangeDelay) / config.PowKeyChangeInterval) * config.PowKeyChangeInterval
	blk, err := blockOf(s, ref)
	if err != nil {
		return signature.Hash32{}, err
	}
	return blk.Header.Hash(), nil
}

// addPowerChecked adds two power accumulators, saturating instead of
// wrapping on overflow — cumulative power is a protocol invariant, not a
// place to silently wrap.
func addPowerChecked(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return ^uint64(0)
	}
	return sum
}

// applyTxOn validates and applies one transaction against s, emitting the
// account writes as a single atomic batch. See spec.md §4.C.
func applyTxOn(s kv.Store, tx database.Transaction, verifier signature.Verifier) error {
	if !tx.VerifySignature(verifier) {
		return ErrSignatureInvalid
	}
	if tx.Data.Kind != database.TxRegularSend {
		return ErrUnsupportedTransaction
	}

	accSrc, err := database.GetAccount(s, tx.Src)
	if err != nil {
		return err
	}
	if tx.Nonce != accSrc.Nonce+1 {
		return ErrInvalidTransactionNonce
	}

	total, err := database.AddMoney(tx.Data.Amount, tx.Fee)
	if err != nil {
		return err
	}
	if accSrc.Balance < total {
		return ErrBalanceInsufficient
	}

	selfSend := tx.Data.Dst.Equal(tx.Src)

	charge := tx.Fee
	if !selfSend {
		charge, err = database.AddMoney(charge, tx.Data.Amount)
		if err != nil {
			return err
		}
	}
	accSrc.Balance, err = database.SubMoney(accSrc.Balance, charge)
	if err != nil {
		return err
	}
	accSrc.Nonce++

	var ops []kv.WriteOp
	if !selfSend {
		accDst, err := database.GetAccount(s, tx.Data.Dst)
		if err != nil {
			return err
		}
		accDst.Balance, err = database.AddMoney(accDst.Balance, tx.Data.Amount)
		if err != nil {
			return err
		}
		ops = append(ops, database.PutAccountOp(tx.Data.Dst, accDst))
	}
	ops = append(ops, database.PutAccountOp(tx.Src, accSrc))

	return s.Update(ops)
}

// applyBlockOn validates a block's header invariants (skipping the PoW
// check in draft mode), executes its body via applyTxOn against a RAM
// fork, and commits the fork plus journal/index entries to s atomically.
// See spec.md §4.D.
func applyBlockOn(s kv.Store, blk database.Block, draft bool, verifier signature.Verifier) error {
	height, err := heightOf(s)
	if err != nil {
		return err
	}

	powKey := config.PowBaseKey
	if height > 0 {
		powKey, err = powKeyOf(s, blk.Header.Number)
		if err != nil {
			return err
		}
	}

	var cumulativePower uint64
	if height > 0 {
		last, err := blockOf(s, height-1)
		if err != nil {
			return err
		}

		if !draft && !blk.Header.MeetsTarget(powKey) {
			return ErrDifficultyTargetUnmet
		}
		if blk.Header.Number != height {
			return ErrInvalidBlockNumber
		}
		if blk.Header.ParentHash != last.Header.Hash() {
			return ErrInvalidParentHash
		}
		if blk.Header.BlockRoot != merkle.RootOf(blk.Body) {
			return ErrInvalidMerkleRoot
		}

		cumulativePower, err = powerOf(s, height-1)
		if err != nil {
			return err
		}
	}

	fork := kv.NewMirror(s)
	for _, tx := range blk.Body {
		if err := applyTxOn(fork, tx, verifier); err != nil {
			return err
		}
	}
	changes := fork.ToOps()

	changes = append(changes, kv.Put(database.HeightKey(), database.EncodeU64(height+1)))

	blockPower := blk.Header.Power(powKey)
	newPower := addPowerChecked(cumulativePower, blockPower)
	changes = append(changes, kv.Put(database.PowerKey(blk.Header.Number), database.EncodeU64(newPower)))

	// The inverse must be computed against the real store s before the
	// rollback/block/merkle entries themselves are appended, so that
	// replaying it restores height and removes the power_h key exactly.
	rollbackOps, err := s.RollbackOf(changes)
	if err != nil {
		return err
	}
	changes = append(changes, kv.Put(database.RollbackKey(blk.Header.Number), kv.EncodeOps(rollbackOps)))
	changes = append(changes, kv.Put(database.BlockKey(blk.Header.Number), database.EncodeBlock(blk)))
	changes = append(changes, kv.Put(database.MerkleKey(blk.Header.Number), encoding.Encode(blk.MerkleTree())))

	return s.Update(changes)
}

// rollbackBlockOn undoes exactly the most recently committed block. See
// spec.md §4.F.
func rollbackBlockOn(s kv.Store) error {
	height, err := heightOf(s)
	if err != nil {
		return err
	}
	if height == 0 {
		return ErrInconsistency
	}
	last := height - 1

	raw, ok, err := s.Get(database.RollbackKey(last))
	if err != nil {
		return err
	}
	if !ok {
		return ErrInconsistency
	}
	ops, err := kv.DecodeOps(raw)
	if err != nil {
		return err
	}

	ops = append(ops,
		kv.Del(database.BlockKey(last)),
		kv.Del(database.MerkleKey(last)),
		kv.Del(database.RollbackKey(last)),
	)
	return s.Update(ops)
}

// willExtendOn is the pure, non-mutating fork-choice predicate: would
// committing headers from height from raise cumulative power above what s
// currently has. See spec.md §4.E.
func willExtendOn(s kv.Store, from uint64, headers []database.Header) (bool, error) {
	height, err := heightOf(s)
	if err != nil {
		return false, err
	}
	if from == 0 {
		return false, ErrExtendFromGenesis
	}
	if from > height {
		return false, ErrExtendFromFuture
	}

	currentPower, err := powerOf(s, height-1)
	if err != nil {
		return false, err
	}

	newPower, err := powerOf(s, from-1)
	if err != nil {
		return false, err
	}
	last, err := blockOf(s, from-1)
	if err != nil {
		return false, err
	}
	lastHeader := last.Header

	for _, h := range headers {
		powKey, err := powKeyOf(s, h.Number)
		if err != nil {
			return false, err
		}
		if !h.MeetsTarget(powKey) {
			return false, ErrDifficultyTargetUnmet
		}
		if h.Number != lastHeader.Number+1 {
			return false, ErrInvalidBlockNumber
		}
		if h.ParentHash != lastHeader.Hash() {
			return false, ErrInvalidParentHash
		}
		newPower = addPowerChecked(newPower, h.Power(powKey))
		lastHeader = h
	}

	return newPower > currentPower, nil
}

// extendOn is the mutating chain-extension commit: fork s in RAM, roll
// back to from, replay blocks, and commit the fork as one batch — or
// discard it and leave s untouched on any failure. See spec.md §4.E.
func extendOn(s kv.Store, from uint64, blocks []database.Block, verifier signature.Verifier) error {
	height, err := heightOf(s)
	if err != nil {
		return err
	}
	if from == 0 {
		return ErrExtendFromGenesis
	}
	if from > height {
		return ErrExtendFromFuture
	}

	fork := kv.NewMirror(s)
	for {
		h, err := heightOf(fork)
		if err != nil {
			return err
		}
		if h <= from {
			break
		}
		if err := rollbackBlockOn(fork); err != nil {
			return err
		}
	}

	for _, blk := range blocks {
		if err := applyBlockOn(fork, blk, false, verifier); err != nil {
			return err
		}
	}

	return s.Update(fork.ToOps())
}

// selectTransactionsOn implements spec.md §4.G step 1: sort candidates by
// ascending nonce, greedily apply each on a RAM fork, keep the ones that
// apply, drop the rest silently. This is a best-effort filter, not a
// fee-maximising packer.
func selectTransactionsOn(s kv.Store, txs []database.Transaction, verifier signature.Verifier) []database.Transaction {
	sorted := append([]database.Transaction(nil), txs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Nonce < sorted[j].Nonce })

	fork := kv.NewMirror(s)
	result := make([]database.Transaction, 0, len(sorted))
	for _, tx := range sorted {
		if err := applyTxOn(fork, tx, verifier); err == nil {
			result = append(result, tx)
		}
	}
	return result
}

// draftBlockOn builds a candidate block: select mempool transactions,
// link it to the current tip, inherit the tip's difficulty target, then
// run applyBlockOn in draft mode against a fresh fork to confirm internal
// consistency before handing it to a miner. See spec.md §4.G.
func draftBlockOn(s kv.Store, mempool []database.Transaction, verifier signature.Verifier) (database.Block, error) {
	height, err := heightOf(s)
	if err != nil {
		return database.Block{}, err
	}
	last, err := blockOf(s, height-1)
	if err != nil {
		return database.Block{}, err
	}

	body := selectTransactionsOn(s, mempool, verifier)

	blk := database.Block{
		Header: database.Header{
			Number:     height,
			ParentHash: last.Header.Hash(),
			BlockRoot:  merkle.RootOf(body),
			ProofOfWork: database.ProofOfWork{
				Target: last.Header.ProofOfWork.Target,
			},
		},
		Body: body,
	}

	if err := applyBlockOn(kv.NewMirror(s), blk, true, verifier); err != nil {
		return database.Block{}, err
	}
	return blk, nil
}
