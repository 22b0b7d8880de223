package state

import (
	"sync"

	"github.com/wtran29/ledgercore/foundation/blockchain/database"
	"github.com/wtran29/ledgercore/foundation/blockchain/genesis"
	"github.com/wtran29/ledgercore/foundation/blockchain/kv"
	"github.com/wtran29/ledgercore/foundation/blockchain/signature"
	"github.com/wtran29/ledgercore/foundation/metrics"
)

// EventHandler is notified of committed and rolled-back blocks. A nil
// handler is valid; every call site checks before invoking it.
type EventHandler func(v string, args ...any)

// Blockchain is the single-writer front door onto the ledger core: a
// backing kv.Store plus the RWMutex that serialises every mutating
// operation (Extend) against every read (GetAccount, GetHeight, ...).
// Readers never block each other; a writer blocks everyone.
type Blockchain struct {
	mu        sync.RWMutex
	store     kv.Store
	verifier  signature.Verifier
	evHandler EventHandler
}

// New opens a Blockchain over store, writing the genesis block and its
// bootstrap journal entries if store is empty. verifier is the signature
// scheme every transaction is checked against; a nil evHandler is fine.
func New(store kv.Store, verifier signature.Verifier, evHandler EventHandler) (*Blockchain, error) {
	height, err := heightOf(store)
	if err != nil {
		return nil, err
	}

	bc := &Blockchain{store: store, verifier: verifier, evHandler: evHandler}

	if height == 0 {
		if err := bc.bootstrapGenesis(); err != nil {
			return nil, err
		}
		height = 1
	}
	metrics.ChainHeight.Set(float64(height))
	if power, err := powerOf(store, height-1); err == nil {
		metrics.ChainPower.Set(float64(power))
	}
	return bc, nil
}

// bootstrapGenesis commits the genesis block through the same applier
// every later block goes through (its height == 0 branch skips the
// parent/target checks that have nothing to check against yet), so
// genesis gets a rollback_0 journal entry exactly like every other
// block. Without it, height's invariant of one rollback_* entry per
// block_* entry would be off by one from the very first block.
func (bc *Blockchain) bootstrapGenesis() error {
	return applyBlockOn(bc.store, genesis.Block(), false, bc.verifier)
}

func (bc *Blockchain) emit(v string, args ...any) {
	if bc.evHandler != nil {
		bc.evHandler(v, args...)
	}
}

// GetAccount returns addr's current account state.
func (bc *Blockchain) GetAccount(addr database.Address) (database.Account, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return database.GetAccount(bc.store, addr)
}

// GetHeight returns the number of blocks committed, genesis included.
func (bc *Blockchain) GetHeight() (uint64, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return heightOf(bc.store)
}

// GetBlock returns the committed block at the given height.
func (bc *Blockchain) GetBlock(i uint64) (database.Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return blockOf(bc.store, i)
}

// GetBlocks returns the committed blocks in [from, min(to, height)) — a
// caller asking past the current tip gets whatever prefix exists rather
// than an error, since it has no way to know the remote's exact height.
func (bc *Blockchain) GetBlocks(from, to uint64) ([]database.Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if to < from {
		return nil, ErrInvalidBlockNumber
	}
	height, err := heightOf(bc.store)
	if err != nil {
		return nil, err
	}
	if to > height {
		to = height
	}
	if to < from {
		return []database.Block{}, nil
	}

	blocks := make([]database.Block, 0, to-from)
	for i := from; i < to; i++ {
		blk, err := blockOf(bc.store, i)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, blk)
	}
	return blocks, nil
}

// GetHeaders returns the headers of the committed blocks in [from, to).
func (bc *Blockchain) GetHeaders(from, to uint64) ([]database.Header, error) {
	blocks, err := bc.GetBlocks(from, to)
	if err != nil {
		return nil, err
	}
	headers := make([]database.Header, len(blocks))
	for i, blk := range blocks {
		headers[i] = blk.Header
	}
	return headers, nil
}

// GetPower returns cumulative PoW power through height i.
func (bc *Blockchain) GetPower(i uint64) (uint64, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return powerOf(bc.store, i)
}

// PowKey returns the PoW key a block at the given height must be hashed
// against to satisfy its difficulty target.
func (bc *Blockchain) PowKey(height uint64) (signature.Hash32, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return powKeyOf(bc.store, height)
}

// WillExtend reports whether adopting headers starting at from would
// raise the chain's cumulative power. It never mutates the store.
func (bc *Blockchain) WillExtend(from uint64, headers []database.Header) (bool, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return willExtendOn(bc.store, from, headers)
}

// Extend replaces every block from height from onward with blocks,
// atomically. It must be preceded by a WillExtend check by the caller;
// Extend itself re-validates every header and body before committing.
func (bc *Blockchain) Extend(from uint64, blocks []database.Block) error {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	prevHeight, _ := heightOf(bc.store)

	if err := extendOn(bc.store, from, blocks, bc.verifier); err != nil {
		metrics.ExtendRejections.WithLabelValues(err.Error()).Inc()
		return err
	}

	newHeight, err := heightOf(bc.store)
	if err != nil {
		return err
	}
	if from < prevHeight {
		metrics.BlocksRolledBack.Add(float64(prevHeight - from))
	}
	metrics.BlocksApplied.Add(float64(newHeight - from))
	metrics.ChainHeight.Set(float64(newHeight))
	if power, err := powerOf(bc.store, newHeight-1); err == nil {
		metrics.ChainPower.Set(float64(power))
	}

	bc.emit("chain extended", "from", from, "count", len(blocks))
	return nil
}

// DraftBlock builds a candidate block on top of the current tip from
// mempool, without committing it. The caller is responsible for mining
// (finding a Nonce satisfying MeetsTarget) and then calling Extend.
func (bc *Blockchain) DraftBlock(mempool []database.Transaction) (database.Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return draftBlockOn(bc.store, mempool, bc.verifier)
}

// Close releases the backing store.
func (bc *Blockchain) Close() error {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	return bc.store.Close()
}
