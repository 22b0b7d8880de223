// Package mempool holds transactions that have passed shape validation
// but have not yet been committed in a block, keyed by their (account,
// nonce) identity so a resubmission overwrites rather than duplicates.
package mempool

import (
	"errors"
	"sort"
	"sync"

	"github.com/wtran29/ledgercore/foundation/blockchain/database"
	"github.com/wtran29/ledgercore/foundation/blockchain/signature"
	"github.com/wtran29/ledgercore/foundation/metrics"
)

// ErrTransactionInvalid is returned by Upsert when tx fails the
// stateless shape check: signature verification and transaction kind
// support. Nonce and balance are state-dependent and are re-checked by
// apply_tx when the transaction is actually drafted into a block, not
// here.
var ErrTransactionInvalid = errors.New("mempool: transaction invalid")

// Mempool is a RWMutex-guarded, UID-keyed set of candidate transactions.
type Mempool struct {
	mu       sync.RWMutex
	verifier signature.Verifier
	txs      map[string]database.Transaction
}

// New returns an empty Mempool that checks incoming transactions against
// verifier.
func New(verifier signature.Verifier) *Mempool {
	return &Mempool{
		verifier: verifier,
		txs:      make(map[string]database.Transaction),
	}
}

// Upsert admits tx if it passes the stateless shape check, replacing any
// prior transaction with the same UID.
func (mp *Mempool) Upsert(tx database.Transaction) error {
	if !tx.VerifySignature(mp.verifier) {
		return ErrTransactionInvalid
	}
	if tx.Data.Kind != database.TxRegularSend {
		return ErrTransactionInvalid
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.txs[tx.UID()] = tx
	metrics.MempoolSize.Set(float64(len(mp.txs)))
	metrics.TransactionsAccepted.Inc()
	return nil
}

// Delete removes a transaction by UID, typically once it has been
// committed in a block.
func (mp *Mempool) Delete(uid string) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	delete(mp.txs, uid)
	metrics.MempoolSize.Set(float64(len(mp.txs)))
}

// DeleteCommitted removes every transaction in blk.Body from the pool.
func (mp *Mempool) DeleteCommitted(blk database.Block) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	for _, tx := range blk.Body {
		delete(mp.txs, tx.UID())
	}
	metrics.MempoolSize.Set(float64(len(mp.txs)))
}

// Transactions returns a snapshot of the pool's contents sorted by UID,
// so two calls against an unchanged pool return identically-ordered
// slices.
func (mp *Mempool) Transactions() []database.Transaction {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	out := make([]database.Transaction, 0, len(mp.txs))
	for _, tx := range mp.txs {
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID() < out[j].UID() })
	return out
}

// Count returns the number of transactions currently pooled.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.txs)
}
