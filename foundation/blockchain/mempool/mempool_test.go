package mempool

import (
	"errors"
	"testing"

	"github.com/wtran29/ledgercore/foundation/blockchain/database"
	"github.com/wtran29/ledgercore/foundation/blockchain/signature"
)

func mustTx(t *testing.T, nonce uint32, amount database.Money) database.Transaction {
	t.Helper()
	pk, sk, err := signature.GenerateKeyPair(nil)
	if err != nil {
		t.Fatalf("GenerateKeyPair() error = %v", err)
	}
	src := database.NewPublicKeyAddress(pk)
	return database.Sign(database.Transaction{
		Src:   src,
		Nonce: nonce,
		Data:  database.RegularSend(src, amount),
		Fee:   1,
	}, sk)
}

func TestUpsertAdmitsValidTransaction(t *testing.T) {
	mp := New(signature.Ed25519Verifier{})
	tx := mustTx(t, 1, 10)

	if err := mp.Upsert(tx); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if mp.Count() != 1 {
		t.Fatalf("Count() = %d; want 1", mp.Count())
	}
}

func TestUpsertRejectsBadSignature(t *testing.T) {
	mp := New(signature.Ed25519Verifier{})
	tx := mustTx(t, 1, 10)
	tx.Nonce = 99 // mutate after signing

	if err := mp.Upsert(tx); !errors.Is(err, ErrTransactionInvalid) {
		t.Fatalf("Upsert() error = %v; want ErrTransactionInvalid", err)
	}
	if mp.Count() != 0 {
		t.Fatalf("Count() = %d; want 0 after a rejected upsert", mp.Count())
	}
}

func TestUpsertOverwritesSameUID(t *testing.T) {
	mp := New(signature.Ed25519Verifier{})
	pk, sk, _ := signature.GenerateKeyPair(nil)
	src := database.NewPublicKeyAddress(pk)

	first := database.Sign(database.Transaction{Src: src, Nonce: 1, Data: database.RegularSend(src, 1), Fee: 1}, sk)
	second := database.Sign(database.Transaction{Src: src, Nonce: 1, Data: database.RegularSend(src, 2), Fee: 1}, sk)

	if err := mp.Upsert(first); err != nil {
		t.Fatalf("Upsert(first) error = %v", err)
	}
	if err := mp.Upsert(second); err != nil {
		t.Fatalf("Upsert(second) error = %v", err)
	}
	if mp.Count() != 1 {
		t.Fatalf("Count() = %d; want 1 after resubmitting the same (src, nonce)", mp.Count())
	}
	got := mp.Transactions()
	if got[0].Data.Amount != 2 {
		t.Fatalf("Transactions()[0].Data.Amount = %d; want the later resubmission's amount 2", got[0].Data.Amount)
	}
}

func TestDeleteCommittedRemovesBlockTransactions(t *testing.T) {
	mp := New(signature.Ed25519Verifier{})
	tx1 := mustTx(t, 1, 10)
	tx2 := mustTx(t, 1, 20)

	if err := mp.Upsert(tx1); err != nil {
		t.Fatalf("Upsert(tx1) error = %v", err)
	}
	if err := mp.Upsert(tx2); err != nil {
		t.Fatalf("Upsert(tx2) error = %v", err)
	}

	blk := database.Block{Body: []database.Transaction{tx1}}
	mp.DeleteCommitted(blk)

	if mp.Count() != 1 {
		t.Fatalf("Count() = %d; want 1 after committing one of two pooled transactions", mp.Count())
	}
	remaining := mp.Transactions()
	if remaining[0].UID() != tx2.UID() {
		t.Fatalf("remaining transaction UID = %q; want %q", remaining[0].UID(), tx2.UID())
	}
}

func TestTransactionsSortedByUID(t *testing.T) {
	mp := New(signature.Ed25519Verifier{})
	a := mustTx(t, 1, 1)
	b := mustTx(t, 2, 2)

	if err := mp.Upsert(b); err != nil {
		t.Fatalf("Upsert(b) error = %v", err)
	}
	if err := mp.Upsert(a); err != nil {
		t.Fatalf("Upsert(a) error = %v", err)
	}

	got := mp.Transactions()
	if len(got) != 2 {
		t.Fatalf("Transactions() returned %d entries; want 2", len(got))
	}
	if got[0].UID() > got[1].UID() {
		t.Fatal("Transactions() is not sorted by UID")
	}
}
