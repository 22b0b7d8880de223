package database

import (
	"testing"

	"github.com/wtran29/ledgercore/foundation/blockchain/config"
	"github.com/wtran29/ledgercore/foundation/blockchain/kv"
)

func TestGetAccountSynthesizesTreasury(t *testing.T) {
	s := kv.NewMemStore()

	acc, err := GetAccount(s, Treasury)
	if err != nil {
		t.Fatalf("GetAccount(Treasury) error = %v", err)
	}
	if acc.Balance != Money(config.TotalSupply) || acc.Nonce != 0 {
		t.Fatalf("GetAccount(Treasury) = %+v; want balance %d, nonce 0", acc, config.TotalSupply)
	}
}

func TestGetAccountSynthesizesZeroForUnknownWallet(t *testing.T) {
	s := kv.NewMemStore()
	_, addr, _ := mustKeyPair(t)

	acc, err := GetAccount(s, addr)
	if err != nil {
		t.Fatalf("GetAccount(unknown) error = %v", err)
	}
	if acc.Balance != 0 || acc.Nonce != 0 {
		t.Fatalf("GetAccount(unknown) = %+v; want zero account", acc)
	}
}

func TestPutAccountOpIsReadBackByGetAccount(t *testing.T) {
	s := kv.NewMemStore()
	_, addr, _ := mustKeyPair(t)

	want := Account{Balance: 42, Nonce: 3}
	if err := s.Update([]kv.WriteOp{PutAccountOp(addr, want)}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := GetAccount(s, addr)
	if err != nil || got != want {
		t.Fatalf("GetAccount() = %+v, %v; want %+v, nil", got, err, want)
	}
}
