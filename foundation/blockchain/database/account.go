package database

import (
	"github.com/wtran29/ledgercore/foundation/blockchain/config"
	"github.com/wtran29/ledgercore/foundation/blockchain/encoding"
	"github.com/wtran29/ledgercore/foundation/blockchain/kv"
)

// Account is an address's balance and transaction nonce.
type Account struct {
	Balance Money
	Nonce   uint32
}

// Encode writes the canonical account form: balance then nonce.
func (a Account) Encode(enc *encoding.Encoder) {
	enc.WriteU64(uint64(a.Balance))
	enc.WriteU32(a.Nonce)
}

// DecodeAccount reads an Account written by Account.Encode.
func DecodeAccount(dec *encoding.Decoder) (Account, error) {
	balance, err := dec.ReadU64()
	if err != nil {
		return Account{}, err
	}
	nonce, err := dec.ReadU32()
	if err != nil {
		return Account{}, err
	}
	return Account{Balance: Money(balance), Nonce: nonce}, nil
}

// GetAccount reads addr's account from s. A read of a nonexistent account
// key synthesizes {balance: TotalSupply, nonce: 0} for Treasury and
// {balance: 0, nonce: 0} for everyone else — this is how money is minted
// into the genesis state without a special transaction.
func GetAccount(s kv.Store, addr Address) (Account, error) {
	b, ok, err := s.Get(AccountKey(addr))
	if err != nil {
		return Account{}, err
	}
	if !ok {
		if addr.Kind == AddressKindTreasury {
			return Account{Balance: Money(config.TotalSupply), Nonce: 0}, nil
		}
		return Account{}, nil
	}
	return DecodeAccount(encoding.NewDecoder(b))
}

// PutAccountOp builds the WriteOp that persists addr's account.
func PutAccountOp(addr Address, acc Account) kv.WriteOp {
	return kv.Put(AccountKey(addr), encoding.Encode(acc))
}
