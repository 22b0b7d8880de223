package database

import (
	"errors"

	"golang.org/x/crypto/ed25519"

	"github.com/wtran29/ledgercore/foundation/blockchain/encoding"
	"github.com/wtran29/ledgercore/foundation/blockchain/signature"
)

// TxKind tags the TransactionData variant. Only TxRegularSend is executed
// by the core; the others are recognised, decodable tags that apply_tx
// rejects fail-closed until contract execution is specified (spec.md §9).
type TxKind uint8

const (
	TxRegularSend TxKind = iota
	TxRegisterValidator
	TxCreateContract
	TxDepositWithdraw
	TxUpdate
)

// ErrInvalidTransactionData is returned when a TransactionData tag isn't
// one of the recognised TxKind values.
var ErrInvalidTransactionData = errors.New("database: invalid transaction data tag")

// TransactionData is the tagged payload of a Transaction. RegularSend is
// the only case with a typed payload in scope for the core (Dst, Amount);
// every other recognised kind carries an opaque, length-prefixed Raw
// payload that a future contract-execution engine can interpret without
// this version of the core needing to understand it.
type TransactionData struct {
	Kind   TxKind
	Dst    Address // meaningful only when Kind == TxRegularSend
	Amount Money   // meaningful only when Kind == TxRegularSend
	Raw    []byte  // opaque payload for every other kind
}

// RegularSend constructs a TxRegularSend payload.
func RegularSend(dst Address, amount Money) TransactionData {
	return TransactionData{Kind: TxRegularSend, Dst: dst, Amount: amount}
}

// Encode writes the tagged canonical form.
func (d TransactionData) Encode(enc *encoding.Encoder) {
	enc.WriteTag(byte(d.Kind))
	if d.Kind == TxRegularSend {
		d.Dst.Encode(enc)
		enc.WriteU64(uint64(d.Amount))
		return
	}
	enc.WriteBytes(d.Raw)
}

// DecodeTransactionData reads a TransactionData written by
// TransactionData.Encode.
func DecodeTransactionData(dec *encoding.Decoder) (TransactionData, error) {
	tag, err := dec.ReadTag()
	if err != nil {
		return TransactionData{}, err
	}
	kind := TxKind(tag)
	if kind > TxUpdate {
		return TransactionData{}, ErrInvalidTransactionData
	}
	if kind == TxRegularSend {
		dst, err := DecodeAddress(dec)
		if err != nil {
			return TransactionData{}, err
		}
		amount, err := dec.ReadU64()
		if err != nil {
			return TransactionData{}, err
		}
		return RegularSend(dst, Money(amount)), nil
	}
	raw, err := dec.ReadBytes()
	if err != nil {
		return TransactionData{}, err
	}
	return TransactionData{Kind: kind, Raw: raw}, nil
}

// Transaction is one signed, priced state transition request.
type Transaction struct {
	Src   Address
	Nonce uint32
	Data  TransactionData
	Fee   Money
	Sig   Signature
}

// UID returns a stable per-(account, nonce) key, used by the mempool to
// dedupe and overwrite resubmissions of the same logical transaction.
func (tx Transaction) UID() string {
	return tx.Src.String() + "_" + uint32ToString(tx.Nonce)
}

func uint32ToString(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// Encode writes the canonical form: src, nonce, data, fee, sig in that
// fixed order.
func (tx Transaction) Encode(enc *encoding.Encoder) {
	tx.Src.Encode(enc)
	enc.WriteU32(tx.Nonce)
	tx.Data.Encode(enc)
	enc.WriteU64(uint64(tx.Fee))
	tx.Sig.Encode(enc)
}

// DecodeTransaction reads a Transaction written by Transaction.Encode.
func DecodeTransaction(dec *encoding.Decoder) (Transaction, error) {
	src, err := DecodeAddress(dec)
	if err != nil {
		return Transaction{}, err
	}
	nonce, err := dec.ReadU32()
	if err != nil {
		return Transaction{}, err
	}
	data, err := DecodeTransactionData(dec)
	if err != nil {
		return Transaction{}, err
	}
	fee, err := dec.ReadU64()
	if err != nil {
		return Transaction{}, err
	}
	sig, err := DecodeSignature(dec)
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{Src: src, Nonce: nonce, Data: data, Fee: Money(fee), Sig: sig}, nil
}

// unsigned returns a copy of tx with Sig forced to Unsigned, the pre-image
// over which both signing and verification operate.
func (tx Transaction) unsigned() Transaction {
	u := tx
	u.Sig = Unsigned
	return u
}

// SigningHash is the canonical hash of tx with its signature field cleared.
// Sign and VerifySignature operate on the unsigned encoding itself (the
// pre-image of this hash), not on the hash.
func (tx Transaction) SigningHash() signature.Hash32 {
	return signature.Hash(tx.unsigned())
}

// Hash is tx's canonical content hash (Merkle leaf hash), computed over the
// full transaction including whatever signature it carries.
func (tx Transaction) Hash() signature.Hash32 {
	return signature.Hash(tx)
}

// VerifySignature checks tx's signature. src == Treasury bypasses
// verification entirely (used only for block rewards/genesis, per spec.md
// §9 note 2 — Treasury has no backing key to sign with).
func (tx Transaction) VerifySignature(v signature.Verifier) bool {
	if tx.Src.Kind == AddressKindTreasury {
		return true
	}
	if tx.Sig.Kind != SignatureSigned {
		return false
	}
	preimage := encoding.Encode(tx.unsigned())
	return v.Verify(tx.Src.PK, preimage, tx.Sig.Bytes)
}

// Sign produces a Signed Transaction from an unsigned one.
func Sign(tx Transaction, sk ed25519.PrivateKey) Transaction {
	preimage := encoding.Encode(tx.unsigned())
	signed := tx
	signed.Sig = NewSignature(signature.Sign(sk, preimage))
	return signed
}
