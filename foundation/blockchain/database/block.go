package database

import (
	"github.com/wtran29/ledgercore/foundation/blockchain/encoding"
	"github.com/wtran29/ledgercore/foundation/blockchain/merkle"
)

// Block is a header plus the ordered transaction sequence it commits to.
// merkle.RootOf(body) == header.BlockRoot is an invariant on every stored
// block.
type Block struct {
	Header Header
	Body   []Transaction
}

// MerkleTree builds the cached Merkle tree over b's body.
func (b Block) MerkleTree() merkle.Tree {
	return merkle.Build(b.Body)
}

// Encode writes the canonical form: header, then a u32 transaction count
// and each transaction in order.
func (b Block) Encode(enc *encoding.Encoder) {
	b.Header.Encode(enc)
	enc.WriteU32(uint32(len(b.Body)))
	for _, tx := range b.Body {
		tx.Encode(enc)
	}
}

// EncodeBlock returns b's canonical byte encoding, the form stored under
// block_{NNNNNNNNNN} keys.
func EncodeBlock(b Block) []byte {
	return encoding.Encode(b)
}

// DecodeBlock reads a Block written by EncodeBlock.
func DecodeBlock(raw []byte) (Block, error) {
	dec := encoding.NewDecoder(raw)
	header, err := DecodeHeader(dec)
	if err != nil {
		return Block{}, err
	}
	n, err := dec.ReadU32()
	if err != nil {
		return Block{}, err
	}
	body := make([]Transaction, n)
	for i := range body {
		tx, err := DecodeTransaction(dec)
		if err != nil {
			return Block{}, err
		}
		body[i] = tx
	}
	return Block{Header: header, Body: body}, nil
}
