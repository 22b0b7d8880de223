package database

import "fmt"

// HeightKey is the key holding the number of blocks committed.
func HeightKey() string {
	return "height"
}

// BlockKey is the key holding the block at the given height, zero-padded
// to 10 decimal digits per the wire contract with the KV store.
func BlockKey(height uint64) string {
	return fmt.Sprintf("block_%010d", height)
}

// MerkleKey is the key holding the cached Merkle tree of the block at the
// given height.
func MerkleKey(height uint64) string {
	return fmt.Sprintf("merkle_%010d", height)
}

// RollbackKey is the key holding the journal entry that undoes the block
// at the given height.
func RollbackKey(height uint64) string {
	return fmt.Sprintf("rollback_%010d", height)
}

// PowerKey is the key holding cumulative PoW power through the given
// height.
func PowerKey(height uint64) string {
	return fmt.Sprintf("power_%010d", height)
}

// AccountKey is the key holding an address's account state.
func AccountKey(addr Address) string {
	return "account_" + addr.String()
}
