// Package merkle builds the binary Merkle tree over a block's transaction
// sequence used to compute and cache a block's BlockRoot.
package merkle

import (
	"github.com/wtran29/ledgercore/foundation/blockchain/encoding"
	"github.com/wtran29/ledgercore/foundation/blockchain/signature"
)

// Hashable is implemented by anything that can be a Merkle leaf.
type Hashable interface {
	Hash() signature.Hash32
}

// Tree is the cached Merkle tree of a block's body: the leaf hashes plus
// the computed root. Storing the leaves alongside the root lets the node
// skip re-hashing every transaction on header-only queries; it must always
// stay consistent with the block body it was built from.
type Tree struct {
	Leaves []signature.Hash32
	Root   signature.Hash32
}

// Build constructs the Merkle tree over items in order.
func Build[T Hashable](items []T) Tree {
	leaves := make([]signature.Hash32, len(items))
	for i, it := range items {
		leaves[i] = it.Hash()
	}
	return Tree{Leaves: leaves, Root: computeRoot(leaves)}
}

// RootOf is a convenience for callers that only need the root.
func RootOf[T Hashable](items []T) signature.Hash32 {
	return Build(items).Root
}

// computeRoot implements the odd-level duplication rule: at every level
// with an odd node count, the last node is duplicated before pairing. The
// root of an empty body is hash("empty").
func computeRoot(leaves []signature.Hash32) signature.Hash32 {
	if len(leaves) == 0 {
		return signature.HashBytes([]byte("empty"))
	}

	level := append([]signature.Hash32(nil), leaves...)
	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]signature.Hash32, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			combined := make([]byte, 0, 64)
			combined = append(combined, level[i][:]...)
			combined = append(combined, level[i+1][:]...)
			next = append(next, signature.HashBytes(combined))
		}
		level = next
	}
	return level[0]
}

// Encode writes the cached tree's canonical form: leaf count, each leaf
// hash in order, then the root.
func (t Tree) Encode(enc *encoding.Encoder) {
	enc.WriteU32(uint32(len(t.Leaves)))
	for _, l := range t.Leaves {
		enc.WriteFixed(l[:])
	}
	enc.WriteFixed(t.Root[:])
}

// DecodeTree reads a Tree written by Tree.Encode.
func DecodeTree(dec *encoding.Decoder) (Tree, error) {
	n, err := dec.ReadU32()
	if err != nil {
		return Tree{}, err
	}
	leaves := make([]signature.Hash32, n)
	for i := range leaves {
		b, err := dec.ReadFixed(32)
		if err != nil {
			return Tree{}, err
		}
		copy(leaves[i][:], b)
	}
	rootB, err := dec.ReadFixed(32)
	if err != nil {
		return Tree{}, err
	}
	var root signature.Hash32
	copy(root[:], rootB)
	return Tree{Leaves: leaves, Root: root}, nil
}
