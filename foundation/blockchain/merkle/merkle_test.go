package merkle

import (
	"testing"

	"github.com/wtran29/ledgercore/foundation/blockchain/encoding"
	"github.com/wtran29/ledgercore/foundation/blockchain/signature"
)

type leaf string

func (l leaf) Hash() signature.Hash32 {
	return signature.HashBytes([]byte(l))
}

func TestRootOfEmptyIsHashEmpty(t *testing.T) {
	got := RootOf([]leaf{})
	want := signature.HashBytes([]byte("empty"))
	if got != want {
		t.Fatalf("RootOf(nil) = %x; want hash(\"empty\") = %x", got, want)
	}
}

func TestRootOfIsOrderSensitive(t *testing.T) {
	a := RootOf([]leaf{"a", "b", "c"})
	b := RootOf([]leaf{"c", "b", "a"})
	if a == b {
		t.Fatal("RootOf produced the same root for two different orderings")
	}
}

func TestRootOfOddCountDuplicatesLastLeaf(t *testing.T) {
	three := Build([]leaf{"a", "b", "c"})
	four := Build([]leaf{"a", "b", "c", "c"})
	if three.Root != four.Root {
		t.Fatalf("odd-count root %x does not match explicit duplication root %x", three.Root, four.Root)
	}
}

func TestTreeEncodeDecodeRoundTrip(t *testing.T) {
	tree := Build([]leaf{"a", "b", "c"})

	raw := encoding.Encode(tree)

	got, err := DecodeTree(encoding.NewDecoder(raw))
	if err != nil {
		t.Fatalf("DecodeTree() error = %v", err)
	}
	if got.Root != tree.Root || len(got.Leaves) != len(tree.Leaves) {
		t.Fatalf("DecodeTree() = %+v; want %+v", got, tree)
	}
}
