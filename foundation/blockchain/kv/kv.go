// Package kv defines the typed key/value abstraction the ledger core is
// built on, plus the RAM mirror overlay that makes speculative execution
// cheap: applying a candidate block or filtering a mempool against a Mirror
// never touches the backing store, and the accumulated writes can be
// committed as one atomic batch or discarded for free.
package kv

import (
	"sort"

	"github.com/wtran29/ledgercore/foundation/blockchain/encoding"
)

// WriteOp is one write in an atomic batch: either a Put or a Remove. Keys
// are opaque byte strings formatted by the database package; values are
// the canonical encoding of whatever the key holds.
type WriteOp struct {
	Key    string
	Value  []byte
	Remove bool
}

// Put constructs a WriteOp that sets key to value.
func Put(key string, value []byte) WriteOp {
	return WriteOp{Key: key, Value: value}
}

// Del constructs a WriteOp that removes key.
func Del(key string) WriteOp {
	return WriteOp{Key: key, Remove: true}
}

// Store is the behavior required of anything backing the ledger: a
// key/value reader, an atomic batched writer, and the ability to compute
// the inverse of a proposed batch against the store's current contents.
type Store interface {
	Get(key string) (value []byte, ok bool, err error)
	Update(ops []WriteOp) error
	RollbackOf(ops []WriteOp) ([]WriteOp, error)
	Close() error
}

// ComputeRollback is the shared RollbackOf implementation every Store
// (and Mirror) uses: for each key touched by ops, read its current value
// before the batch lands and record the Put that would restore it, or a
// Remove if the key doesn't exist yet. Keys repeated within ops only
// produce one inverse entry, keyed to the value the store held before any
// of ops were applied.
func ComputeRollback(s Store, ops []WriteOp) ([]WriteOp, error) {
	seen := make(map[string]bool, len(ops))
	inverse := make([]WriteOp, 0, len(ops))
	for _, op := range ops {
		if seen[op.Key] {
			continue
		}
		seen[op.Key] = true

		prev, ok, err := s.Get(op.Key)
		if err != nil {
			return nil, err
		}
		if ok {
			inverse = append(inverse, Put(op.Key, prev))
		} else {
			inverse = append(inverse, Del(op.Key))
		}
	}
	return inverse, nil
}

// EncodeOps writes a batch of WriteOp in canonical form: a count followed
// by, for each op, a tag byte (0 = Put, 1 = Remove), the key, and (for Put)
// the value.
func EncodeOps(ops []WriteOp) []byte {
	enc := encoding.NewEncoder()
	enc.WriteU32(uint32(len(ops)))
	for _, op := range ops {
		if op.Remove {
			enc.WriteTag(1)
			enc.WriteBytes([]byte(op.Key))
			continue
		}
		enc.WriteTag(0)
		enc.WriteBytes([]byte(op.Key))
		enc.WriteBytes(op.Value)
	}
	return enc.Bytes()
}

// DecodeOps reads a batch written by EncodeOps.
func DecodeOps(b []byte) ([]WriteOp, error) {
	dec := encoding.NewDecoder(b)
	n, err := dec.ReadU32()
	if err != nil {
		return nil, err
	}
	ops := make([]WriteOp, n)
	for i := range ops {
		tag, err := dec.ReadTag()
		if err != nil {
			return nil, err
		}
		key, err := dec.ReadBytes()
		if err != nil {
			return nil, err
		}
		if tag == 1 {
			ops[i] = Del(string(key))
			continue
		}
		val, err := dec.ReadBytes()
		if err != nil {
			return nil, err
		}
		ops[i] = Put(string(key), val)
	}
	return ops, nil
}

// =============================================================================

// Mirror is an in-RAM overlay over a backing Store. Reads consult the
// overlay first so a Mirror observes its own pending writes; writes only
// ever touch the overlay map. A Mirror is local to its caller and must
// never be shared across goroutines.
type Mirror struct {
	backing Store
	pending map[string]WriteOp
}

// NewMirror forks backing into a fresh, empty overlay.
func NewMirror(backing Store) *Mirror {
	return &Mirror{backing: backing, pending: make(map[string]WriteOp)}
}

// Get consults the overlay map first, then the backing store. A key
// marked Remove in the overlay shadows any value the backing store has.
func (m *Mirror) Get(key string) ([]byte, bool, error) {
	if op, ok := m.pending[key]; ok {
		if op.Remove {
			return nil, false, nil
		}
		return op.Value, true, nil
	}
	return m.backing.Get(key)
}

// Update appends ops to the overlay; nothing reaches the backing store.
func (m *Mirror) Update(ops []WriteOp) error {
	for _, op := range ops {
		m.pending[op.Key] = op
	}
	return nil
}

// RollbackOf computes the inverse of ops against the Mirror's current view
// (overlay + backing), so a Mirror can be forked again and rolled back
// internally without touching the real store.
func (m *Mirror) RollbackOf(ops []WriteOp) ([]WriteOp, error) {
	return ComputeRollback(m, ops)
}

// Close is a no-op; a Mirror owns no resource of its own.
func (m *Mirror) Close() error {
	return nil
}

// ToOps returns the accumulated overlay batch, sorted by key so two
// Mirrors forked from the same state and fed the same writes produce byte
// identical batches.
func (m *Mirror) ToOps() []WriteOp {
	ops := make([]WriteOp, 0, len(m.pending))
	for _, op := range m.pending {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Key < ops[j].Key })
	return ops
}
