package kv

import (
	"go.etcd.io/bbolt"
)

var ledgerBucket = []byte("ledger")

// BoltStore is the durable Store backing a real node, one bbolt database
// file holding a single bucket keyed by the ledger's formatted key space.
// bbolt's single-writer, bucket-scoped-batch model is a near exact match
// for the atomic-update contract Store requires.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens (creating if necessary) a bbolt database at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(ledgerBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// Get reads a single key from the ledger bucket. found is tracked
// separately from out so a present-but-empty value isn't mistaken for a
// missing key.
func (s *BoltStore) Get(key string) ([]byte, bool, error) {
	var out []byte
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(ledgerBucket).Get([]byte(key))
		if v != nil {
			found = true
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, found, nil
}

// Update applies ops in a single bbolt transaction, which is atomic by
// construction: either every op lands, or (on error) none does.
func (s *BoltStore) Update(ops []WriteOp) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(ledgerBucket)
		for _, op := range ops {
			if op.Remove {
				if err := b.Delete([]byte(op.Key)); err != nil {
					return err
				}
				continue
			}
			if err := b.Put([]byte(op.Key), op.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// RollbackOf computes the inverse of ops against the bucket's current
// contents.
func (s *BoltStore) RollbackOf(ops []WriteOp) ([]WriteOp, error) {
	return ComputeRollback(s, ops)
}

// Close releases the underlying file lock.
func (s *BoltStore) Close() error {
	return s.db.Close()
}
