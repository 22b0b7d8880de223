package database

import "github.com/wtran29/ledgercore/foundation/blockchain/encoding"

// EncodeU64 is the canonical encoding for the handful of persisted values
// that are nothing but a bare counter (height, power_i).
func EncodeU64(v uint64) []byte {
	enc := encoding.NewEncoder()
	enc.WriteU64(v)
	return enc.Bytes()
}

// DecodeU64 reads a value written by EncodeU64.
func DecodeU64(b []byte) (uint64, error) {
	dec := encoding.NewDecoder(b)
	return dec.ReadU64()
}
