package state

import "errors"

// Validation errors: the input is rejected without mutating the store.
var (
	ErrSignatureInvalid        = errors.New("state: transaction signature is invalid")
	ErrBalanceInsufficient     = errors.New("state: balance insufficient")
	ErrInvalidTransactionNonce = errors.New("state: transaction nonce invalid")
	ErrInvalidBlockNumber      = errors.New("state: block number invalid")
	ErrInvalidParentHash       = errors.New("state: parent hash invalid")
	ErrInvalidMerkleRoot       = errors.New("state: merkle root invalid")
	ErrDifficultyTargetUnmet   = errors.New("state: difficulty target unmet")
	ErrUnsupportedTransaction  = errors.New("state: unsupported transaction kind")
)

// Protocol errors: caller misuse, never a result of store contents.
var (
	ErrExtendFromGenesis       = errors.New("state: cannot extend from the genesis block")
	ErrExtendFromFuture        = errors.New("state: cannot extend from a future block")
	ErrBlockNotFound           = errors.New("state: block not found")
	ErrProofOfStakeUnsupported = errors.New("state: proof-of-stake will_extend is not implemented")
)

// Consistency errors: a key that must exist is absent, or decoding
// failed. This indicates store corruption and is not recoverable by the
// core.
var ErrInconsistency = errors.New("state: store inconsistency")
