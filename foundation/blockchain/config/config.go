// Package config holds the protocol-wide constants shared by the ledger
// core. These are pinned values, not environment configuration: they
// describe consensus rules and must be identical on every node.
package config

// TotalSupply is the amount of Money that exists from genesis onward. It is
// minted implicitly into the Treasury account the first time it is read
// (see database.GetAccount) rather than by any transaction.
const TotalSupply uint64 = 100_000_000_000

// BlockTime is the target number of seconds between blocks.
const BlockTime uint64 = 60

// DifficultyCalcInterval is the number of blocks between difficulty
// retargets.
const DifficultyCalcInterval uint64 = 64

// PowKeyBaseHeight is the height below which every block is evaluated
// under PowBaseKey.
const PowKeyBaseHeight uint64 = 64

// PowKeyChangeDelay is how many blocks behind the chain tip a PoW key
// rotation looks before picking its reference block.
const PowKeyChangeDelay uint64 = 64

// PowKeyChangeInterval is how often (in blocks) the PoW key rotates.
const PowKeyChangeInterval uint64 = 64

// PowBaseKey is the fixed key used to evaluate PoW for every block below
// PowKeyBaseHeight.
var PowBaseKey = [32]byte{
	0x62, 0x61, 0x7a, 0x75, 0x6b, 0x61, 0x2d, 0x6c,
	0x65, 0x64, 0x67, 0x65, 0x72, 0x2d, 0x63, 0x6f,
	0x72, 0x65, 0x2d, 0x67, 0x65, 0x6e, 0x65, 0x73,
	0x69, 0x73, 0x2d, 0x70, 0x6f, 0x77, 0x2d, 0x30,
}
