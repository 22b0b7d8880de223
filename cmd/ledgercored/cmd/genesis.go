package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtran29/ledgercore/foundation/blockchain/genesis"
)

func newGenesisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genesis",
		Short: "Print the fixed genesis block's header hash and target",
		RunE: func(c *cobra.Command, args []string) error {
			blk := genesis.Block()
			hash := blk.Header.Hash()
			fmt.Printf("number:      %d\n", blk.Header.Number)
			fmt.Printf("hash:        %s\n", hex.EncodeToString(hash[:]))
			fmt.Printf("target:      %s\n", hex.EncodeToString(blk.Header.ProofOfWork.Target[:]))
			fmt.Printf("block root:  %s\n", hex.EncodeToString(blk.Header.BlockRoot[:]))
			return nil
		},
	}
}
