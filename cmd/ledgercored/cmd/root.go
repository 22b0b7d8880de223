// Package cmd wires the ledgercored cobra command tree: start the node,
// print genesis block info, or generate a wallet keypair.
package cmd

import (
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

// Execute runs the ledgercored command tree with log threaded into every
// subcommand.
func Execute(log *zap.SugaredLogger) error {
	root := &cobra.Command{
		Use:   "ledgercored",
		Short: "Run and inspect a ledger core node",
	}

	root.AddCommand(newStartCmd(log))
	root.AddCommand(newGenesisCmd())
	root.AddCommand(newKeygenCmd())

	return root.Execute()
}
