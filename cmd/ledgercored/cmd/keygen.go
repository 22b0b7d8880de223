package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtran29/ledgercore/foundation/blockchain/database"
	"github.com/wtran29/ledgercore/foundation/blockchain/signature"
)

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate an EdDSA keypair and print its address",
		RunE: func(c *cobra.Command, args []string) error {
			pk, sk, err := signature.GenerateKeyPair(nil)
			if err != nil {
				return err
			}

			addr := database.NewPublicKeyAddress(pk)
			fmt.Printf("address:     %s\n", addr.String())
			fmt.Printf("public key:  %s\n", hex.EncodeToString(pk))
			fmt.Printf("private key: %s\n", hex.EncodeToString(sk))
			return nil
		},
	}
}
