// Command ledgercored runs a ledger core node: it opens a persistent
// store, bootstraps or resumes the chain, and serves the v1 HTTP
// surface wallets and peers talk to.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wtran29/ledgercore/cmd/ledgercored/cmd"
)

func main() {
	log, err := newLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "constructing logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cmd.Execute(log); err != nil {
		log.Errorw("shutdown", "error", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	log, err := config.Build(zap.WithCaller(true))
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}
