// Package v1 binds the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/wtran29/ledgercore/app/services/ledgercored/handlers/v1/private"
	"github.com/wtran29/ledgercore/app/services/ledgercored/handlers/v1/public"
	"github.com/wtran29/ledgercore/foundation/blockchain/mempool"
	"github.com/wtran29/ledgercore/foundation/blockchain/state"
	"github.com/wtran29/ledgercore/foundation/web"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log     *zap.SugaredLogger
	Chain   *state.Blockchain
	Mempool *mempool.Mempool
}

// PublicRoutes binds all the version 1 public routes: the read-mostly
// surface a wallet talks to.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:     cfg.Log,
		Chain:   cfg.Chain,
		Mempool: cfg.Mempool,
	}

	app.Handle(http.MethodGet, version, "/accounts/:account", pbl.Account)
	app.Handle(http.MethodGet, version, "/node/status", pbl.Status)
	app.Handle(http.MethodPost, version, "/tx/submit", pbl.SubmitTransaction)
	app.Handle(http.MethodGet, version, "/tx/uncommitted/list", pbl.Mempool)
}

// PrivateRoutes binds all the version 1 private routes: the node-to-node
// surface that drives consensus.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:     cfg.Log,
		Chain:   cfg.Chain,
		Mempool: cfg.Mempool,
	}

	app.Handle(http.MethodGet, version, "/node/block/list/:from/:to", prv.BlocksByNumber)
	app.Handle(http.MethodGet, version, "/node/headers/list/:from/:to", prv.HeadersByNumber)
	app.Handle(http.MethodPost, version, "/node/block/propose", prv.ProposeBlocks)
}
