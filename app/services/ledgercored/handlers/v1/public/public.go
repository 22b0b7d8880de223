// Package public maintains the group of handlers a wallet talks to:
// balance lookups, transaction submission, and mempool introspection.
package public

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	v1 "github.com/wtran29/ledgercore/business/web/v1"
	"github.com/wtran29/ledgercore/foundation/blockchain/database"
	"github.com/wtran29/ledgercore/foundation/blockchain/mempool"
	"github.com/wtran29/ledgercore/foundation/blockchain/state"
	"github.com/wtran29/ledgercore/foundation/web"
)

// Handlers manages the set of public ledger endpoints.
type Handlers struct {
	Log     *zap.SugaredLogger
	Chain   *state.Blockchain
	Mempool *mempool.Mempool
}

// Account returns the account state for the address named by the
// :account path parameter.
func (h Handlers) Account(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	addr, err := database.ParseAddress(web.Param(r, "account"))
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	acc, err := h.Chain.GetAccount(addr)
	if err != nil {
		return v1.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, w, acc, http.StatusOK)
}

// Status returns the chain's current height and cumulative power.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	height, err := h.Chain.GetHeight()
	if err != nil {
		return v1.NewRequestError(err, http.StatusInternalServerError)
	}
	power, err := h.Chain.GetPower(height - 1)
	if err != nil {
		return v1.NewRequestError(err, http.StatusInternalServerError)
	}

	resp := struct {
		Height uint64 `json:"height"`
		Power  uint64 `json:"power"`
	}{
		Height: height,
		Power:  power,
	}
	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SubmitTransaction admits a signed transaction into the mempool. Only
// the signature and the transaction kind are checked here; nonce and
// balance are re-validated when the transaction is actually drafted
// into a block.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tx database.Transaction
	if err := web.Decode(r, &tx); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	h.Log.Infow("tx submitted", "traceid", v.TraceID, "src", tx.Src.String(), "nonce", tx.Nonce)

	if err := h.Mempool.Upsert(tx); err != nil {
		if errors.Is(err, mempool.ErrTransactionInvalid) {
			return v1.NewRequestError(err, http.StatusBadRequest)
		}
		return v1.NewRequestError(err, http.StatusInternalServerError)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "transaction added to mempool",
	}
	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Mempool.Transactions(), http.StatusOK)
}
