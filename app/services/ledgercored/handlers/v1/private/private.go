// Package private maintains the group of handlers for node-to-node
// access: the thin consensus surface that drives chain extension.
package private

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	v1 "github.com/wtran29/ledgercore/business/web/v1"
	"github.com/wtran29/ledgercore/foundation/blockchain/database"
	"github.com/wtran29/ledgercore/foundation/blockchain/mempool"
	"github.com/wtran29/ledgercore/foundation/blockchain/state"
	"github.com/wtran29/ledgercore/foundation/web"
)

// Handlers manages the set of node-to-node ledger endpoints.
type Handlers struct {
	Log     *zap.SugaredLogger
	Chain   *state.Blockchain
	Mempool *mempool.Mempool
}

func parseRange(r *http.Request) (uint64, uint64, error) {
	from, err := strconv.ParseUint(web.Param(r, "from"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	to, err := strconv.ParseUint(web.Param(r, "to"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

// BlocksByNumber returns the committed blocks in [from, to).
func (h Handlers) BlocksByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	from, to, err := parseRange(r)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	blocks, err := h.Chain.GetBlocks(from, to)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}
	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// HeadersByNumber returns the committed headers in [from, to), the
// payload a peer's will_extend check is driven from.
func (h Handlers) HeadersByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	from, to, err := parseRange(r)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	headers, err := h.Chain.GetHeaders(from, to)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}
	return web.Respond(ctx, w, headers, http.StatusOK)
}

// proposeRequest is the JSON payload a peer submits to propose adopting
// its chain from height From onward.
type proposeRequest struct {
	From   uint64           `json:"from" validate:"required"`
	Blocks []database.Block `json:"blocks" validate:"required"`
}

// ProposeBlocks validates a peer's candidate extension and, if it
// raises cumulative power over the local chain, commits it.
func (h Handlers) ProposeBlocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req proposeRequest
	if err := web.Decode(r, &req); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	headers := make([]database.Header, len(req.Blocks))
	for i, blk := range req.Blocks {
		headers[i] = blk.Header
	}

	will, err := h.Chain.WillExtend(req.From, headers)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}
	if !will {
		resp := struct {
			Status string `json:"status"`
		}{Status: "rejected: insufficient power"}
		return web.Respond(ctx, w, resp, http.StatusNotAcceptable)
	}

	if err := h.Chain.Extend(req.From, req.Blocks); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	h.Log.Infow("chain extended", "traceid", v.TraceID, "from", req.From, "count", len(req.Blocks))

	for _, blk := range req.Blocks {
		h.Mempool.DeleteCommitted(blk)
	}

	resp := struct {
		Status string `json:"status"`
	}{Status: "accepted"}
	return web.Respond(ctx, w, resp, http.StatusOK)
}
