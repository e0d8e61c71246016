package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/erigontech/chainview/aliasresolve"
	"github.com/erigontech/chainview/dbpool"
	"github.com/erigontech/chainview/families"
	"github.com/erigontech/chainview/kv"
	"github.com/erigontech/chainview/log"
	"github.com/erigontech/chainview/metrics"
	"github.com/erigontech/chainview/response"
	"github.com/erigontech/chainview/store"
	"github.com/erigontech/chainview/timeline"
	"github.com/erigontech/chainview/validate"
	"github.com/go-chi/chi/v5"
)

// API holds everything a route handler needs: the leased-connection pool,
// the namespace-alias resolver for balance families, limit bounds, and the
// ambient logger/metrics.
type API struct {
	Pool               *dbpool.Pool
	Alias              *aliasresolve.Resolver
	Bounds             validate.LimitBounds
	MultisigCollection string
	Metrics            *metrics.Metrics
	Log                *log.Logger
}

// acquire leases a store connection for the lifetime of one request. Callers
// must defer lease.Release() immediately; the lease is held until the
// handler returns, which is always after its query has run to completion,
// failed, or been cancelled.
func (a *API) acquire(ctx context.Context) (*dbpool.Lease, error) {
	return a.Pool.Acquire(ctx)
}

// runFunc executes one resolved Timeline entry and returns its payload
// already shaped for the response envelope (raw docs for most families,
// TransactionPage values for transactions). The Timeline itself is always
// closed over at construction time, not passed in.
type runFunc func(ctx context.Context, entry string, lookupValue any, count int) ([]any, error)

func sequenceToPayload(seq timeline.Sequence) []any { return []any(seq) }

func plainRun(tl *timeline.Timeline) runFunc {
	return func(ctx context.Context, entry string, lookupValue any, count int) ([]any, error) {
		seq, err := tl.Call(ctx, entry, lookupValue, nil, count)
		if err != nil {
			return nil, err
		}
		return sequenceToPayload(seq), nil
	}
}

// serve is the shared route body: parse duration/anchor/limit, sanitize the
// limit (redirecting if out of range), dispatch the anchor to a Timeline
// entry, run it, and write the response.
func (a *API) serve(w http.ResponseWriter, r *http.Request, familyTag string, fa familyAnchor, run runFunc) {
	start := time.Now()
	status := http.StatusOK
	defer func() {
		a.Metrics.ObserveRequest(familyTag, status, time.Since(start))
	}()

	duration, ok := validate.ParseDuration(chi.URLParam(r, "duration"))
	if !ok {
		status = http.StatusConflict
		_ = response.WriteError(w, status, "invalid duration")
		return
	}

	limitRaw := chi.URLParam(r, "limit")
	limit, redirect, err := sanitizeLimit(limitRaw, a.Bounds)
	if err != nil {
		status = http.StatusConflict
		_ = response.WriteError(w, status, "invalid limit")
		return
	}
	if redirect {
		status = http.StatusFound
		response.WriteRedirect(w, r, canonicalLimitURL(r.URL.Path, a.Bounds.Default))
		return
	}

	anchor := chi.URLParam(r, "anchor")
	entry, lookupValue, err := resolveAnchor(duration, anchor, fa)
	if err != nil {
		status = http.StatusConflict
		_ = response.WriteError(w, status, "invalid anchor")
		return
	}

	payload, err := run(r.Context(), entry, lookupValue, int(limit))
	status = a.statusFor(err)
	if err != nil {
		a.writeErrorStatus(w, status, err)
		return
	}
	a.Metrics.ObservePageSize(familyTag, len(payload))
	_ = response.WriteOK(w, familyTag, payload)
}

func (a *API) statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, timeline.ErrNotFound), errors.Is(err, aliasresolve.ErrAliasNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (a *API) writeErrorStatus(w http.ResponseWriter, status int, err error) {
	if status == http.StatusInternalServerError {
		a.Log.Error("store operation failed", "err", err)
		a.Metrics.IncStoreError("query")
		_ = response.WriteError(w, status, http.StatusText(status))
		return
	}
	_ = response.WriteError(w, status, err.Error())
}

// --- Blocks ---

func (a *API) handleBlocks(w http.ResponseWriter, r *http.Request) {
	lease, err := a.acquire(r.Context())
	if err != nil {
		a.writeErrorStatus(w, http.StatusInternalServerError, err)
		return
	}
	defer lease.Release()

	tl := families.Blocks{Store: lease.Store}.Timeline()
	a.serve(w, r, "blockInfo", blocksAnchor, plainRun(tl))
}

// --- Transactions ---

func (a *API) transactionsRun(t families.Transactions, tl *timeline.Timeline) runFunc {
	return func(ctx context.Context, entry string, lookupValue any, count int) ([]any, error) {
		seq, err := tl.Call(ctx, entry, lookupValue, nil, count)
		if err != nil {
			return nil, err
		}
		parents := make([]store.Record, len(seq))
		for i, v := range seq {
			parents[i] = store.Record{Doc: v.(store.Transaction)}
		}
		pages := t.AttachInner(ctx, parents)
		out := make([]any, len(pages))
		for i, p := range pages {
			out[i] = p
		}
		return out, nil
	}
}

func (a *API) handleTransactions(w http.ResponseWriter, r *http.Request) {
	lease, err := a.acquire(r.Context())
	if err != nil {
		a.writeErrorStatus(w, http.StatusInternalServerError, err)
		return
	}
	defer lease.Release()

	t := families.Transactions{Store: lease.Store, Collection: kv.Transactions, MultisigCollection: a.MultisigCollection, Log: a.Log}
	tl := t.Timeline()
	a.serve(w, r, "transaction", transactionsAnchor, a.transactionsRun(t, tl))
}

func (a *API) handleUnconfirmedTransactions(w http.ResponseWriter, r *http.Request) {
	lease, err := a.acquire(r.Context())
	if err != nil {
		a.writeErrorStatus(w, http.StatusInternalServerError, err)
		return
	}
	defer lease.Release()

	t := families.Transactions{Store: lease.Store, Collection: kv.UnconfirmedTransactions, Log: a.Log}
	tl := t.Timeline()
	a.serve(w, r, "transaction", transactionsAnchor, a.transactionsRun(t, tl))
}

func (a *API) handlePartialTransactions(w http.ResponseWriter, r *http.Request) {
	lease, err := a.acquire(r.Context())
	if err != nil {
		a.writeErrorStatus(w, http.StatusInternalServerError, err)
		return
	}
	defer lease.Release()

	t := families.Transactions{Store: lease.Store, Collection: kv.PartialTransactions, Log: a.Log}
	tl := t.Timeline()
	a.serve(w, r, "transaction", transactionsAnchor, a.transactionsRun(t, tl))
}

func (a *API) handleTransactionsByType(w http.ResponseWriter, r *http.Request) {
	txType, ok := validate.ParseTransactionType(chi.URLParam(r, "type"))
	if !ok {
		_ = response.WriteError(w, http.StatusConflict, "invalid transaction type")
		return
	}
	lease, err := a.acquire(r.Context())
	if err != nil {
		a.writeErrorStatus(w, http.StatusInternalServerError, err)
		return
	}
	defer lease.Release()

	t := families.Transactions{Store: lease.Store, Collection: kv.Transactions, MultisigCollection: a.MultisigCollection, Log: a.Log}
	tl := t.TimelineByType(string(txType))
	a.serve(w, r, "transaction", transactionsAnchor, a.transactionsRun(t, tl))
}

func (a *API) handleTransactionsByTypeFilter(w http.ResponseWriter, r *http.Request) {
	txType, ok := validate.ParseTransactionType(chi.URLParam(r, "type"))
	if !ok {
		_ = response.WriteError(w, http.StatusConflict, "invalid transaction type")
		return
	}
	filter, ok := validate.ParseTransferFilter(chi.URLParam(r, "filter"))
	if !ok {
		_ = response.WriteError(w, http.StatusConflict, "invalid transfer filter")
		return
	}
	lease, err := a.acquire(r.Context())
	if err != nil {
		a.writeErrorStatus(w, http.StatusInternalServerError, err)
		return
	}
	defer lease.Release()

	keep, err := a.filterKeep(r.Context(), filter, lease.Store)
	if err != nil {
		status := a.statusFor(err)
		a.writeErrorStatus(w, status, err)
		return
	}
	t := families.Transactions{Store: lease.Store, Collection: kv.Transactions, MultisigCollection: a.MultisigCollection, Log: a.Log}
	tl := t.TimelineByTypeFilter(string(txType), keep)
	a.serve(w, r, "transaction", transactionsAnchor, a.transactionsRun(t, tl))
}

// filterKeep resolves the transfer filter keyword into the predicate
// TimelineByTypeFilter needs; filter=mosaic requires both well-known
// network mosaics (currency, harvest) to resolve first. s is the caller's
// already-leased store connection, reused for the filter=multisig join.
func (a *API) filterKeep(ctx context.Context, filter validate.TransferFilter, s store.Store) (families.TxKeep, error) {
	switch filter {
	case validate.FilterMosaic:
		currency, err := a.Alias.Resolve(ctx, aliasresolve.Currency)
		if err != nil {
			return nil, err
		}
		harvest, err := a.Alias.Resolve(ctx, aliasresolve.Harvest)
		if err != nil {
			return nil, err
		}
		return families.KeepMosaicFilter(families.NewWellKnownMosaics(currency, harvest)), nil
	case validate.FilterMultisig:
		return families.KeepMultisigFilter(s, a.MultisigCollection), nil
	default:
		return nil, invalidArgf("unknown transfer filter")
	}
}

// --- Mosaics / Namespaces ---

func (a *API) handleMosaics(w http.ResponseWriter, r *http.Request) {
	lease, err := a.acquire(r.Context())
	if err != nil {
		a.writeErrorStatus(w, http.StatusInternalServerError, err)
		return
	}
	defer lease.Release()

	tl := families.Mosaics{Store: lease.Store}.Timeline()
	a.serve(w, r, "mosaicInfo", mosaicsAnchor, plainRun(tl))
}

func (a *API) handleNamespaces(w http.ResponseWriter, r *http.Request) {
	lease, err := a.acquire(r.Context())
	if err != nil {
		a.writeErrorStatus(w, http.StatusInternalServerError, err)
		return
	}
	defer lease.Release()

	tl := families.Namespaces{Store: lease.Store}.Timeline()
	a.serve(w, r, "namespaceInfo", namespacesAnchor, plainRun(tl))
}

// --- Accounts ---

func (a *API) handleAccountsImportance(w http.ResponseWriter, r *http.Request) {
	lease, err := a.acquire(r.Context())
	if err != nil {
		a.writeErrorStatus(w, http.StatusInternalServerError, err)
		return
	}
	defer lease.Release()

	tl := families.ImportanceAccounts(lease.Store).Timeline()
	a.serve(w, r, "accountInfo", accountsAnchor, plainRun(tl))
}

func (a *API) handleAccountsHarvested(w http.ResponseWriter, r *http.Request) {
	which, ok := validate.ParseHarvestedWhich(chi.URLParam(r, "which"))
	if !ok {
		_ = response.WriteError(w, http.StatusConflict, "invalid harvested variant")
		return
	}
	lease, err := a.acquire(r.Context())
	if err != nil {
		a.writeErrorStatus(w, http.StatusInternalServerError, err)
		return
	}
	defer lease.Release()

	var acc families.Accounts
	if which == validate.HarvestedBlocks {
		acc = families.HarvestedBlocksAccounts(lease.Store)
	} else {
		acc = families.HarvestedFeesAccounts(lease.Store)
	}
	tl := acc.Timeline()
	a.serve(w, r, "accountInfo", accountsAnchor, plainRun(tl))
}

func (a *API) handleAccountsBalance(w http.ResponseWriter, r *http.Request) {
	which, ok := validate.ParseBalanceWhich(chi.URLParam(r, "which"))
	if !ok {
		_ = response.WriteError(w, http.StatusConflict, "invalid balance variant")
		return
	}
	alias := map[validate.BalanceWhich]aliasresolve.Alias{
		validate.BalanceCurrency: aliasresolve.Currency,
		validate.BalanceHarvest:  aliasresolve.Harvest,
		validate.BalanceXem:      aliasresolve.Xem,
	}[which]

	mosaicID, err := a.Alias.Resolve(r.Context(), alias)
	if err != nil {
		status := a.statusFor(err)
		a.writeErrorStatus(w, status, err)
		return
	}

	lease, err := a.acquire(r.Context())
	if err != nil {
		a.writeErrorStatus(w, http.StatusInternalServerError, err)
		return
	}
	defer lease.Release()

	tl := families.BalanceAccounts(lease.Store, mosaicID).Timeline()
	a.serve(w, r, "accountInfo", accountsAnchor, plainRun(tl))
}
