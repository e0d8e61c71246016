package api

import (
	"net/http"

	"github.com/erigontech/chainview/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter registers every route named in §6 against a fresh chi.Mux,
// wrapped in CORS and the token-bucket rate limiter.
func NewRouter(a *API, limiter *ratelimit.Limiter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))
	if limiter != nil {
		r.Use(limiter.Middleware(ratelimit.RemoteAddrKey))
	}

	r.Get("/blocks/{duration}/{anchor}/limit/{limit}", a.handleBlocks)

	r.Get("/transactions/{duration}/{anchor}/limit/{limit}", a.handleTransactions)
	r.Get("/transactions/{duration}/{anchor}/type/{type}/limit/{limit}", a.handleTransactionsByType)
	r.Get("/transactions/{duration}/{anchor}/type/{type}/filter/{filter}/limit/{limit}", a.handleTransactionsByTypeFilter)
	r.Get("/transactions/unconfirmed/{duration}/{anchor}/limit/{limit}", a.handleUnconfirmedTransactions)
	r.Get("/transactions/partial/{duration}/{anchor}/limit/{limit}", a.handlePartialTransactions)

	r.Get("/mosaics/{duration}/{anchor}/limit/{limit}", a.handleMosaics)
	r.Get("/namespaces/{duration}/{anchor}/limit/{limit}", a.handleNamespaces)

	r.Get("/accounts/importance/{duration}/{anchor}/limit/{limit}", a.handleAccountsImportance)
	r.Get("/accounts/harvested/{which}/{duration}/{anchor}/limit/{limit}", a.handleAccountsHarvested)
	r.Get("/accounts/balance/{which}/{duration}/{anchor}/limit/{limit}", a.handleAccountsBalance)

	return r
}
