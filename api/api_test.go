package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erigontech/chainview/api"
	"github.com/erigontech/chainview/aliasresolve"
	"github.com/erigontech/chainview/dbpool"
	"github.com/erigontech/chainview/families"
	"github.com/erigontech/chainview/kv"
	"github.com/erigontech/chainview/log"
	"github.com/erigontech/chainview/metrics"
	"github.com/erigontech/chainview/store"
	"github.com/erigontech/chainview/validate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, s store.Store) *api.API {
	t.Helper()
	l, err := log.New(log.Options{})
	require.NoError(t, err)
	alias, err := aliasresolve.New(s, 16, time.Minute)
	require.NoError(t, err)
	pool, err := dbpool.New(context.Background(), func(context.Context) (store.Store, error) {
		return s, nil
	}, 4)
	require.NoError(t, err)
	return &api.API{
		Pool:               pool,
		Alias:              alias,
		Bounds:             validate.LimitBounds{Min: 1, Max: 100, Default: 25},
		MultisigCollection: kv.MultisigAccounts,
		Metrics:            metrics.New(prometheus.NewRegistry()),
		Log:                l,
	}
}

func seedBlocks(s *store.MemStore, heights ...uint64) {
	for _, h := range heights {
		key := families.EncodeUint64(h)
		s.Put(kv.Blocks, store.Record{Key: key, Doc: store.Block{Height: h}}, map[string][]byte{
			"height": key,
		})
	}
}

func decodeEnvelope(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestHandleBlocksSentinel(t *testing.T) {
	s := store.NewMemStore()
	seedBlocks(s, 1, 2, 3, 4, 5)
	a := newTestAPI(t, s)
	r := api.NewRouter(a, nil)

	req := httptest.NewRequest(http.MethodGet, "/blocks/since/min/limit/25", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	require.Equal(t, "blockInfo", env["type"])
	payload, ok := env["payload"].([]any)
	require.True(t, ok)
	require.Len(t, payload, 4)
}

func TestHandleBlocksLimitRedirect(t *testing.T) {
	s := store.NewMemStore()
	seedBlocks(s, 1, 2, 3)
	a := newTestAPI(t, s)
	r := api.NewRouter(a, nil)

	req := httptest.NewRequest(http.MethodGet, "/blocks/since/min/limit/999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/blocks/since/min/limit/25", w.Header().Get("Location"))
}

func TestHandleBlocksMalformedLimit(t *testing.T) {
	s := store.NewMemStore()
	a := newTestAPI(t, s)
	r := api.NewRouter(a, nil)

	req := httptest.NewRequest(http.MethodGet, "/blocks/since/min/limit/notanumber", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleBlocksInvalidAnchor(t *testing.T) {
	s := store.NewMemStore()
	a := newTestAPI(t, s)
	r := api.NewRouter(a, nil)

	req := httptest.NewRequest(http.MethodGet, "/blocks/since/not-a-thing/limit/25", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleBlocksHashAnchorNotFound(t *testing.T) {
	s := store.NewMemStore()
	seedBlocks(s, 1, 2, 3)
	a := newTestAPI(t, s)
	r := api.NewRouter(a, nil)

	missingHash := fmt.Sprintf("%064x", 0xdead)
	req := httptest.NewRequest(http.MethodGet, "/blocks/from/"+missingHash+"/limit/25", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleBlocksHashAnchorPriorityOverHeight(t *testing.T) {
	// The anchor "0000...0005" is 64 hex chars, so it is classified as a
	// hash (tried first), not a height - this confirms dispatch honors the
	// declared priority order rather than falling through to height.
	s := store.NewMemStore()
	seedBlocks(s, 1, 2, 3, 4, 5)
	a := newTestAPI(t, s)
	r := api.NewRouter(a, nil)

	hexHeight := fmt.Sprintf("%064x", 5)
	req := httptest.NewRequest(http.MethodGet, "/blocks/from/"+hexHeight+"/limit/25", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleTransactionsByTypeInvalidType(t *testing.T) {
	s := store.NewMemStore()
	a := newTestAPI(t, s)
	r := api.NewRouter(a, nil)

	req := httptest.NewRequest(http.MethodGet, "/transactions/since/min/type/bogus/limit/25", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleTransactionsByTypeFilterInvalidFilter(t *testing.T) {
	s := store.NewMemStore()
	a := newTestAPI(t, s)
	r := api.NewRouter(a, nil)

	req := httptest.NewRequest(http.MethodGet, "/transactions/since/min/type/transfer/filter/bogus/limit/25", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleTransactionsByTypeFilterMosaicRequiresAlias(t *testing.T) {
	// No currency/harvest namespace alias is registered, so resolving the
	// filter=mosaic well-known mosaic set must fail with not-found.
	s := store.NewMemStore()
	a := newTestAPI(t, s)
	r := api.NewRouter(a, nil)

	req := httptest.NewRequest(http.MethodGet, "/transactions/since/min/type/transfer/filter/mosaic/limit/25", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleAccountsBalanceUnknownAliasIs404(t *testing.T) {
	s := store.NewMemStore()
	a := newTestAPI(t, s)
	r := api.NewRouter(a, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts/balance/currency/since/least/limit/25", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleAccountsHarvestedInvalidWhich(t *testing.T) {
	s := store.NewMemStore()
	a := newTestAPI(t, s)
	r := api.NewRouter(a, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts/harvested/bogus/since/least/limit/25", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleMosaicsEmptyPageIs200(t *testing.T) {
	s := store.NewMemStore()
	a := newTestAPI(t, s)
	r := api.NewRouter(a, nil)

	req := httptest.NewRequest(http.MethodGet, "/mosaics/since/min/limit/25", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	payload, ok := env["payload"].([]any)
	require.True(t, ok)
	require.Empty(t, payload)
}
