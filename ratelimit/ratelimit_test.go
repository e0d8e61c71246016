package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erigontech/chainview/ratelimit"
	"github.com/stretchr/testify/require"
)

func TestAllowWithinBurst(t *testing.T) {
	l := ratelimit.New(1, 2)
	require.True(t, l.Allow("client-a"))
	require.True(t, l.Allow("client-a"))
	require.False(t, l.Allow("client-a"))
}

func TestAllowPerKeyIsolated(t *testing.T) {
	l := ratelimit.New(1, 1)
	require.True(t, l.Allow("client-a"))
	require.True(t, l.Allow("client-b"))
	require.False(t, l.Allow("client-a"))
}

func TestMiddlewareReturns429WhenExhausted(t *testing.T) {
	l := ratelimit.New(1, 1)
	handler := l.Middleware(ratelimit.RemoteAddrKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/blocks/from/1/1", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	w1 := httptest.NewRecorder()
	handler.ServeHTTP(w1, req)
	require.Equal(t, http.StatusOK, w1.Code)

	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, req)
	require.Equal(t, http.StatusTooManyRequests, w2.Code)
}
