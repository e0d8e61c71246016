package response_test

import (
	"net/http/httptest"
	"testing"

	"github.com/erigontech/chainview/response"
	"github.com/stretchr/testify/require"
)

func TestWriteOKEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, response.WriteOK(w, "blocks", []any{1, 2, 3}))
	require.Equal(t, 200, w.Code)
	require.JSONEq(t, `{"payload":[1,2,3],"type":"blocks"}`, w.Body.String())
}

func TestWriteOKEmptyPayload(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, response.WriteOK(w, "blocks", nil))
	require.JSONEq(t, `{"payload":[],"type":"blocks"}`, w.Body.String())
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, response.WriteError(w, 409, "invalid anchor"))
	require.Equal(t, 409, w.Code)
	require.JSONEq(t, `{"error":"invalid anchor"}`, w.Body.String())
}
