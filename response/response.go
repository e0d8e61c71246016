// Package response implements the route handler's final step: wrapping a
// resolved page in the {payload, type} envelope and writing it as JSON.
package response

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// Envelope is the wire shape every successful route returns.
type Envelope struct {
	Payload []any  `json:"payload"`
	Type    string `json:"type"`
}

// WriteOK encodes payload under the given family tag and writes it as a
// 200 response.
func WriteOK(w http.ResponseWriter, familyTag string, payload []any) error {
	if payload == nil {
		payload = []any{}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(Envelope{Payload: payload, Type: familyTag})
}

// ErrorBody is the shape written alongside a non-2xx status.
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteError writes status with a small JSON error body describing reason.
func WriteError(w http.ResponseWriter, status int, reason string) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(ErrorBody{Error: reason})
}

// WriteRedirect issues the limit-canonicalization 302 to location.
func WriteRedirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusFound)
}
