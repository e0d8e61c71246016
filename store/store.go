// Package store defines the document-store collaborator's interface - the
// underlying document store and its schema are treated as an external
// collaborator - and ships an in-process implementation, memstore, used by
// the reference binary and the test suite.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Lookup when no record matches the given
// secondary-index value - the route handler maps this to the timeline
// engine's "not-found" outcome.
var ErrNotFound = errors.New("store: not found")

// Record is one stored document: Key is its composite sort key, encoded with
// the families package's key helpers (EncodeUint64, EncodeInt32, Concat)
// so that byte-lexicographic comparison matches the
// family's numeric lex order; Doc is the typed record (Block, Transaction,
// Mosaic, Namespace, or Account).
type Record struct {
	Key []byte
	Doc any
}

// Store is the seam the timeline engine's family query builders execute
// against. A family never sees raw bytes; it builds composite-key bounds
// with the families key helpers and leaves traversal to Store.
type Store interface {
	// DescendLess returns up to limit records from collection whose key is
	// strictly less than upperExclusive, in descending key order - backs
	// every family's "<base>From" query.
	DescendLess(ctx context.Context, collection string, upperExclusive []byte, limit int) ([]Record, error)

	// AscendGreater returns up to limit records from collection whose key is
	// strictly greater than lowerExclusive, in ASCENDING key order (so the
	// nearest-greater rows survive the limit) - the caller re-sorts
	// descending before presenting, per the ascending-scan-then-final-
	// descending-resort pattern. Backs every family's "<base>Since".
	AscendGreater(ctx context.Context, collection string, lowerExclusive []byte, limit int) ([]Record, error)

	// Lookup resolves a secondary-index value (hash, object id, public key,
	// hex/base32 address, namespace id) to the record that owns it. Returns
	// ErrNotFound if no record matches.
	Lookup(ctx context.Context, collection, index string, value []byte) (Record, error)

	// Exists reports secondary-index membership without fetching the whole
	// record - used by the transactions filter=multisig join.
	Exists(ctx context.Context, collection, index string, value []byte) (bool, error)

	// LookupAll resolves a one-to-many secondary-index value to every
	// record that owns it, in insertion order - used to batch-fetch an
	// aggregate transaction's inner transactions by aggregateId.
	// An unmatched value yields an empty, non-error result.
	LookupAll(ctx context.Context, collection, index string, value []byte) ([]Record, error)
}
