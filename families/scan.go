package families

import (
	"context"

	"github.com/erigontech/chainview/store"
)

// ScanFrom returns up to count records from collection whose composite key
// is strictly less than upperExclusive, already in the family's descending
// presentation order.
func ScanFrom(ctx context.Context, s store.Store, collection string, upperExclusive []byte, count int) ([]store.Record, error) {
	return s.DescendLess(ctx, collection, upperExclusive, count)
}

// ScanSince returns up to count records from collection whose composite key
// is strictly greater than lowerExclusive. The store walks ascending (so
// the nearest-greater rows survive count) and ScanSince reverses the result
// into the family's descending presentation order before returning.
func ScanSince(ctx context.Context, s store.Store, collection string, lowerExclusive []byte, count int) ([]store.Record, error) {
	recs, err := s.AscendGreater(ctx, collection, lowerExclusive, count)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
		recs[i], recs[j] = recs[j], recs[i]
	}
	return recs, nil
}
