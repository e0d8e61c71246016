package families

import (
	"context"

	"github.com/erigontech/chainview/common/mathutil"
	"github.com/erigontech/chainview/kv"
	"github.com/erigontech/chainview/store"
	"github.com/erigontech/chainview/timeline"
)

// Mosaics is the query builder for the /mosaics route: composite sort key
// (startHeight, internal object id), no further tie-breakers.
type Mosaics struct {
	Store store.Store
}

func mosaicKey(startHeight uint64, objectID [12]byte) []byte {
	return Concat(EncodeUint64(startHeight), objectID[:])
}

func (m Mosaics) From(ctx context.Context, startHeight uint64, objectID [12]byte, count int) ([]store.Record, error) {
	return ScanFrom(ctx, m.Store, kv.Mosaics, mosaicKey(startHeight, objectID), count)
}

func (m Mosaics) Since(ctx context.Context, startHeight uint64, objectID [12]byte, count int) ([]store.Record, error) {
	return ScanSince(ctx, m.Store, kv.Mosaics, mosaicKey(startHeight, objectID), count)
}

func (m Mosaics) lookupMosaicID(ctx context.Context, value any) (any, bool, error) {
	rec, err := m.Store.Lookup(ctx, kv.Mosaics, "mosaicId", value.([]byte))
	if err == store.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec.Doc.(store.Mosaic), true, nil
}

func (m Mosaics) lookupObjectID(ctx context.Context, value any) (any, bool, error) {
	rec, err := m.Store.Lookup(ctx, kv.Mosaics, "objectId", value.([]byte))
	if err == store.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec.Doc.(store.Mosaic), true, nil
}

// Timeline assembles the mosaics method surface: absolute entries plus the
// mosaic-id identifier shape the /mosaics anchor dispatches to. The
// internal object-id lookup is also registered here for builder parity with
// Namespaces, but the API's anchor dispatch never reaches it - mosaics are
// addressed by mosaic id only.
func (m Mosaics) Timeline() *timeline.Timeline {
	absFrom := func(ctx context.Context, seed []any, args []any, count int) (timeline.Sequence, error) {
		recs, err := m.From(ctx, seed[0].(uint64), seed[1].([12]byte), count)
		return toSequence(recs), err
	}
	absSince := func(ctx context.Context, seed []any, args []any, count int) (timeline.Sequence, error) {
		recs, err := m.Since(ctx, seed[0].(uint64), seed[1].([12]byte), count)
		return toSequence(recs), err
	}
	recFrom := func(ctx context.Context, anchor any, args []any, count int) (timeline.Sequence, error) {
		doc := anchor.(store.Mosaic)
		recs, err := m.From(ctx, doc.StartHeight, doc.ObjectID, count)
		return toSequence(recs), err
	}
	recSince := func(ctx context.Context, anchor any, args []any, count int) (timeline.Sequence, error) {
		doc := anchor.(store.Mosaic)
		recs, err := m.Since(ctx, doc.StartHeight, doc.ObjectID, count)
		return toSequence(recs), err
	}

	minSeed := []any{uint64(0), MinID12()}
	maxSeed := []any{uint64(mathutil.MaxUint64), MaxID12()}

	entries := GenerateAbsoluteParameters("", minSeed, maxSeed, absFrom, absSince)
	entries = append(entries, GenerateIDParameters("", "MosaicID", m.lookupMosaicID, recFrom, recSince)...)
	entries = append(entries, GenerateIDParameters("", "ObjectID", m.lookupObjectID, recFrom, recSince)...)
	return timeline.Build(entries...)
}

// MinID12/MaxID12 return the fixed-width 12-byte object-id sentinels as a
// typed array, matching the shape record extractors expect.
func MinID12() [12]byte { var b [12]byte; return b }
func MaxID12() [12]byte {
	var b [12]byte
	for i := range b {
		b[i] = 0xFF
	}
	return b
}
