package families

import (
	"context"

	"github.com/erigontech/chainview/common/mathutil"
	"github.com/erigontech/chainview/kv"
	"github.com/erigontech/chainview/store"
	"github.com/erigontech/chainview/timeline"
)

// Namespaces is the query builder for the /namespaces route: composite
// sort key (startHeight, internal object id). Namespace id lookup must
// tolerate three possible registration depths and require the row be
// active; the store's "namespaceId" index is expected to carry an entry
// for each of a namespace's Levels[0:Depth] values, so a single Lookup
// already ORs across all three depths - this builder only adds the
// active-row requirement on top.
type Namespaces struct {
	Store store.Store
}

func namespaceKey(startHeight uint64, objectID [12]byte) []byte {
	return Concat(EncodeUint64(startHeight), objectID[:])
}

func (n Namespaces) From(ctx context.Context, startHeight uint64, objectID [12]byte, count int) ([]store.Record, error) {
	return ScanFrom(ctx, n.Store, kv.Namespaces, namespaceKey(startHeight, objectID), count)
}

func (n Namespaces) Since(ctx context.Context, startHeight uint64, objectID [12]byte, count int) ([]store.Record, error) {
	return ScanSince(ctx, n.Store, kv.Namespaces, namespaceKey(startHeight, objectID), count)
}

func (n Namespaces) lookupNamespaceID(ctx context.Context, value any) (any, bool, error) {
	rec, err := n.Store.Lookup(ctx, kv.Namespaces, "namespaceId", value.([]byte))
	if err == store.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	ns := rec.Doc.(store.Namespace)
	if !ns.Active {
		return nil, false, nil
	}
	return ns, true, nil
}

func (n Namespaces) lookupObjectID(ctx context.Context, value any) (any, bool, error) {
	rec, err := n.Store.Lookup(ctx, kv.Namespaces, "objectId", value.([]byte))
	if err == store.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	ns := rec.Doc.(store.Namespace)
	if !ns.Active {
		return nil, false, nil
	}
	return ns, true, nil
}

// Timeline assembles the namespaces method surface.
func (n Namespaces) Timeline() *timeline.Timeline {
	absFrom := func(ctx context.Context, seed []any, args []any, count int) (timeline.Sequence, error) {
		recs, err := n.From(ctx, seed[0].(uint64), seed[1].([12]byte), count)
		return toSequence(recs), err
	}
	absSince := func(ctx context.Context, seed []any, args []any, count int) (timeline.Sequence, error) {
		recs, err := n.Since(ctx, seed[0].(uint64), seed[1].([12]byte), count)
		return toSequence(recs), err
	}
	recFrom := func(ctx context.Context, anchor any, args []any, count int) (timeline.Sequence, error) {
		doc := anchor.(store.Namespace)
		recs, err := n.From(ctx, doc.StartHeight, doc.ObjectID, count)
		return toSequence(recs), err
	}
	recSince := func(ctx context.Context, anchor any, args []any, count int) (timeline.Sequence, error) {
		doc := anchor.(store.Namespace)
		recs, err := n.Since(ctx, doc.StartHeight, doc.ObjectID, count)
		return toSequence(recs), err
	}

	minSeed := []any{uint64(0), MinID12()}
	maxSeed := []any{uint64(mathutil.MaxUint64), MaxID12()}

	entries := GenerateAbsoluteParameters("", minSeed, maxSeed, absFrom, absSince)
	entries = append(entries, GenerateIDParameters("", "NamespaceID", n.lookupNamespaceID, recFrom, recSince)...)
	entries = append(entries, GenerateIDParameters("", "ObjectID", n.lookupObjectID, recFrom, recSince)...)
	return timeline.Build(entries...)
}
