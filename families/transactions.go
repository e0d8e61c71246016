package families

import (
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/erigontech/chainview/common/mathutil"
	"github.com/erigontech/chainview/log"
	"github.com/erigontech/chainview/store"
	"github.com/erigontech/chainview/timeline"
	"golang.org/x/sync/errgroup"
)

// WellKnownMosaics is the network's reserved mosaic id set (currency,
// harvest) excluded by the transfer filter=mosaic subfilter.
type WellKnownMosaics struct {
	set   *roaring.Bitmap
	index map[uint32][8]byte
}

// NewWellKnownMosaics builds the membership set used by KeepMosaicFilter.
func NewWellKnownMosaics(currency, harvest [8]byte) *WellKnownMosaics {
	w := &WellKnownMosaics{set: roaring.New(), index: map[uint32][8]byte{1: currency, 2: harvest}}
	w.set.AddMany([]uint32{1, 2})
	return w
}

func (w *WellKnownMosaics) contains(id [8]byte) bool {
	for surrogate, known := range w.index {
		if known == id && w.set.Contains(surrogate) {
			return true
		}
	}
	return false
}

// txKeep is a predicate consulted after the aggregate-id exclusion already
// applied by the scan loop; it lets by-type and by-type-with-filter reuse
// the same scanning machinery as the unfiltered case.
type txKeep func(ctx context.Context, tx store.Transaction) (bool, error)

// TxKeep is the exported alias family callers outside this package use to
// build a filter for TimelineByTypeFilter.
type TxKeep = txKeep

func keepAll(context.Context, store.Transaction) (bool, error) { return true, nil }

func keepType(want string) txKeep {
	return func(_ context.Context, tx store.Transaction) (bool, error) {
		return tx.Type == want, nil
	}
}

// KeepMosaicFilter keeps transactions with at least one attached mosaic id
// that is not one of wk's well-known mosaics.
func KeepMosaicFilter(wk *WellKnownMosaics) TxKeep {
	return func(_ context.Context, tx store.Transaction) (bool, error) {
		for _, id := range tx.MosaicIDs {
			if !wk.contains(id) {
				return true, nil
			}
		}
		return false, nil
	}
}

// KeepMultisigFilter keeps transactions whose participating addresses join
// to at least one linked multisig account.
func KeepMultisigFilter(s store.Store, multisigCollection string) TxKeep {
	return func(ctx context.Context, tx store.Transaction) (bool, error) {
		ids := roaring.New()
		for i, addr := range tx.ParticipatingAddresses {
			ok, err := s.Exists(ctx, multisigCollection, "hexAddress", addr[:])
			if err != nil {
				return false, err
			}
			if ok {
				ids.Add(uint32(i))
			}
		}
		return !ids.IsEmpty(), nil
	}
}

// Transactions is the query builder shared by the confirmed, unconfirmed,
// and partial routes, and by the by-type / by-type-with-filter variants -
// they differ only in which collection is scanned and which txKeep applies.
type Transactions struct {
	Store      store.Store
	Collection string
	// MultisigCollection names the multisig-account collection for the
	// filter=multisig join. Transactions does not read it itself: the join
	// uses the collection passed to KeepMultisigFilter.
	MultisigCollection string
	// Log receives the AttachInner partial-failure warning; a nil Log
	// silently drops it, which existing tests that build Transactions{}
	// literals without a Logger rely on.
	Log *log.Logger
}

func txKey(height uint64, index int32) []byte {
	return Concat(EncodeUint64(height), EncodeInt32(index))
}

// From returns up to count parent transactions (AggregateID == nil)
// strictly below (height, index), descending, satisfying keep.
func (t Transactions) From(ctx context.Context, height uint64, index int32, count int, keep txKeep) ([]store.Record, error) {
	return t.scan(ctx, true, txKey(height, index), count, keep)
}

// Since returns up to count parent transactions strictly above
// (height, index), descending, satisfying keep.
func (t Transactions) Since(ctx context.Context, height uint64, index int32, count int, keep txKeep) ([]store.Record, error) {
	return t.scan(ctx, false, txKey(height, index), count, keep)
}

// scan repeatedly widens the store fetch until count parent+keep-matching
// rows are gathered or the collection is exhausted, since an unknown number
// of rows in between may be embedded inner transactions or filtered out.
func (t Transactions) scan(ctx context.Context, descending bool, bound []byte, count int, keep txKeep) ([]store.Record, error) {
	if keep == nil {
		keep = keepAll
	}
	var out []store.Record
	cursor := bound
	batch := count
	for len(out) < count {
		var recs []store.Record
		var err error
		if descending {
			recs, err = t.Store.DescendLess(ctx, t.Collection, cursor, batch)
		} else {
			recs, err = t.Store.AscendGreater(ctx, t.Collection, cursor, batch)
		}
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			break
		}
		for _, r := range recs {
			tx := r.Doc.(store.Transaction)
			if tx.AggregateID != nil {
				continue
			}
			ok, err := keep(ctx, tx)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, r)
				if len(out) == count {
					break
				}
			}
		}
		if len(recs) < batch {
			break
		}
		cursor = recs[len(recs)-1].Key
		batch *= 2
	}
	if !descending {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

// TransactionPage pairs a parent transaction with its attached inner
// transactions, the shape the response assembler serializes.
type TransactionPage struct {
	Transaction store.Transaction
	Inner       []store.Transaction
}

// AttachInner batch-fetches each parent's inner transactions concurrently.
// A failed fetch for one parent does not fail the page: it is logged and
// that parent is returned with no inner transactions (the empty known
// prefix), per the partial-failure rule.
func (t Transactions) AttachInner(ctx context.Context, parents []store.Record) []TransactionPage {
	pages := make([]TransactionPage, len(parents))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range parents {
		i, tx := i, p.Doc.(store.Transaction)
		pages[i].Transaction = tx
		g.Go(func() error {
			children, err := t.Store.LookupAll(gctx, t.Collection, "aggregateId", tx.ObjectID[:])
			if err != nil {
				if t.Log != nil {
					t.Log.Warn("inner transaction fetch failed", "objectId", fmt.Sprintf("%x", tx.ObjectID), "err", err)
				}
				return nil
			}
			inner := make([]store.Transaction, len(children))
			for j, c := range children {
				inner[j] = c.Doc.(store.Transaction)
			}
			pages[i].Inner = inner
			return nil
		})
	}
	_ = g.Wait() // errors are already swallowed per-parent above
	return pages
}

// Timeline assembles the confirmed/unconfirmed/partial method surface
// (no type/filter predicate). By-type and by-type-with-filter variants use
// TimelineByType / TimelineByTypeFilter, which build the same full surface
// (absolute plus hash/object-id identifier entries) with their predicate
// applied.
func (t Transactions) Timeline() *timeline.Timeline {
	return t.timelineWithKeep(keepAll)
}

// TimelineByType builds the by-type surface (equality on the type field).
func (t Transactions) TimelineByType(txType string) *timeline.Timeline {
	return t.timelineWithKeep(keepType(txType))
}

// TimelineByTypeFilter builds the by-type-with-filter surface for the
// transfer type: filter is either "mosaic" (well-known-mosaic exclusion) or
// "multisig" (linked-multisig-account join).
func (t Transactions) TimelineByTypeFilter(txType string, filterKeep txKeep) *timeline.Timeline {
	combined := func(ctx context.Context, tx store.Transaction) (bool, error) {
		if tx.Type != txType {
			return false, nil
		}
		return filterKeep(ctx, tx)
	}
	return t.timelineWithKeep(combined)
}

func (t Transactions) timelineWithKeep(keep txKeep) *timeline.Timeline {
	absFrom := func(ctx context.Context, seed []any, args []any, count int) (timeline.Sequence, error) {
		recs, err := t.From(ctx, seed[0].(uint64), seed[1].(int32), count, keep)
		return toSequence(recs), err
	}
	absSince := func(ctx context.Context, seed []any, args []any, count int) (timeline.Sequence, error) {
		recs, err := t.Since(ctx, seed[0].(uint64), seed[1].(int32), count, keep)
		return toSequence(recs), err
	}
	recFrom := func(ctx context.Context, anchor any, args []any, count int) (timeline.Sequence, error) {
		tx := anchor.(store.Transaction)
		recs, err := t.From(ctx, tx.Height, tx.Index, count, keep)
		return toSequence(recs), err
	}
	recSince := func(ctx context.Context, anchor any, args []any, count int) (timeline.Sequence, error) {
		tx := anchor.(store.Transaction)
		recs, err := t.Since(ctx, tx.Height, tx.Index, count, keep)
		return toSequence(recs), err
	}

	minSeed := []any{uint64(0), int32(-1)}
	maxSeed := []any{uint64(mathutil.MaxUint64), int32(0)}

	entries := GenerateAbsoluteParameters("", minSeed, maxSeed, absFrom, absSince)
	entries = append(entries, GenerateIDParameters("", "Hash", t.lookupHash, recFrom, recSince)...)
	entries = append(entries, GenerateIDParameters("", "ObjectID", t.lookupObjectID, recFrom, recSince)...)
	return timeline.Build(entries...)
}

func (t Transactions) lookupHash(ctx context.Context, value any) (any, bool, error) {
	return t.lookupBy(ctx, "hash", value.([]byte))
}

func (t Transactions) lookupObjectID(ctx context.Context, value any) (any, bool, error) {
	return t.lookupBy(ctx, "objectId", value.([]byte))
}

func (t Transactions) lookupBy(ctx context.Context, index string, value []byte) (any, bool, error) {
	rec, err := t.Store.Lookup(ctx, t.Collection, index, value)
	if err == store.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec.Doc.(store.Transaction), true, nil
}
