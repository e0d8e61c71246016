package families

import (
	"context"

	"github.com/erigontech/chainview/common/mathutil"
	"github.com/erigontech/chainview/kv"
	"github.com/erigontech/chainview/store"
	"github.com/erigontech/chainview/timeline"
)

// Blocks is the query builder for the /blocks route. Its key has no
// tie-breaker: height alone is a total order, so the generic From/Since
// scan already implements the windowing the route describes (DescendLess
// with count as the limit returns exactly the [max(1,target-count),target)
// window; AscendGreater anchored above the chain tip naturally returns
// nothing, so a Since request beyond tip stays empty even after growth).
type Blocks struct {
	Store store.Store
}

func blockKey(height uint64) []byte { return EncodeUint64(height) }

// From returns up to count blocks strictly below height, descending.
func (b Blocks) From(ctx context.Context, height uint64, count int) ([]store.Record, error) {
	return ScanFrom(ctx, b.Store, kv.Blocks, blockKey(height), count)
}

// Since returns up to count blocks strictly above height, descending.
func (b Blocks) Since(ctx context.Context, height uint64, count int) ([]store.Record, error) {
	return ScanSince(ctx, b.Store, kv.Blocks, blockKey(height), count)
}

func (b Blocks) lookupHeight(ctx context.Context, value any) (any, bool, error) {
	height := value.(uint64)
	rec, err := b.Store.Lookup(ctx, kv.Blocks, "height", blockKey(height))
	if err == store.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec.Doc.(store.Block), true, nil
}

func (b Blocks) lookupHash(ctx context.Context, value any) (any, bool, error) {
	hash := value.([]byte)
	rec, err := b.Store.Lookup(ctx, kv.Blocks, "hash", hash)
	if err == store.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec.Doc.(store.Block), true, nil
}

// Timeline assembles the full blocks method surface: fromMin/fromMax/
// sinceMin/sinceMax plus the hash and height identifier entries, in the
// family's priority order (hash before height).
func (b Blocks) Timeline() *timeline.Timeline {
	absFrom := func(ctx context.Context, seed []any, args []any, count int) (timeline.Sequence, error) {
		recs, err := b.From(ctx, seed[0].(uint64), count)
		return toSequence(recs), err
	}
	absSince := func(ctx context.Context, seed []any, args []any, count int) (timeline.Sequence, error) {
		recs, err := b.Since(ctx, seed[0].(uint64), count)
		return toSequence(recs), err
	}
	recFrom := func(ctx context.Context, anchor any, args []any, count int) (timeline.Sequence, error) {
		recs, err := b.From(ctx, anchor.(store.Block).Height, count)
		return toSequence(recs), err
	}
	recSince := func(ctx context.Context, anchor any, args []any, count int) (timeline.Sequence, error) {
		recs, err := b.Since(ctx, anchor.(store.Block).Height, count)
		return toSequence(recs), err
	}

	entries := GenerateAbsoluteParameters("", []any{uint64(1)}, []any{uint64(mathutil.MaxUint64)}, absFrom, absSince)
	entries = append(entries, GenerateIDParameters("", "Hash", b.lookupHash, recFrom, recSince)...)
	entries = append(entries, GenerateIDParameters("", "Height", b.lookupHeight, recFrom, recSince)...)
	return timeline.Build(entries...)
}

// GenerateAbsoluteParameters re-exports timeline.GenerateAbsoluteParameters
// under the families package so family files read as a single vocabulary.
func GenerateAbsoluteParameters(base string, minSeed, maxSeed []any, from, since timeline.AbsoluteFunc) []timeline.Entry {
	return timeline.GenerateAbsoluteParameters(base, minSeed, maxSeed, from, since)
}

// GenerateIDParameters re-exports timeline.GenerateIDParameters under the
// families package for the same reason.
func GenerateIDParameters(base, keyName string, lookup timeline.LookupFunc, from, since timeline.RecordFunc) []timeline.Entry {
	return timeline.GenerateIDParameters(base, keyName, lookup, from, since)
}

func toSequence(recs []store.Record) timeline.Sequence {
	seq := make(timeline.Sequence, len(recs))
	for i, r := range recs {
		seq[i] = r.Doc
	}
	return seq
}
