package store_test

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/erigontech/chainview/kv"
	"github.com/erigontech/chainview/store"
	"github.com/stretchr/testify/require"
)

func heightKey(h uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, h)
	return b
}

func seedBlocks(t *testing.T, s *store.MemStore, heights ...uint64) {
	t.Helper()
	for _, h := range heights {
		s.Put(kv.Blocks, store.Record{Key: heightKey(h), Doc: store.Block{Height: h}}, map[string][]byte{
			"height": heightKey(h),
		})
	}
}

func TestMemStoreDescendLess(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	seedBlocks(t, s, 1, 2, 3, 5, 8)

	got, err := s.DescendLess(ctx, kv.Blocks, heightKey(5), 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	// descending order, strictly less than 5
	want := []uint64{3, 2, 1}
	for i, h := range want {
		b := got[i].Doc.(store.Block)
		require.Equal(t, h, b.Height)
	}
	require.Equal(t, uint64(3), got[0].Doc.(store.Block).Height)
}

func TestMemStoreDescendLessLimit(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	seedBlocks(t, s, 1, 2, 3, 5, 8)

	got, err := s.DescendLess(ctx, kv.Blocks, heightKey(8), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, uint64(5), got[0].Doc.(store.Block).Height)
	require.Equal(t, uint64(3), got[1].Doc.(store.Block).Height)
}

func TestMemStoreAscendGreater(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	seedBlocks(t, s, 1, 2, 3, 5, 8)

	got, err := s.AscendGreater(ctx, kv.Blocks, heightKey(2), 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, uint64(3), got[0].Doc.(store.Block).Height)
	require.Equal(t, uint64(5), got[1].Doc.(store.Block).Height)
	require.Equal(t, uint64(8), got[2].Doc.(store.Block).Height)
}

func TestMemStoreAscendGreaterLimitKeepsNearest(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	seedBlocks(t, s, 1, 2, 3, 5, 8)

	got, err := s.AscendGreater(ctx, kv.Blocks, heightKey(1), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, uint64(2), got[0].Doc.(store.Block).Height)
	require.Equal(t, uint64(3), got[1].Doc.(store.Block).Height)
}

func TestMemStoreLookupAndExists(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	seedBlocks(t, s, 42)

	rec, err := s.Lookup(ctx, kv.Blocks, "height", heightKey(42))
	require.NoError(t, err)
	require.Equal(t, uint64(42), rec.Doc.(store.Block).Height)

	ok, err := s.Exists(ctx, kv.Blocks, "height", heightKey(42))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Exists(ctx, kv.Blocks, "height", heightKey(99))
	require.NoError(t, err)
	require.False(t, ok)

	_, err = s.Lookup(ctx, kv.Blocks, "height", heightKey(99))
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemStoreLookupUnknownIndex(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	seedBlocks(t, s, 1)

	_, err := s.Lookup(ctx, kv.Blocks, "nope", heightKey(1))
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemStoreLookupAll(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	agg := []byte("aggregate-1")
	s.Put(kv.Transactions, store.Record{Key: heightKey(1), Doc: store.Transaction{Height: 1, Index: 0}}, map[string][]byte{
		"aggregateId": agg,
	})
	s.Put(kv.Transactions, store.Record{Key: heightKey(1), Doc: store.Transaction{Height: 1, Index: 1}}, map[string][]byte{
		"aggregateId": agg,
	})
	s.Put(kv.Transactions, store.Record{Key: heightKey(2), Doc: store.Transaction{Height: 2, Index: 0}}, nil)

	recs, err := s.LookupAll(ctx, kv.Transactions, "aggregateId", agg)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	recs, err = s.LookupAll(ctx, kv.Transactions, "aggregateId", []byte("missing"))
	require.NoError(t, err)
	require.Empty(t, recs)
}

func TestMemStoreEmptyCollection(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()

	got, err := s.DescendLess(ctx, kv.Blocks, heightKey(100), 10)
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = s.AscendGreater(ctx, kv.Blocks, heightKey(0), 10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMemStoreZeroLimit(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	seedBlocks(t, s, 1, 2)

	got, err := s.DescendLess(ctx, kv.Blocks, heightKey(10), 0)
	require.NoError(t, err)
	require.Empty(t, got)
}
