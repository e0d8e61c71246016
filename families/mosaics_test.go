package families_test

import (
	"context"
	"testing"

	"github.com/erigontech/chainview/families"
	"github.com/erigontech/chainview/kv"
	"github.com/erigontech/chainview/store"
	"github.com/stretchr/testify/require"
)

func TestMosaicsTimelineMosaicIDFound(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	mosaicID := [8]byte{4, 5, 6}
	key := families.Concat(families.EncodeUint64(10), []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	s.Put(kv.Mosaics, store.Record{Key: key, Doc: store.Mosaic{StartHeight: 10, MosaicID: mosaicID}}, map[string][]byte{
		"mosaicId": mosaicID[:],
	})
	tl := families.Mosaics{Store: s}.Timeline()

	seq, err := tl.Call(ctx, "fromMosaicID", mosaicID[:], nil, 25)
	require.NoError(t, err)
	require.Len(t, seq, 1)
	require.Equal(t, mosaicID, seq[0].(store.Mosaic).MosaicID)
}

func TestMosaicsTimelineMosaicIDNotFound(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	tl := families.Mosaics{Store: s}.Timeline()

	_, err := tl.Call(ctx, "fromMosaicID", []byte{9, 9, 9}, nil, 25)
	require.Error(t, err)
}
