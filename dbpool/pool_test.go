package dbpool_test

import (
	"context"
	"testing"
	"time"

	"github.com/erigontech/chainview/dbpool"
	"github.com/erigontech/chainview/store"
	"github.com/stretchr/testify/require"
)

func memDialer(callCount *int) dbpool.Dialer {
	return func(ctx context.Context) (store.Store, error) {
		*callCount++
		return store.NewMemStore(), nil
	}
}

func TestAcquireReleaseRoundTrip(t *testing.T) {
	calls := 0
	p, err := dbpool.New(context.Background(), memDialer(&calls), 2)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	lease, err := p.Acquire(context.Background())
	require.NoError(t, err)
	require.NotNil(t, lease.Store)
	lease.Release()
}

func TestAcquireBlocksAtCapacity(t *testing.T) {
	calls := 0
	p, err := dbpool.New(context.Background(), memDialer(&calls), 1)
	require.NoError(t, err)

	lease1, err := p.Acquire(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = p.Acquire(ctx)
	require.Error(t, err)

	lease1.Release()
	lease2, err := p.Acquire(context.Background())
	require.NoError(t, err)
	lease2.Release()
}

func TestAcquireAfterCloseFails(t *testing.T) {
	calls := 0
	p, err := dbpool.New(context.Background(), memDialer(&calls), 1)
	require.NoError(t, err)
	p.Close()

	_, err = p.Acquire(context.Background())
	require.ErrorIs(t, err, dbpool.ErrPoolClosed)
}

func TestReconnectReplacesConnection(t *testing.T) {
	calls := 0
	p, err := dbpool.New(context.Background(), memDialer(&calls), 1)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	require.NoError(t, p.Reconnect(context.Background()))
	require.Equal(t, 2, calls)
}
