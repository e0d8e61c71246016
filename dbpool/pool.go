// Package dbpool manages leased access to the document-store collaborator:
// a bounded number of concurrent store operations, context-aware lease
// acquisition, and backoff-based reconnection when the underlying store
// connection drops. It follows the request-then-retry-with-backoff loop the
// teacher uses to wait for a downloader service to come up, adapted to a
// per-request lease instead of a one-time startup wait.
package dbpool

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/erigontech/chainview/store"
	"golang.org/x/sync/semaphore"
)

// ErrPoolClosed is returned by Acquire once the pool has been closed.
var ErrPoolClosed = errors.New("dbpool: pool closed")

// Dialer opens a fresh connection to the store collaborator. Implementations
// wrap whatever transport a production document store uses; the in-repo
// reference implementation wraps a store.MemStore that never actually
// disconnects.
type Dialer func(ctx context.Context) (store.Store, error)

// Pool leases a shared Store to at most maxConcurrent callers at a time.
// Reconnect replaces the connection via Dialer with exponential backoff;
// the pool does not detect a broken connection on its own.
type Pool struct {
	dial    Dialer
	sem     *semaphore.Weighted
	closed  chan struct{}
	current store.Store
}

// New constructs a Pool backed by dial, allowing at most maxConcurrent
// concurrently leased operations.
func New(ctx context.Context, dial Dialer, maxConcurrent int64) (*Pool, error) {
	conn, err := dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("dbpool: initial connect: %w", err)
	}
	return &Pool{
		dial:    dial,
		sem:     semaphore.NewWeighted(maxConcurrent),
		closed:  make(chan struct{}),
		current: conn,
	}, nil
}

// Lease is a single checked-out Store handle; callers must call Release
// when done, exactly once.
type Lease struct {
	pool  *Pool
	Store store.Store
}

// Release returns the lease's concurrency slot to the pool.
func (l *Lease) Release() { l.pool.sem.Release(1) }

// Acquire blocks until a concurrency slot is free or ctx is done, then
// returns a Lease against the pool's current connection.
func (p *Pool) Acquire(ctx context.Context) (*Lease, error) {
	select {
	case <-p.closed:
		return nil, ErrPoolClosed
	default:
	}
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("dbpool: acquire: %w", err)
	}
	return &Lease{pool: p, Store: p.current}, nil
}

// Reconnect replaces the pool's current connection, retrying the dialer
// with exponential backoff until ctx is done. Callers invoke this after
// observing a store operation fail in a way that indicates a dropped
// connection; store errors arising from normal query semantics (not-found,
// invalid argument) must never trigger this.
func (p *Pool) Reconnect(ctx context.Context) error {
	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	return backoff.Retry(func() error {
		conn, err := p.dial(ctx)
		if err != nil {
			return err
		}
		p.current = conn
		return nil
	}, policy)
}

// Close marks the pool closed; in-flight leases are unaffected, but future
// Acquire calls fail with ErrPoolClosed.
func (p *Pool) Close() {
	select {
	case <-p.closed:
	default:
		close(p.closed)
	}
}
