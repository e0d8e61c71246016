// Package aliasresolve resolves a well-known namespace alias (currency,
// harvest, xem) to the mosaic id it currently points at. The mapping can
// change at runtime (a namespace's linked mosaic is reassignable), so every
// call re-resolves against the store; a short-TTL cache absorbs repeated
// balance-family lookups without risking a long-stale answer.
package aliasresolve

import (
	"context"
	"errors"
	"time"

	"github.com/erigontech/chainview/kv"
	"github.com/erigontech/chainview/store"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrAliasNotFound is returned when the well-known namespace for alias has
// no active registration, or has no linked mosaic. The caller (the
// accounts/balance route) maps this to 404.
var ErrAliasNotFound = errors.New("aliasresolve: alias not found")

// Alias is one of the network's well-known namespace names.
type Alias string

const (
	Currency Alias = "currency"
	Harvest  Alias = "harvest"
	Xem      Alias = "xem"
)

type cacheEntry struct {
	mosaicID [8]byte
	expires  time.Time
}

// Resolver resolves an Alias to a mosaic id, caching hits for TTL.
type Resolver struct {
	store store.Store
	ttl   time.Duration
	cache *lru.Cache[Alias, cacheEntry]
}

// New constructs a Resolver with a bounded LRU cache of size cacheSize and
// entries valid for ttl.
func New(s store.Store, cacheSize int, ttl time.Duration) (*Resolver, error) {
	c, err := lru.New[Alias, cacheEntry](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver{store: s, ttl: ttl, cache: c}, nil
}

// Resolve returns the mosaic id currently linked to alias, consulting the
// cache first and falling back to a fresh namespace lookup on a miss or
// expiry.
func (r *Resolver) Resolve(ctx context.Context, alias Alias) ([8]byte, error) {
	if entry, ok := r.cache.Get(alias); ok && time.Now().Before(entry.expires) {
		return entry.mosaicID, nil
	}

	rec, err := r.store.Lookup(ctx, kv.Namespaces, "aliasName", []byte(alias))
	if err == store.ErrNotFound {
		return [8]byte{}, ErrAliasNotFound
	}
	if err != nil {
		return [8]byte{}, err
	}
	ns := rec.Doc.(store.Namespace)
	if !ns.Active || ns.AliasMosaicID == nil {
		return [8]byte{}, ErrAliasNotFound
	}

	r.cache.Add(alias, cacheEntry{mosaicID: *ns.AliasMosaicID, expires: time.Now().Add(r.ttl)})
	return *ns.AliasMosaicID, nil
}
