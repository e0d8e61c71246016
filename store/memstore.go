package store

import (
	"bytes"
	"context"
	"encoding/hex"
	"sync"

	"github.com/google/btree"
)

// item is the google/btree element: the composite key plus the record it
// indexes. Keys are fixed-width concatenations of big-endian numeric fields,
// so byte-lexicographic comparison matches the family's numeric lex order.
type item struct {
	key []byte
	rec Record
}

func itemLess(a, b item) bool { return bytes.Compare(a.key, b.key) < 0 }

type memCollection struct {
	mu      sync.RWMutex
	tree    *btree.BTreeG[item]
	indexes map[string]map[string][]Record // index name -> hex(value) -> records, insertion order
}

func newMemCollection() *memCollection {
	return &memCollection{
		tree:    btree.NewG(32, itemLess),
		indexes: make(map[string]map[string][]Record),
	}
}

// MemStore is an in-process, B-tree-backed Store implementation. It is the
// swappable reference implementation for the document-store collaborator:
// every family query builder runs against the Store interface, so a
// production deployment swaps this out without touching families/ or
// timeline/.
type MemStore struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

// NewMemStore constructs an empty store.
func NewMemStore() *MemStore {
	return &MemStore{collections: make(map[string]*memCollection)}
}

func (m *MemStore) collection(name string) *memCollection {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[name]
	if !ok {
		c = newMemCollection()
		m.collections[name] = c
	}
	return c
}

// Put inserts or replaces rec in collection, and registers it under the
// given secondary indexes (index name -> raw index value). Used by the
// seeding/test fixtures; not part of the Store interface the families
// package consumes.
func (m *MemStore) Put(collection string, rec Record, indexValues map[string][]byte) {
	c := m.collection(collection)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tree.ReplaceOrInsert(item{key: rec.Key, rec: rec})
	for idxName, val := range indexValues {
		idx, ok := c.indexes[idxName]
		if !ok {
			idx = make(map[string][]Record)
			c.indexes[idxName] = idx
		}
		k := hex.EncodeToString(val)
		idx[k] = append(idx[k], rec)
	}
}

func (m *MemStore) DescendLess(_ context.Context, collection string, upperExclusive []byte, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, nil
	}
	c := m.collection(collection)
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Record, 0, limit)
	c.tree.Descend(func(it item) bool {
		if bytes.Compare(it.key, upperExclusive) >= 0 {
			return true // keep scanning past keys >= bound
		}
		out = append(out, it.rec)
		return len(out) < limit
	})
	return out, nil
}

func (m *MemStore) AscendGreater(_ context.Context, collection string, lowerExclusive []byte, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, nil
	}
	c := m.collection(collection)
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Record, 0, limit)
	c.tree.Ascend(func(it item) bool {
		if bytes.Compare(it.key, lowerExclusive) <= 0 {
			return true // keep scanning past keys <= bound
		}
		out = append(out, it.rec)
		return len(out) < limit
	})
	return out, nil
}

func (m *MemStore) Lookup(_ context.Context, collection, index string, value []byte) (Record, error) {
	c := m.collection(collection)
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.indexes[index]
	if !ok {
		return Record{}, ErrNotFound
	}
	recs, ok := idx[hex.EncodeToString(value)]
	if !ok || len(recs) == 0 {
		return Record{}, ErrNotFound
	}
	return recs[0], nil
}

func (m *MemStore) Exists(ctx context.Context, collection, index string, value []byte) (bool, error) {
	_, err := m.Lookup(ctx, collection, index, value)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// LookupAll returns every record indexed under value, in insertion order.
// A miss yields an empty slice and no error.
func (m *MemStore) LookupAll(_ context.Context, collection, index string, value []byte) ([]Record, error) {
	c := m.collection(collection)
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.indexes[index]
	if !ok {
		return nil, nil
	}
	recs := idx[hex.EncodeToString(value)]
	out := make([]Record, len(recs))
	copy(out, recs)
	return out, nil
}
