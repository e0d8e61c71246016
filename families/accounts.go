package families

import (
	"bytes"
	"context"
	"sort"

	"github.com/erigontech/chainview/common/mathutil"
	"github.com/erigontech/chainview/kv"
	"github.com/erigontech/chainview/store"
	"github.com/erigontech/chainview/timeline"
)

// accountsFetchLimit bounds the full-collection scan Accounts performs for
// every query: the sort field (importance, harvestedBlocks, harvestedFees,
// balance-in-mosaic) is computed, never stored, so the in-process reference
// store has no pre-built index to range-scan and instead recomputes the
// field over every account on each call. A production store would push
// this computation down to a server-side sort; this limit is generous
// enough for the demo/test scale this repository runs at.
const accountsFetchLimit = 1 << 20

// accountField extracts one family variant's computed sort value.
type accountField func(store.Account) uint64

func importanceField(a store.Account) uint64     { return a.Importance() }
func harvestedBlocksField(a store.Account) uint64 { return a.HarvestedBlocks() }
func harvestedFeesField(a store.Account) uint64   { return a.HarvestedFees() }

func balanceField(mosaicID [8]byte) accountField {
	return func(a store.Account) uint64 { return a.BalanceOf(mosaicID) }
}

// Accounts is the query builder shared by accounts/importance,
// accounts/harvested/{blocks,fees}, and accounts/balance/{currency,
// harvest,xem}; Field selects which computed value is sorted on.
type Accounts struct {
	Store store.Store
	Field accountField
}

func accountCompositeKey(fieldVal, pkHeight uint64, objectID [12]byte) []byte {
	return Concat(EncodeUint64(fieldVal), EncodeUint64(pkHeight), objectID[:])
}

func (a Accounts) fetchAll(ctx context.Context) ([]store.Account, error) {
	maxKey := Concat(EncodeUint64(mathutil.MaxUint64), MaxID(12))
	recs, err := a.Store.DescendLess(ctx, kv.Accounts, maxKey, accountsFetchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]store.Account, len(recs))
	for i, r := range recs {
		out[i] = r.Doc.(store.Account)
	}
	return out, nil
}

func (a Accounts) sortKey(acc store.Account) []byte {
	return accountCompositeKey(a.Field(acc), acc.PublicKeyHeight, acc.ObjectID)
}

// From returns up to count accounts whose (field, publicKeyHeight,
// objectId) tuple is strictly less than anchor, descending.
func (a Accounts) From(ctx context.Context, fieldVal, pkHeight uint64, objectID [12]byte, count int) ([]store.Account, error) {
	accounts, err := a.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	anchor := accountCompositeKey(fieldVal, pkHeight, objectID)
	matched := accounts[:0:0]
	for _, acc := range accounts {
		if bytes.Compare(a.sortKey(acc), anchor) < 0 {
			matched = append(matched, acc)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return bytes.Compare(a.sortKey(matched[i]), a.sortKey(matched[j])) > 0
	})
	if len(matched) > count {
		matched = matched[:count]
	}
	return matched, nil
}

// Since returns up to count accounts whose tuple is strictly greater than
// anchor, descending (nearest-greater rows survive count).
func (a Accounts) Since(ctx context.Context, fieldVal, pkHeight uint64, objectID [12]byte, count int) ([]store.Account, error) {
	accounts, err := a.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	anchor := accountCompositeKey(fieldVal, pkHeight, objectID)
	matched := accounts[:0:0]
	for _, acc := range accounts {
		if bytes.Compare(a.sortKey(acc), anchor) > 0 {
			matched = append(matched, acc)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return bytes.Compare(a.sortKey(matched[i]), a.sortKey(matched[j])) < 0
	})
	if len(matched) > count {
		matched = matched[:count]
	}
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	return matched, nil
}

func (a Accounts) lookupBase32(ctx context.Context, value any) (any, bool, error) {
	return a.lookupBy(ctx, "base32Address", []byte(value.(string)))
}

func (a Accounts) lookupHexAddress(ctx context.Context, value any) (any, bool, error) {
	return a.lookupBy(ctx, "hexAddress", value.([]byte))
}

func (a Accounts) lookupPublicKey(ctx context.Context, value any) (any, bool, error) {
	return a.lookupBy(ctx, "publicKey", value.([]byte))
}

func (a Accounts) lookupBy(ctx context.Context, index string, value []byte) (any, bool, error) {
	rec, err := a.Store.Lookup(ctx, kv.Accounts, index, value)
	if err == store.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec.Doc.(store.Account), true, nil
}

// Timeline assembles an Accounts variant's method surface: absolute
// entries plus identifier entries in the family's priority order
// (base32 address, then hex address, then public key).
func (a Accounts) Timeline() *timeline.Timeline {
	absFrom := func(ctx context.Context, seed []any, args []any, count int) (timeline.Sequence, error) {
		accs, err := a.From(ctx, seed[0].(uint64), seed[1].(uint64), seed[2].([12]byte), count)
		return accountSequence(accs), err
	}
	absSince := func(ctx context.Context, seed []any, args []any, count int) (timeline.Sequence, error) {
		accs, err := a.Since(ctx, seed[0].(uint64), seed[1].(uint64), seed[2].([12]byte), count)
		return accountSequence(accs), err
	}
	recFrom := func(ctx context.Context, anchor any, args []any, count int) (timeline.Sequence, error) {
		acc := anchor.(store.Account)
		accs, err := a.From(ctx, a.Field(acc), acc.PublicKeyHeight, acc.ObjectID, count)
		return accountSequence(accs), err
	}
	recSince := func(ctx context.Context, anchor any, args []any, count int) (timeline.Sequence, error) {
		acc := anchor.(store.Account)
		accs, err := a.Since(ctx, a.Field(acc), acc.PublicKeyHeight, acc.ObjectID, count)
		return accountSequence(accs), err
	}

	minSeed := []any{uint64(0), uint64(0), MinID12()}
	maxSeed := []any{uint64(mathutil.MaxUint64), uint64(mathutil.MaxUint64), MaxID12()}

	entries := GenerateAbsoluteParameters("", minSeed, maxSeed, absFrom, absSince)
	entries = append(entries, GenerateIDParameters("", "Base32Address", a.lookupBase32, recFrom, recSince)...)
	entries = append(entries, GenerateIDParameters("", "HexAddress", a.lookupHexAddress, recFrom, recSince)...)
	entries = append(entries, GenerateIDParameters("", "PublicKey", a.lookupPublicKey, recFrom, recSince)...)
	return timeline.Build(entries...)
}

func accountSequence(accs []store.Account) timeline.Sequence {
	seq := make(timeline.Sequence, len(accs))
	for i, a := range accs {
		seq[i] = a
	}
	return seq
}

// ImportanceAccounts builds the accounts/importance variant.
func ImportanceAccounts(s store.Store) Accounts { return Accounts{Store: s, Field: importanceField} }

// HarvestedBlocksAccounts builds the accounts/harvested/blocks variant.
func HarvestedBlocksAccounts(s store.Store) Accounts {
	return Accounts{Store: s, Field: harvestedBlocksField}
}

// HarvestedFeesAccounts builds the accounts/harvested/fees variant.
func HarvestedFeesAccounts(s store.Store) Accounts {
	return Accounts{Store: s, Field: harvestedFeesField}
}

// BalanceAccounts builds an accounts/balance/{currency,harvest,xem} variant
// once the alias has been resolved to a concrete mosaicID.
func BalanceAccounts(s store.Store, mosaicID [8]byte) Accounts {
	return Accounts{Store: s, Field: balanceField(mosaicID)}
}
