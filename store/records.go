package store

import "github.com/erigontech/chainview/common/mathutil"

// Domain record shapes for the four entity families. These are the
// documents the in-process store holds; a production store would decode
// the same shapes off the wire from the real document-store collaborator.

// Block is a single indexed block.
type Block struct {
	Height uint64
	Hash   [32]byte
}

// Transaction is a confirmed, unconfirmed, or partial transaction.
// AggregateID is non-nil for an embedded inner transaction; the timeline
// only ever returns parents (AggregateID == nil) and attaches their
// children at serialization time.
type Transaction struct {
	Height      uint64
	Index       int32
	Hash        [32]byte
	ObjectID    [12]byte
	Type        string
	AggregateID []byte
	// MosaicIDs are the mosaics attached to a transfer, used by the
	// filter=mosaic subfilter.
	MosaicIDs [][8]byte
	// ParticipatingAddresses are the accounts involved in the transaction,
	// used by the filter=multisig subfilter's left-join.
	ParticipatingAddresses [][25]byte
}

// Mosaic is an indexed mosaic definition.
type Mosaic struct {
	StartHeight uint64
	ObjectID    [12]byte
	MosaicID    [8]byte
}

// Namespace is an indexed namespace registration. Levels holds the id at
// each of up to three registration depths; Depth is
// the namespace's own depth (1, 2, or 3). A namespace alias (well-known
// currency/harvest/xem) resolves through AliasMosaicID when non-nil.
type Namespace struct {
	StartHeight   uint64
	ObjectID      [12]byte
	NamespaceID   [8]byte
	Levels        [3][8]byte
	Depth         int
	Active        bool
	AliasMosaicID *[8]byte
}

// ActivityBucket is one entry of an account's activityBuckets sub-array.
type ActivityBucket struct {
	TotalFeesPaid uint64
}

// AccountMosaic is one entry of an account's mosaics sub-array balance.
type AccountMosaic struct {
	ID     [8]byte
	Amount uint64
}

// Account is an indexed account.
type Account struct {
	PublicKeyHeight uint64
	ObjectID        [12]byte
	HexAddress      [25]byte
	Base32Address   string
	PublicKey       [32]byte
	// Importances is the importances sub-array; the last entry (or 0 if
	// empty) is the account's current importance.
	Importances     []uint64
	ActivityBuckets []ActivityBucket
	Mosaics         []AccountMosaic
}

// Importance returns the last entry of Importances, or 0 if empty.
func (a Account) Importance() uint64 {
	if len(a.Importances) == 0 {
		return 0
	}
	return a.Importances[len(a.Importances)-1]
}

// HarvestedBlocks returns the cardinality of ActivityBuckets.
func (a Account) HarvestedBlocks() uint64 {
	return uint64(len(a.ActivityBuckets))
}

// HarvestedFees returns the sum over ActivityBuckets.TotalFeesPaid.
func (a Account) HarvestedFees() uint64 {
	fees := make([]uint64, len(a.ActivityBuckets))
	for i, b := range a.ActivityBuckets {
		fees[i] = b.TotalFeesPaid
	}
	return mathutil.SumUint64(fees)
}

// BalanceOf returns the summed amount of mosaicID in Mosaics, or 0 if absent.
func (a Account) BalanceOf(mosaicID [8]byte) uint64 {
	var amounts []uint64
	for _, m := range a.Mosaics {
		if m.ID == mosaicID {
			amounts = append(amounts, m.Amount)
		}
	}
	return mathutil.SumUint64(amounts)
}
