// Package validate implements the path-parameter parser/validator library:
// keyword recognizers for duration, sentinel, and subfilter path segments,
// plus limit-range checking. Identifier recognition lives in common/hexid;
// integer parsing lives in common/mathutil.
package validate

// Duration is the cursor direction: from (strictly less than anchor) or
// since (strictly greater than anchor). Both are non-inclusive.
type Duration string

const (
	DurationFrom  Duration = "from"
	DurationSince Duration = "since"
)

// ParseDuration recognizes the duration keyword. Keywords are case-sensitive
// lowercase.
func ParseDuration(s string) (Duration, bool) {
	switch s {
	case string(DurationFrom):
		return DurationFrom, true
	case string(DurationSince):
		return DurationSince, true
	default:
		return "", false
	}
}

// Sentinel identifies an anchor keyword denoting one extreme of a family's
// sort order.
type Sentinel int

const (
	SentinelNone Sentinel = iota
	SentinelMin
	SentinelMax
)

// timeSentinels and quantitySentinels are separate alias sets because a
// family's primary sort key is either time-based (block height) or
// quantity-based (importance, harvested fees, balance).
var timeSentinels = map[string]Sentinel{
	"earliest": SentinelMin,
	"min":      SentinelMin,
	"latest":   SentinelMax,
	"max":      SentinelMax,
}

var quantitySentinels = map[string]Sentinel{
	"least": SentinelMin,
	"min":   SentinelMin,
	"most":  SentinelMax,
	"max":   SentinelMax,
}

// ParseTimeSentinel recognizes the absolute-time sentinel aliases (earliest
// ≡ min, latest ≡ max) used by time-sorted families (blocks, transactions,
// mosaics, namespaces).
func ParseTimeSentinel(s string) (Sentinel, bool) {
	v, ok := timeSentinels[s]
	return v, ok
}

// ParseQuantitySentinel recognizes the absolute-quantity sentinel aliases
// (least ≡ min, most ≡ max) used by quantity-sorted families (accounts).
func ParseQuantitySentinel(s string) (Sentinel, bool) {
	v, ok := quantitySentinels[s]
	return v, ok
}

// TransferFilter is the transactions-by-type-with-filter subfilter,
// currently defined only for the transfer type.
type TransferFilter string

const (
	FilterMosaic   TransferFilter = "mosaic"
	FilterMultisig TransferFilter = "multisig"
)

// ParseTransferFilter recognizes the filter path segment.
func ParseTransferFilter(s string) (TransferFilter, bool) {
	switch s {
	case string(FilterMosaic):
		return FilterMosaic, true
	case string(FilterMultisig):
		return FilterMultisig, true
	default:
		return "", false
	}
}

// TransactionType is the transfer-transaction-type keyword used by the
// `/transactions/:duration/:anchor/type/:type/...` routes.
type TransactionType string

const (
	TypeTransfer          TransactionType = "transfer"
	TypeRegisterNamespace TransactionType = "registerNamespace"
	TypeMosaicDefinition  TransactionType = "mosaicDefinition"
	TypeMultisigAccount   TransactionType = "multisigAccount"
)

var transactionTypes = map[string]TransactionType{
	string(TypeTransfer):          TypeTransfer,
	string(TypeRegisterNamespace): TypeRegisterNamespace,
	string(TypeMosaicDefinition):  TypeMosaicDefinition,
	string(TypeMultisigAccount):   TypeMultisigAccount,
}

// ParseTransactionType recognizes the :type path segment.
func ParseTransactionType(s string) (TransactionType, bool) {
	v, ok := transactionTypes[s]
	return v, ok
}

// HarvestedWhich selects the accounts-by-harvested-* route variant.
type HarvestedWhich string

const (
	HarvestedBlocks HarvestedWhich = "blocks"
	HarvestedFees   HarvestedWhich = "fees"
)

// ParseHarvestedWhich recognizes the :which path segment on
// /accounts/harvested/:which/...
func ParseHarvestedWhich(s string) (HarvestedWhich, bool) {
	switch s {
	case string(HarvestedBlocks):
		return HarvestedBlocks, true
	case string(HarvestedFees):
		return HarvestedFees, true
	default:
		return "", false
	}
}

// BalanceWhich selects the well-known mosaic alias for accounts-by-balance.
type BalanceWhich string

const (
	BalanceCurrency BalanceWhich = "currency"
	BalanceHarvest  BalanceWhich = "harvest"
	BalanceXem      BalanceWhich = "xem"
)

// ParseBalanceWhich recognizes the :which path segment on
// /accounts/balance/:which/...
func ParseBalanceWhich(s string) (BalanceWhich, bool) {
	switch s {
	case string(BalanceCurrency):
		return BalanceCurrency, true
	case string(BalanceHarvest):
		return BalanceHarvest, true
	case string(BalanceXem):
		return BalanceXem, true
	default:
		return "", false
	}
}
