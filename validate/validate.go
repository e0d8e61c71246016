package validate

import "github.com/erigontech/chainview/common/mathutil"

// LimitBounds is the [min, max] range a requested :limit must fall within,
// configured per deployment alongside the default page size.
type LimitBounds struct {
	Min, Max, Default uint64
}

// ParseLimit parses the :limit path segment as a non-negative integer.
// Malformed input is the caller's invalid-argument (409) case.
func ParseLimit(s string) (uint64, bool) {
	return mathutil.ParseUint64(s)
}

// InRange reports whether limit falls within b's [Min, Max] bounds. Outside
// the bounds, the route handler redirects to the canonical URL with
// b.Default substituted.
func (b LimitBounds) InRange(limit uint64) bool {
	return limit >= b.Min && limit <= b.Max
}
