// Copyright 2017 The go-ethereum Authors
// (original work)
// Copyright 2024 The Erigon Authors
// (modifications)
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Package mathutil holds the integer parsing and sentinel-arithmetic helpers
// shared by the path-parameter validator and the family query builders.
package mathutil

import (
	"math/bits"
	"strconv"

	"github.com/holiman/uint256"
)

// Integer limit values used to synthesize min/max anchor tuples.
const (
	MaxUint32 = 1<<32 - 1
	MaxInt32  = 1<<31 - 1
	MinInt32  = -1 << 31
	MaxUint64 = 1<<64 - 1
)

// MaxUint64Val is the uint256 representation of MaxUint64, used wherever a
// composite-key sentinel needs 64-bit-clean arithmetic without overflow
// (importance/fee aggregation, balance sums).
var MaxUint64Val = uint256.NewInt(MaxUint64)

// ParseUint64 parses s as a non-negative decimal integer. Leading zeros are
// accepted. The empty string is rejected because a :limit or integer-
// identifier path segment must never silently default to zero.
func ParseUint64(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 10, 64)
	return v, err == nil
}

// MustParseUint64 parses s as an integer and panics if the string is invalid.
// Reserved for call sites that have already validated s with ParseUint64.
func MustParseUint64(s string) uint64 {
	v, ok := ParseUint64(s)
	if !ok {
		panic("mathutil: invalid unsigned 64 bit integer: " + s)
	}
	return v
}

// SafeAdd returns x+y and whether the addition overflowed.
func SafeAdd(x, y uint64) (uint64, bool) {
	sum, carryOut := bits.Add64(x, y, 0)
	return sum, carryOut != 0
}

// SumUint64 adds amounts into an overflow-checked uint256 accumulator and
// returns the result as a uint64, saturating at MaxUint64 on overflow rather
// than wrapping - used by the harvestedFees and balance-in-mosaic account
// aggregations.
func SumUint64(amounts []uint64) uint64 {
	acc := new(uint256.Int)
	term := new(uint256.Int)
	for _, a := range amounts {
		term.SetUint64(a)
		acc.Add(acc, term)
	}
	if acc.Gt(MaxUint64Val) {
		return MaxUint64
	}
	return acc.Uint64()
}

// ClampSubUint64 returns x-y, clamped to 0 instead of wrapping when y > x.
func ClampSubUint64(x, y uint64) uint64 {
	if y > x {
		return 0
	}
	return x - y
}

// CeilDiv computes ceil(x/y), returning 0 for y == 0.
func CeilDiv(x, y int) int {
	if y == 0 {
		return 0
	}
	return (x + y - 1) / y
}
