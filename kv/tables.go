// Copyright 2021 The Erigon Authors
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

// Package kv names the collections the timeline engine pages over, and
// declares each collection's sort-key shape (primary key plus tie-breakers).
package kv

import (
	"fmt"
)

const (
	// Blocks - key: height (u64), no tie-breaker.
	Blocks = "blocks"

	// Transactions - confirmed transactions.
	// key: block height (u64) + intra-block index (i32)
	Transactions = "transactions"

	// UnconfirmedTransactions - mirrors Transactions' key shape, pending state.
	UnconfirmedTransactions = "unconfirmedTransactions"

	// PartialTransactions - mirrors Transactions' key shape, aggregate-bonded state.
	PartialTransactions = "partialTransactions"

	// Mosaics - key: startHeight (u64) + internal object id (12B)
	Mosaics = "mosaics"

	// Namespaces - key: startHeight (u64) + internal object id (12B)
	Namespaces = "namespaces"

	// Accounts - key: publicKeyHeight (u64) + internal object id (12B). The
	// primary sort field (importance/harvestedBlocks/harvestedFees/balance) is
	// computed per query and prepended to this tuple; it is not stored.
	Accounts = "accounts"

	// MultisigAccounts - membership-only collection queried by hexAddress;
	// backs the transactions filter=multisig left-join. No ordered scan is
	// ever run against it, so it carries no sort-key shape.
	MultisigAccounts = "multisigAccounts"
)

// Collections lists every collection name the timeline engine is allowed to
// query. Package init panics if a name in this list has no entry in
// CollectionShapes.
var Collections = []string{
	Blocks,
	Transactions,
	UnconfirmedTransactions,
	PartialTransactions,
	Mosaics,
	Namespaces,
	Accounts,
	MultisigAccounts,
}

// SortKeyShape describes the arity of a collection's composite sort key:
// one primary field plus zero or more tie-breaker fields, all compared
// descending in user-visible output.
type SortKeyShape struct {
	// TieBreakers is the number of tie-breaker fields appended after the
	// primary sort field, e.g. 1 for transactions (index after height);
	// accounts carry 2 (publicKeyHeight, id).
	TieBreakers int
	// PrimaryIsUnique marks collections (only Blocks) whose primary key alone
	// is already a total order, so no tie-breaker predicate is needed.
	PrimaryIsUnique bool
}

// CollectionShapes is a declarative-metadata map: collection name -> key-
// shape metadata, validated against Collections at package init.
var CollectionShapes = map[string]SortKeyShape{
	Blocks:                  {TieBreakers: 0, PrimaryIsUnique: true},
	Transactions:            {TieBreakers: 1},
	UnconfirmedTransactions: {TieBreakers: 1},
	PartialTransactions:     {TieBreakers: 1},
	Mosaics:                 {TieBreakers: 1},
	Namespaces:              {TieBreakers: 1},
	Accounts:                {TieBreakers: 2},
	MultisigAccounts:        {TieBreakers: 0},
}

func init() {
	reinit()
}

// reinit validates that every declared collection has a registered sort-key
// shape; it runs once, at package init.
func reinit() {
	for _, name := range Collections {
		if _, ok := CollectionShapes[name]; !ok {
			panic(fmt.Sprintf("kv: collection %q has no registered sort-key shape", name))
		}
	}
}
