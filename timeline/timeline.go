// Package timeline implements the generic cursor-dispatch engine every
// family query builder is assembled from: a Timeline is a named set of
// entries, each resolving to a sequence of records, a not-found outcome, or
// (for count == 0) the empty sequence without touching the store.
package timeline

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Call when an identifier entry's lookup misses.
// The route handler maps this to 404.
var ErrNotFound = errors.New("timeline: anchor not found")

// Kind is one of the four operation kinds an entry can have.
type Kind int

const (
	// Empty resolves to the empty sequence immediately, without touching
	// the store.
	Empty Kind = iota
	// Absolute calls a store method with a synthesized min/max seed tuple
	// plus the caller's args (ending in count).
	Absolute
	// Record calls a store method with keys extracted from an
	// already-resolved record, plus the caller's args.
	Record
	// Identifier first looks up an id on the store; a miss resolves to
	// ErrNotFound, a hit delegates to the Record behavior.
	Identifier
)

// Sequence is the (possibly empty) result of a successful Absolute or
// Record call, already truncated to at most count entries and sorted in
// the family's presentation order (descending).
type Sequence []any

// AbsoluteFunc runs an Absolute entry: seed is the min/max sentinel tuple
// for this entry, args are the caller-supplied values (e.g. a starting
// height), count bounds the result length.
type AbsoluteFunc func(ctx context.Context, seed []any, args []any, count int) (Sequence, error)

// RecordFunc runs a Record entry against an already-resolved anchor record.
type RecordFunc func(ctx context.Context, anchor any, args []any, count int) (Sequence, error)

// LookupFunc resolves an identifier value to an anchor record. It returns
// (nil, false, nil) on a clean miss and a non-nil error only for a genuine
// store failure.
type LookupFunc func(ctx context.Context, value any) (anchor any, found bool, err error)

// Entry is one named, dispatchable operation on a Timeline.
type Entry struct {
	Name string
	Kind Kind

	// Seed is used by Absolute entries only.
	Seed []any
	Abs  AbsoluteFunc

	// Lookup is used by Identifier entries only; Rec runs after a
	// successful lookup, reusing the Record contract.
	Lookup LookupFunc
	Rec    RecordFunc
}

// Timeline is a family's full method surface: a named set of entries bound
// at construction time from GenerateAbsoluteParameters and
// GenerateIDParameters output.
type Timeline struct {
	entries map[string]Entry
}

// Build assembles a Timeline from entries, keyed by their Name. Build
// panics on a duplicate name: that is always a programming error in the
// family definition, never a runtime condition.
func Build(entries ...Entry) *Timeline {
	t := &Timeline{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if _, dup := t.entries[e.Name]; dup {
			panic(fmt.Sprintf("timeline: duplicate entry name %q", e.Name))
		}
		t.entries[e.Name] = e
	}
	return t
}

// Has reports whether name is a bound entry on t.
func (t *Timeline) Has(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// Call dispatches to the named entry. args are extra caller-supplied values
// passed through unchanged to the entry's Abs or Rec function; the anchor
// itself is not among them. count is the requested page
// size; per the zero-count invariant, count == 0 always resolves to an
// empty sequence without touching the store, regardless of entry kind.
//
// lookupValue is only consulted for Identifier entries.
func (t *Timeline) Call(ctx context.Context, name string, lookupValue any, args []any, count int) (Sequence, error) {
	e, ok := t.entries[name]
	if !ok {
		return nil, fmt.Errorf("timeline: no such entry %q", name)
	}
	if count == 0 {
		return Sequence{}, nil
	}
	switch e.Kind {
	case Empty:
		return Sequence{}, nil
	case Absolute:
		return e.Abs(ctx, e.Seed, args, count)
	case Record:
		// A bare Record entry is only reachable once an anchor record is
		// already in hand; chainview never binds one directly (families
		// only expose Identifier, which wraps Record after a lookup), but
		// the kind is kept distinct per the engine's four-kind contract.
		return nil, fmt.Errorf("timeline: entry %q is kind Record and requires an anchor; call via its Identifier entry", name)
	case Identifier:
		anchor, found, err := e.Lookup(ctx, lookupValue)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, ErrNotFound
		}
		return e.Rec(ctx, anchor, args, count)
	default:
		return nil, fmt.Errorf("timeline: entry %q has unknown kind %d", name, e.Kind)
	}
}
