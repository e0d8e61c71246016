package api

import (
	"github.com/erigontech/chainview/common/hexid"
	"github.com/erigontech/chainview/common/mathutil"
	"github.com/erigontech/chainview/validate"
)

// identifierShape is one recognized anchor identifier form for a family, in
// the family's dispatch priority order.
type identifierShape struct {
	// keyName matches the suffix generateIdParameters used when building
	// the family's Timeline (e.g. "Hash" for fromHash/sinceHash).
	keyName   string
	recognize func(string) bool
	parse     func(string) (any, error)
}

// sentinelKind selects which sentinel alias set a family's primary sort key
// uses: time-sorted families (blocks, transactions, mosaics, namespaces) use
// earliest/latest, quantity-sorted families (accounts) use least/most.
type sentinelKind int

const (
	sentinelTime sentinelKind = iota
	sentinelQuantity
)

// familyAnchor describes how to classify and dispatch an anchor string for
// one route family.
type familyAnchor struct {
	sentinel    sentinelKind
	identifiers []identifierShape
}

func asAnyParser(parse func(string) ([]byte, error)) func(string) (any, error) {
	return func(s string) (any, error) {
		b, err := parse(s)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}

var (
	hashShape = identifierShape{
		keyName:   "Hash",
		recognize: func(s string) bool { return hexid.IsHash256(s) },
		parse:     asAnyParser(hexid.ParseHash256),
	}
	objectIDShape = identifierShape{
		keyName:   "ObjectID",
		recognize: func(s string) bool { return hexid.IsObjectID(s) },
		parse:     asAnyParser(hexid.ParseObjectID),
	}
	heightShape = identifierShape{
		keyName: "Height",
		recognize: func(s string) bool {
			_, ok := mathutil.ParseUint64(s)
			return ok
		},
		parse: func(s string) (any, error) {
			v, _ := mathutil.ParseUint64(s)
			return v, nil
		},
	}
	mosaicIDShape = identifierShape{
		keyName:   "MosaicID",
		recognize: func(s string) bool { return hexid.IsMosaicID(s) },
		parse:     asAnyParser(hexid.ParseMosaicID),
	}
	namespaceIDShape = identifierShape{
		keyName:   "NamespaceID",
		recognize: func(s string) bool { return hexid.IsNamespaceID(s) },
		parse:     asAnyParser(hexid.ParseNamespaceID),
	}
	base32AddressShape = identifierShape{
		keyName:   "Base32Address",
		recognize: func(s string) bool { return hexid.IsBase32Address(s) },
		parse: func(s string) (any, error) {
			if _, err := hexid.ParseBase32Address(s); err != nil {
				return nil, err
			}
			return s, nil
		},
	}
	hexAddressShape = identifierShape{
		keyName:   "HexAddress",
		recognize: func(s string) bool { return hexid.IsHexAddress(s) },
		parse:     asAnyParser(hexid.ParseHexAddress),
	}
	publicKeyShape = identifierShape{
		keyName:   "PublicKey",
		recognize: func(s string) bool { return hexid.IsPublicKey(s) },
		parse:     asAnyParser(hexid.ParsePublicKey),
	}
)

// Per-family anchor dispatch, matching the priority order §4.3 names:
// blocks hash→height, transactions hash→object-id, mosaics id only,
// namespaces id→object-id, accounts base32→hex→public-key.
var (
	blocksAnchor       = familyAnchor{sentinel: sentinelTime, identifiers: []identifierShape{hashShape, heightShape}}
	transactionsAnchor = familyAnchor{sentinel: sentinelTime, identifiers: []identifierShape{hashShape, objectIDShape}}
	mosaicsAnchor      = familyAnchor{sentinel: sentinelTime, identifiers: []identifierShape{mosaicIDShape}}
	namespacesAnchor   = familyAnchor{sentinel: sentinelTime, identifiers: []identifierShape{namespaceIDShape, objectIDShape}}
	accountsAnchor     = familyAnchor{sentinel: sentinelQuantity, identifiers: []identifierShape{base32AddressShape, hexAddressShape, publicKeyShape}}
)

// resolveAnchor classifies anchor for duration against fa and returns the
// Timeline entry name to call plus the lookup value (nil for sentinel
// entries). A return of ErrInvalidArgument means neither a sentinel nor any
// identifier shape matched, or a matching shape failed to parse.
func resolveAnchor(duration validate.Duration, anchor string, fa familyAnchor) (entry string, lookupValue any, err error) {
	var sentinel validate.Sentinel
	var ok bool
	switch fa.sentinel {
	case sentinelTime:
		sentinel, ok = validate.ParseTimeSentinel(anchor)
	case sentinelQuantity:
		sentinel, ok = validate.ParseQuantitySentinel(anchor)
	}
	if ok {
		suffix := "Min"
		if sentinel == validate.SentinelMax {
			suffix = "Max"
		}
		return string(duration) + suffix, nil, nil
	}

	for _, shape := range fa.identifiers {
		if !shape.recognize(anchor) {
			continue
		}
		value, err := shape.parse(anchor)
		if err != nil {
			return "", nil, invalidArgf("malformed " + shape.keyName + " anchor")
		}
		return string(duration) + shape.keyName, value, nil
	}

	return "", nil, invalidArgf("unrecognized anchor keyword or identifier shape")
}
