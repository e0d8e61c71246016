package timeline

// GenerateAbsoluteParameters emits the four entries every family gets for
// its absolute (sentinel-anchored) cases: "from min" and "since max" are
// trivially empty (nothing sorts before the family minimum, nothing sorts
// after the family maximum), while "from max" and "since min" delegate to
// the family's base+From / base+Since store methods seeded with maxSeed /
// minSeed respectively.
//
// base is a family-chosen prefix prepended to the resulting entry names
// fromMin, fromMax, sinceMin, sinceMax; every family in this repository
// passes "".
func GenerateAbsoluteParameters(base string, minSeed, maxSeed []any, from, since AbsoluteFunc) []Entry {
	return []Entry{
		{Name: base + "fromMin", Kind: Empty},
		{Name: base + "fromMax", Kind: Absolute, Seed: maxSeed, Abs: from},
		{Name: base + "sinceMin", Kind: Absolute, Seed: minSeed, Abs: since},
		{Name: base + "sinceMax", Kind: Empty},
	}
}

// GenerateIDParameters emits the from<KeyName>/since<KeyName> identifier
// entries for one identifier shape a family's anchor can take (e.g. "Hash",
// "ObjectID", "PublicKey", "HexAddress", "Base32Address", "NamespaceID").
//
// lookup resolves the raw identifier value to an anchor record; from/since
// then run against that anchor per the Record contract.
func GenerateIDParameters(base, keyName string, lookup LookupFunc, from, since RecordFunc) []Entry {
	return []Entry{
		{Name: base + "from" + keyName, Kind: Identifier, Lookup: lookup, Rec: from},
		{Name: base + "since" + keyName, Kind: Identifier, Lookup: lookup, Rec: since},
	}
}
