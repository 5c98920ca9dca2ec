// Package core implements the placement engine: interned identifiers, the
// netlist/bound-device data model, integrity and checksum machinery, and
// the constraint and heuristic placers that consume them.
package core

// Id is a 32-bit index into a context-local string table. The zero value
// denotes the null identifier; index 0 is reserved and never returned by
// Intern for a non-empty string.
//
// Two Ids minted by different Interners are not comparable — a design has
// exactly one active Interner, owned by its Context.
type Id uint32

// IsNull reports whether id is the null identifier.
func (id Id) IsNull() bool { return id == 0 }

// Interner maps strings to dense integer ids and back. Two parallel
// structures back it: a map from string to index, and an append-only slice
// from index to string, so that each distinct string is stored exactly once.
//
// The interner is single-writer: callers external to the owning Context
// must not mutate it concurrently.
type Interner struct {
	indices map[string]Id
	strings []string
}

// NewInterner returns an Interner with the null slot pre-registered.
func NewInterner() *Interner {
	return &Interner{
		indices: map[string]Id{"": 0},
		strings: []string{""},
	}
}

// Intern returns the id for s, allocating a new one if s has not been
// interned yet. O(1) amortised.
func (in *Interner) Intern(s string) Id {
	if id, ok := in.indices[s]; ok {
		return id
	}
	id := Id(len(in.strings))
	in.strings = append(in.strings, s)
	in.indices[s] = id
	return id
}

// Str returns the string an id was interned from. Panics on an id this
// Interner never issued — that is always a caller bug, never recoverable
// design-state drift.
func (in *Interner) Str(id Id) string {
	return in.strings[id]
}

// Lookup returns the id for s without interning it, reporting whether s is
// already known.
func (in *Interner) Lookup(s string) (Id, bool) {
	id, ok := in.indices[s]
	return id, ok
}

// Len returns the number of interned strings, including the reserved null
// slot.
func (in *Interner) Len() int {
	return len(in.strings)
}

// InitializeAdd bulk pre-registers s at expectedIdx, used by architecture
// built-in tables to verify their compile-time numbering against the
// interner's runtime numbering. It fails if expectedIdx is not the
// next-free slot, or if s has already been interned under a different id.
func (in *Interner) InitializeAdd(s string, expectedIdx Id) error {
	if existing, ok := in.indices[s]; ok {
		return newErrorf(KindInvariantFailure, "initializeAdd: %q already interned as %d, expected %d", s, existing, expectedIdx)
	}
	if expectedIdx != Id(len(in.strings)) {
		return newErrorf(KindInvariantFailure, "initializeAdd: %q expected at next-free slot %d, got %d", s, len(in.strings), expectedIdx)
	}
	in.strings = append(in.strings, s)
	in.indices[s] = expectedIdx
	return nil
}
