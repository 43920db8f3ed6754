// Package attrs implements the attribute-set data model: an ordered,
// finite collection of (id, bytes) tuples with no duplicate ids, built by
// merging rather than mutated in place. Grounded on the CK_ATTRIBUTE
// handling in _examples/original_source/trust/parser.c
// (p11_attrs_build/merge/take/find_*).
package attrs

import (
	"bytes"
	"encoding/binary"
)

// Attribute is one (id, bytes) tuple.
type Attribute struct {
	ID    AttrID
	Value []byte
}

// Set is an ordered, immutable-on-lookup collection of attributes with
// unique ids. The zero value is an empty set. Sets are rebuilt rather
// than mutated; callers that want a private copy before mutating through
// reflection should use Clone.
type Set struct {
	attrs []Attribute
}

// NewSet builds a set directly from attributes, dropping any with an
// Invalid id and keeping the last occurrence of a duplicate id (same
// collision rule as Build).
func NewSet(attrs ...Attribute) Set {
	return Set{}.with(attrs)
}

// Len returns the number of attributes in the set.
func (s Set) Len() int { return len(s.attrs) }

// All returns the set's attributes in insertion order. The returned slice
// must not be mutated by the caller.
func (s Set) All() []Attribute { return s.attrs }

// Clone returns an independent copy of s (parity with p11_attrs_dup; Go's
// GC makes an explicit Free unnecessary).
func (s Set) Clone() Set {
	out := make([]Attribute, len(s.attrs))
	for i, a := range s.attrs {
		v := make([]byte, len(a.Value))
		copy(v, a.Value)
		out[i] = Attribute{ID: a.ID, Value: v}
	}
	return Set{attrs: out}
}

// with returns a new set containing s's attributes overridden or extended
// by overrides, dropping any override whose id is Invalid. Later entries
// in overrides win on id collision, and override entries win over s.
func (s Set) with(overrides []Attribute) Set {
	out := make([]Attribute, 0, len(s.attrs)+len(overrides))
	index := make(map[AttrID]int, len(s.attrs)+len(overrides))

	put := func(a Attribute) {
		if a.ID == Invalid {
			return
		}
		if i, ok := index[a.ID]; ok {
			out[i] = a
			return
		}
		index[a.ID] = len(out)
		out = append(out, a)
	}

	for _, a := range s.attrs {
		put(a)
	}
	for _, a := range overrides {
		put(a)
	}
	return Set{attrs: out}
}

// Build returns a new set containing every attribute of base overridden
// or extended by overrides, except those with id Invalid which are
// omitted. Later-listed attributes win on id collision. Mirrors
// p11_attrs_build.
func Build(base Set, overrides ...Attribute) Set {
	return base.with(overrides)
}

// Merge is like Build but the overlay is itself a set. When replace is
// false, ids already present in base are kept (the overlay does not win).
// Mirrors p11_attrs_merge.
func Merge(base, overlay Set, replace bool) Set {
	if replace {
		return base.with(overlay.attrs)
	}
	kept := make([]Attribute, 0, len(overlay.attrs))
	for _, a := range overlay.attrs {
		if _, ok := base.findIndex(a.ID); ok {
			continue
		}
		kept = append(kept, a)
	}
	return base.with(kept)
}

// Take returns a new set where id's value is replaced by the given bytes,
// adding the attribute if it wasn't already present. Mirrors
// p11_attrs_take.
func Take(s Set, id AttrID, value []byte) Set {
	return s.with([]Attribute{{ID: id, Value: value}})
}

func (s Set) findIndex(id AttrID) (int, bool) {
	for i, a := range s.attrs {
		if a.ID == id {
			return i, true
		}
	}
	return 0, false
}

// FindValid returns the attribute for id if present (and its id isn't
// Invalid, which can't happen for a stored attribute, but mirrors the
// "valid" terminology from p11_attrs_find_valid).
func (s Set) FindValid(id AttrID) (Attribute, bool) {
	if i, ok := s.findIndex(id); ok {
		return s.attrs[i], true
	}
	return Attribute{}, false
}

// FindValue returns the raw bytes for id.
func (s Set) FindValue(id AttrID) ([]byte, bool) {
	a, ok := s.FindValid(id)
	if !ok {
		return nil, false
	}
	return a.Value, true
}

// FindBool returns the CK_BBOOL value for id.
func (s Set) FindBool(id AttrID) (bool, bool) {
	v, ok := s.FindValue(id)
	if !ok || len(v) == 0 {
		return false, false
	}
	return v[0] != 0, true
}

// FindULong returns the CK_ULONG (little-endian, 8 byte) value for id.
func (s Set) FindULong(id AttrID) (uint64, bool) {
	v, ok := s.FindValue(id)
	if !ok {
		return 0, false
	}
	switch len(v) {
	case 8:
		return binary.LittleEndian.Uint64(v), true
	case 4:
		return uint64(binary.LittleEndian.Uint32(v)), true
	default:
		return 0, false
	}
}

// BoolAttr encodes a boolean as a single-byte CK_BBOOL attribute value.
func BoolAttr(id AttrID, v bool) Attribute {
	b := byte(0)
	if v {
		b = 1
	}
	return Attribute{ID: id, Value: []byte{b}}
}

// ULongAttr encodes a CK_ULONG attribute value (8-byte little-endian, the
// native CK_ULONG width on the common 64-bit platforms this core targets).
func ULongAttr(id AttrID, v uint64) Attribute {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return Attribute{ID: id, Value: b}
}

// StrAttr wraps a raw byte/string attribute value.
func StrAttr(id AttrID, v []byte) Attribute {
	return Attribute{ID: id, Value: v}
}

// Equal reports whether two sets contain the same attributes (order
// independent), the "byte-equal" comparison index.Find and duplicate
// resolution both rely on.
func (s Set) Equal(o Set) bool {
	if len(s.attrs) != len(o.attrs) {
		return false
	}
	for _, a := range s.attrs {
		v, ok := o.FindValue(a.ID)
		if !ok || !bytes.Equal(v, a.Value) {
			return false
		}
	}
	return true
}

// MatchesTemplate reports whether every attribute in template is present
// in s with a byte-equal value (the conjunctive match index.Find uses).
func (s Set) MatchesTemplate(template Set) bool {
	for _, want := range template.attrs {
		got, ok := s.FindValue(want.ID)
		if !ok || !bytes.Equal(got, want.Value) {
			return false
		}
	}
	return true
}
