package attrs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDropsInvalid(t *testing.T) {
	base := NewSet(
		StrAttr(Label, []byte("orig")),
		BoolAttr(Trusted, false),
	)
	built := Build(base, Attribute{ID: Invalid, Value: []byte("ignored")}, StrAttr(Label, []byte("new")))

	require.Equal(t, 2, built.Len())
	v, ok := built.FindValue(Label)
	require.True(t, ok)
	assert.Equal(t, "new", string(v))
}

func TestBuildLaterWins(t *testing.T) {
	base := NewSet()
	built := Build(base, StrAttr(Label, []byte("a")), StrAttr(Label, []byte("b")))
	v, _ := built.FindValue(Label)
	assert.Equal(t, "b", string(v))
}

func TestMergeReplaceFalseKeepsBase(t *testing.T) {
	base := NewSet(StrAttr(Label, []byte("base")))
	overlay := NewSet(StrAttr(Label, []byte("overlay")), BoolAttr(Trusted, true))

	merged := Merge(base, overlay, false)
	v, _ := merged.FindValue(Label)
	assert.Equal(t, "base", string(v))
	trusted, ok := merged.FindBool(Trusted)
	assert.True(t, ok)
	assert.True(t, trusted)
}

func TestMergeReplaceTrueOverwrites(t *testing.T) {
	base := NewSet(StrAttr(Label, []byte("base")))
	overlay := NewSet(StrAttr(Label, []byte("overlay")))

	merged := Merge(base, overlay, true)
	v, _ := merged.FindValue(Label)
	assert.Equal(t, "overlay", string(v))
}

func TestTake(t *testing.T) {
	base := NewSet(StrAttr(Value, []byte("old")))
	taken := Take(base, Value, []byte("new"))
	v, _ := taken.FindValue(Value)
	assert.Equal(t, "new", string(v))
}

func TestFindULong(t *testing.T) {
	s := NewSet(ULongAttr(Class, uint64(ClassCertificate)))
	got, ok := s.FindULong(Class)
	require.True(t, ok)
	assert.Equal(t, uint64(ClassCertificate), got)
}

func TestFindValidMissing(t *testing.T) {
	s := NewSet()
	_, ok := s.FindValid(Label)
	assert.False(t, ok)
}

func TestNoDuplicateIDs(t *testing.T) {
	s := NewSet(StrAttr(Label, []byte("a")), StrAttr(Label, []byte("b")))
	assert.Equal(t, 1, s.Len())
}

func TestEqualAndMatchesTemplate(t *testing.T) {
	a := NewSet(StrAttr(Label, []byte("x")), BoolAttr(Trusted, true))
	b := NewSet(BoolAttr(Trusted, true), StrAttr(Label, []byte("x")))
	assert.True(t, a.Equal(b))

	template := NewSet(BoolAttr(Trusted, true))
	assert.True(t, a.MatchesTemplate(template))

	template2 := NewSet(BoolAttr(Trusted, false))
	assert.False(t, a.MatchesTemplate(template2))
}

func TestCloneIndependence(t *testing.T) {
	s := NewSet(StrAttr(Value, []byte("abc")))
	c := s.Clone()
	v, _ := s.FindValue(Value)
	v[0] = 'X'
	cv, _ := c.FindValue(Value)
	assert.Equal(t, "abc", string(cv))
}

// TestSetsEqualIgnoringOrder asserts the same attributes built in two
// different orders land in the same With set, independent of insertion
// order: with() keys on id, not position, so the resulting attrs slice
// order can differ while the set is still the same set.
func TestSetsEqualIgnoringOrder(t *testing.T) {
	a := NewSet(StrAttr(Label, []byte("x")), BoolAttr(Trusted, true), ULongAttr(Class, 1))
	b := NewSet(ULongAttr(Class, 1), BoolAttr(Trusted, true), StrAttr(Label, []byte("x")))

	byID := cmpopts.SortSlices(func(x, y Attribute) bool { return x.ID < y.ID })
	if diff := cmp.Diff(a.All(), b.All(), byID); diff != "" {
		t.Errorf("sets built in different orders diverge (-a +b):\n%s", diff)
	}
}
