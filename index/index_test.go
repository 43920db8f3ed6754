package index

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsencrypt-labs/trustkit/attrs"
)

type recorder struct {
	seen []Handle
}

func (r *recorder) OnChange(h Handle) { r.seen = append(r.seen, h) }

func TestReplaceInsertsWhenZero(t *testing.T) {
	idx := New(nil)
	h, err := idx.Replace(0, attrs.NewSet(attrs.StrAttr(attrs.Label, []byte("a"))))
	require.NoError(t, err)
	assert.NotZero(t, h)

	got, ok := idx.Lookup(h)
	require.True(t, ok)
	v, _ := got.FindValue(attrs.Label)
	assert.Equal(t, "a", string(v))
}

func TestReplaceOverwritesExistingHandle(t *testing.T) {
	idx := New(nil)
	h, _ := idx.Replace(0, attrs.NewSet(attrs.StrAttr(attrs.Label, []byte("a"))))
	_, err := idx.Replace(h, attrs.NewSet(attrs.StrAttr(attrs.Label, []byte("b"))))
	require.NoError(t, err)

	got, _ := idx.Lookup(h)
	v, _ := got.FindValue(attrs.Label)
	assert.Equal(t, "b", string(v))
	assert.Equal(t, 1, idx.Len())
}

func TestFindFirstMatch(t *testing.T) {
	idx := New(nil)
	idx.Replace(0, attrs.NewSet(attrs.BoolAttr(attrs.Trusted, false)))
	h2, _ := idx.Replace(0, attrs.NewSet(attrs.BoolAttr(attrs.Trusted, true)))

	found := idx.Find(attrs.NewSet(attrs.BoolAttr(attrs.Trusted, true)), -1)
	assert.Equal(t, h2, found)
}

func TestFindNoMatchReturnsZero(t *testing.T) {
	idx := New(nil)
	idx.Replace(0, attrs.NewSet(attrs.BoolAttr(attrs.Trusted, false)))
	found := idx.Find(attrs.NewSet(attrs.BoolAttr(attrs.Trusted, true)), -1)
	assert.Zero(t, found)
}

func TestBatchCoalescesNotifications(t *testing.T) {
	rec := &recorder{}
	idx := New(rec)

	idx.Batch()
	h, _ := idx.Replace(0, attrs.NewSet(attrs.StrAttr(attrs.Label, []byte("a"))))
	idx.Replace(h, attrs.NewSet(attrs.StrAttr(attrs.Label, []byte("b"))))
	assert.Empty(t, rec.seen, "no notification until Finish")
	idx.Finish()

	assert.Equal(t, []Handle{h}, rec.seen)
}

func TestNotifyWithoutBatchFiresImmediately(t *testing.T) {
	rec := &recorder{}
	idx := New(rec)
	h, _ := idx.Replace(0, attrs.NewSet())
	assert.Equal(t, []Handle{h}, rec.seen)
}

// TestBatchCoalescesNotificationsRegardlessOfOrder asserts flush delivers
// exactly one notification per touched handle, without depending on the
// order flush iterates idx.pending — a map, so that order is not
// guaranteed to match replace order from one run to the next.
func TestBatchCoalescesNotificationsRegardlessOfOrder(t *testing.T) {
	rec := &recorder{}
	idx := New(rec)

	idx.Batch()
	h1, _ := idx.Replace(0, attrs.NewSet(attrs.StrAttr(attrs.Label, []byte("a"))))
	h2, _ := idx.Replace(0, attrs.NewSet(attrs.StrAttr(attrs.Label, []byte("b"))))
	h3, _ := idx.Replace(0, attrs.NewSet(attrs.StrAttr(attrs.Label, []byte("c"))))
	idx.Replace(h1, attrs.NewSet(attrs.StrAttr(attrs.Label, []byte("a-again"))))
	idx.Finish()

	want := []Handle{h1, h2, h3}
	byValue := cmpopts.SortSlices(func(x, y Handle) bool { return x < y })
	if diff := cmp.Diff(want, rec.seen, byValue); diff != "" {
		t.Errorf("coalesced notification set wrong (-want +got):\n%s", diff)
	}
}
