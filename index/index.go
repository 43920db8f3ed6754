// Package index implements the object index: a handle-keyed collection
// of attribute sets with attribute-match lookups and batched change
// notifications. Grounded on the p11_index_* operations referenced
// throughout _examples/original_source/trust/parser.c (p11_index_replace,
// p11_index_find, p11_index_lookup, p11_index_batch/finish).
package index

import (
	"errors"

	"github.com/letsencrypt-labs/trustkit/attrs"
)

// Handle is an opaque, non-zero object handle. Zero means "no such
// object" when returned from Find, and "please insert a new object" when
// passed to Replace.
type Handle uint64

// ErrGeneral mirrors CKR_GENERAL_ERROR: an internal allocation failure.
// Go's Index never actually fails this way, but the type is kept so
// callers written against the CK_RV-shaped contract still compile against
// a real error value.
var ErrGeneral = errors.New("index: general error")

// Subscriber receives coalesced change notifications. OnChange is called
// once per handle touched by a batch, after the outermost Finish.
type Subscriber interface {
	OnChange(h Handle)
}

// Index is a mapping from handle to attribute set.
type Index struct {
	objects    map[Handle]attrs.Set
	order      []Handle // insertion order, for deterministic Find iteration
	next       Handle
	batchDepth int
	pending    map[Handle]struct{}
	subscriber Subscriber
}

// New creates an empty index. sub may be nil.
func New(sub Subscriber) *Index {
	return &Index{
		objects:    make(map[Handle]attrs.Set),
		pending:    make(map[Handle]struct{}),
		subscriber: sub,
		next:       1,
	}
}

// Batch begins a coalescing scope; nested Batch/Finish pairs are allowed,
// only the outermost Finish flushes notifications.
func (idx *Index) Batch() {
	idx.batchDepth++
}

// Finish ends a coalescing scope started by Batch.
func (idx *Index) Finish() {
	if idx.batchDepth == 0 {
		return
	}
	idx.batchDepth--
	if idx.batchDepth == 0 {
		idx.flush()
	}
}

func (idx *Index) flush() {
	if idx.subscriber == nil {
		idx.pending = make(map[Handle]struct{})
		return
	}
	for h := range idx.pending {
		idx.subscriber.OnChange(h)
	}
	idx.pending = make(map[Handle]struct{})
}

func (idx *Index) notify(h Handle) {
	idx.pending[h] = struct{}{}
	if idx.batchDepth == 0 {
		idx.flush()
	}
}

// Replace inserts attrs under a fresh handle when h is zero, or overwrites
// the object already stored under h. Either way it takes ownership of
// attrs (the caller must not mutate the Set afterward). Returns the
// handle the object now lives under.
func (idx *Index) Replace(h Handle, set attrs.Set) (Handle, error) {
	if h == 0 {
		h = idx.next
		idx.next++
		idx.order = append(idx.order, h)
	} else if _, ok := idx.objects[h]; !ok {
		idx.order = append(idx.order, h)
	}
	idx.objects[h] = set
	idx.notify(h)
	return h, nil
}

// Lookup returns a read-only reference to the object stored under h.
func (idx *Index) Lookup(h Handle) (attrs.Set, bool) {
	s, ok := idx.objects[h]
	return s, ok
}

// Find returns the which-th (0-based) handle whose object matches
// template by byte-equal attributes (conjunctive match). which == -1
// means "first match". Returns 0 ("no match") when fewer than which+1
// matches exist.
func (idx *Index) Find(template attrs.Set, which int) Handle {
	count := 0
	target := which
	if which == -1 {
		target = 0
	}
	for _, h := range idx.order {
		obj, ok := idx.objects[h]
		if !ok {
			continue
		}
		if obj.MatchesTemplate(template) {
			if count == target {
				return h
			}
			count++
		}
	}
	return 0
}

// Len reports how many live objects the index holds.
func (idx *Index) Len() int { return len(idx.objects) }

// Remove deletes the object under h, notifying subscribers as a change.
func (idx *Index) Remove(h Handle) {
	if _, ok := idx.objects[h]; !ok {
		return
	}
	delete(idx.objects, h)
	for i, oh := range idx.order {
		if oh == h {
			idx.order = append(idx.order[:i], idx.order[i+1:]...)
			break
		}
	}
	idx.notify(h)
}
