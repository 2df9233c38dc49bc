package buffer

import (
	"sync/atomic"

	"github.com/pageframe/bufmgr/internal/storage/page"
)

// PinGuard is sugar over the mandatory ReadPage/AllocPage + UnpinPage
// pair: a scoped pin that encodes the dirty hint at release time,
// closing the PageNotPinned and pin-leak classes at the type level. It
// never replaces UnpinPage on BufMgr's public surface — it is built on
// top of it.
//
// A PinGuard must be released exactly once; Release after the first
// call is a no-op, closing the double-unpin class.
type PinGuard struct {
	bm       *BufMgr
	f        Store
	pageNo   page.ID
	page     *page.Page
	dirty    bool
	released atomic.Bool
}

// ReadPageGuarded pins pageNo of f via ReadPage and wraps the result
// in a PinGuard.
func (b *BufMgr) ReadPageGuarded(f Store, pageNo page.ID) (*PinGuard, error) {
	p, err := b.ReadPage(f, pageNo)
	if err != nil {
		return nil, err
	}
	return &PinGuard{bm: b, f: f, pageNo: pageNo, page: p}, nil
}

// AllocPageGuarded allocates a new page in f via AllocPage and wraps
// the result in a PinGuard.
func (b *BufMgr) AllocPageGuarded(f Store) (*PinGuard, error) {
	pageNo, p, err := b.AllocPage(f)
	if err != nil {
		return nil, err
	}
	return &PinGuard{bm: b, f: f, pageNo: pageNo, page: p}, nil
}

// Page returns the guarded page payload.
func (g *PinGuard) Page() *page.Page { return g.page }

// PageNumber returns the guarded page's number.
func (g *PinGuard) PageNumber() page.ID { return g.pageNo }

// MarkDirty records that the guarded page has been mutated; the dirty
// hint is applied to the frame when Release runs.
func (g *PinGuard) MarkDirty() { g.dirty = true }

// Release unpins the guarded page exactly once, applying whatever
// dirty hint MarkDirty accumulated. Calling Release more than once, or
// on a nil guard, is a safe no-op.
func (g *PinGuard) Release() error {
	if g == nil || !g.released.CompareAndSwap(false, true) {
		return nil
	}
	return g.bm.UnpinPage(g.f, g.pageNo, g.dirty)
}
