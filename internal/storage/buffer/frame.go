package buffer

import (
	"github.com/pageframe/bufmgr/internal/storage/page"
)

// FrameDescriptor is the per-frame state record. One exists per pool
// slot for the manager's lifetime; its resident contents cycle as
// pages are loaded and evicted.
//
// file is an opaque handle to the owning store — kept as a Store so
// eviction write-back can call straight through to it — but every
// equality check and hash (the resident index, see index.go) keys off
// file.ID(), never off the handle's identity.
type FrameDescriptor struct {
	frameNo int     // stable, equal to slot index, assigned at construction
	file    Store   // owning file handle; nil when !valid
	pageNo  page.ID // meaningful only when valid
	pinCnt  int     // non-negative; frame evictable only when 0
	dirty   bool    // true iff resident copy diverges from persisted copy; only when valid
	valid   bool    // true iff the slot currently holds a resident page
	refbit  bool    // recency hint for the clock sweep
}

// Set installs a freshly loaded or allocated page into the frame: one
// outstanding pin, clean, valid, with its recency bit primed.
func (d *FrameDescriptor) Set(f Store, pageNo page.ID) {
	d.file = f
	d.pageNo = pageNo
	d.pinCnt = 1
	d.dirty = false
	d.valid = true
	d.refbit = true
}

// Clear evicts the frame's resident contents, detaching its identity.
func (d *FrameDescriptor) Clear() {
	d.valid = false
	d.pinCnt = 0
	d.dirty = false
	d.refbit = false
	d.file = nil
	d.pageNo = page.InvalidID
}
