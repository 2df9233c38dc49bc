// Package buffer implements the in-memory buffer manager core: a
// fixed-size pool of page frames, clock/second-chance replacement, and
// pin/dirty bookkeeping over a hash-chained resident index. It owns
// the pool and the index exclusively; callers borrow a page payload
// only while holding a pin.
package buffer

import (
	"errors"
	"fmt"

	"github.com/golang/glog"

	"github.com/pageframe/bufmgr/internal/storage/page"
)

// BufMgr is a single buffer-manager instance, single-threaded by
// design: all public operations are synchronous and the manager holds
// no internal lock across the file-store I/O calls that are its only
// suspension points. It is not safe for concurrent use by multiple
// goroutines without an external mutex.
type BufMgr struct {
	cfg       Config
	descs     []FrameDescriptor
	pool      []page.Page
	idx       *residentIndex
	clockHand int
}

// New builds a buffer manager with a pool of poolSize frames. It
// panics if poolSize is not positive — a construction-time misuse,
// not a condition any caller could reasonably retry past.
func New(poolSize int) *BufMgr {
	return NewWithConfig(DefaultConfig(poolSize))
}

// NewWithConfig builds a buffer manager from an explicit Config,
// giving callers control over the clock sweep bound and diagnostic
// verbosity that New's bare poolSize signature cannot express.
func NewWithConfig(cfg Config) *BufMgr {
	if err := cfg.validate(); err != nil {
		panic(err)
	}

	descs := make([]FrameDescriptor, cfg.PoolSize)
	for i := range descs {
		descs[i].frameNo = i
		descs[i].valid = false
	}

	return &BufMgr{
		cfg:       cfg,
		descs:     descs,
		pool:      make([]page.Page, cfg.PoolSize),
		idx:       newResidentIndex(cfg.PoolSize),
		clockHand: cfg.PoolSize - 1,
	}
}

// Close writes back every valid, dirty frame and releases the pool.
// Best-effort: a write-back failure is collected, not fatal to the
// rest of the shutdown, and every collected failure is returned
// joined together.
func (b *BufMgr) Close() error {
	var errs []error
	for i := range b.descs {
		d := &b.descs[i]
		if !d.valid || !d.dirty {
			continue
		}
		if err := d.file.WritePage(&b.pool[i]); err != nil {
			errs = append(errs, ioError("Close", err))
			b.logErrf("Close: write-back of frame %d (file %s, page %d) failed: %v",
				i, d.file.Filename(), d.pageNo, err)
			continue
		}
		d.dirty = false
	}
	b.descs = nil
	b.pool = nil
	b.idx = nil
	return errors.Join(errs...)
}

// ReadPage loads and pins pageNo of f, returning a reference to its
// pool slot. On a hit, the frame's pin count is incremented and its
// recency bit set; dirty is left untouched either way.
func (b *BufMgr) ReadPage(f Store, pageNo page.ID) (*page.Page, error) {
	if frameNo, found := b.idx.lookup(f.ID(), pageNo); found {
		d := &b.descs[frameNo]
		d.pinCnt++
		d.refbit = true
		return &b.pool[frameNo], nil
	}

	frameNo, err := b.allocBuf()
	if err != nil {
		return nil, err
	}

	loaded, err := f.ReadPage(pageNo)
	if err != nil {
		return nil, ioError("ReadPage", err)
	}
	b.pool[frameNo] = *loaded

	if err := b.idx.insert(f.ID(), pageNo, frameNo); err != nil {
		return nil, err
	}
	b.descs[frameNo].Set(f, pageNo)
	b.logInfof("ReadPage: loaded (file %s, page %d) into frame %d", f.Filename(), pageNo, frameNo)

	return &b.pool[frameNo], nil
}

// AllocPage asks f's file store for a new page, installs it into a
// frame, and returns its assigned page number and a pinned reference
// to its pool slot.
func (b *BufMgr) AllocPage(f Store) (page.ID, *page.Page, error) {
	allocated, err := f.AllocatePage()
	if err != nil {
		return page.InvalidID, nil, ioError("AllocatePage", err)
	}

	frameNo, err := b.allocBuf()
	if err != nil {
		return page.InvalidID, nil, err
	}

	pageNo := allocated.PageNumber()
	b.pool[frameNo] = *allocated

	if err := b.idx.insert(f.ID(), pageNo, frameNo); err != nil {
		return page.InvalidID, nil, err
	}
	b.descs[frameNo].Set(f, pageNo)
	b.logInfof("AllocPage: assigned page %d of %s to frame %d", pageNo, f.Filename(), frameNo)

	return pageNo, &b.pool[frameNo], nil
}

// UnpinPage relinquishes one pin on (f, pageNo). If the page is not
// currently resident, the call is a silent no-op rather than an error.
// If dirty is true, the frame's dirty bit is set; it is never cleared
// here (dirty is sticky until write-back).
func (b *BufMgr) UnpinPage(f Store, pageNo page.ID, dirty bool) error {
	frameNo, found := b.idx.lookup(f.ID(), pageNo)
	if !found {
		return nil
	}

	d := &b.descs[frameNo]
	if d.pinCnt == 0 {
		return &PageNotPinnedError{File: f.Filename(), PageNo: pageNo}
	}
	if dirty {
		d.dirty = true
	}
	d.pinCnt--
	return nil
}

// FlushFile writes back every dirty, valid, unpinned frame belonging
// to f and removes it from the resident index. The whole-file pin and
// validity precheck completes, with no mutation, before any write-back
// begins, so a pinned frame fails the call before any frame of f is
// written back or dropped. A write-back error in the second pass returns
// at once; frames of f handled before it stay flushed and removed.
func (b *BufMgr) FlushFile(f Store) error {
	for i := range b.descs {
		d := &b.descs[i]
		if d.file == nil || d.file.ID() != f.ID() {
			continue
		}
		if d.pinCnt > 0 {
			return &PagePinnedError{File: f.Filename(), PageNo: d.pageNo}
		}
		if !d.valid {
			return &BadBufferError{File: f.Filename(), FrameNo: i}
		}
	}

	for i := range b.descs {
		d := &b.descs[i]
		if d.file == nil || d.file.ID() != f.ID() {
			continue
		}
		if d.dirty {
			if err := f.WritePage(&b.pool[i]); err != nil {
				return ioError("WritePage", err)
			}
			d.dirty = false
		}
		b.idx.remove(f.ID(), d.pageNo)
		d.Clear()
	}
	return nil
}

// DisposePage removes pageNo of f from the buffer (no write-back — it
// is being deleted, not evicted) and asks the file store to delete it.
// Absence from the buffer is not an error.
func (b *BufMgr) DisposePage(f Store, pageNo page.ID) error {
	if frameNo, found := b.idx.lookup(f.ID(), pageNo); found {
		b.idx.remove(f.ID(), pageNo)
		b.descs[frameNo].Clear()
	}

	if err := f.DeletePage(pageNo); err != nil {
		return ioError("DeletePage", err)
	}
	return nil
}

// PrintSelf dumps each frame's state and the count of valid frames,
// returned as a string so tests can assert on it directly.
func (b *BufMgr) PrintSelf() string {
	var out string
	validFrames := 0
	for i := range b.descs {
		d := &b.descs[i]
		if d.valid {
			out += fmt.Sprintf("FrameNo:%d file:%s pageNo:%d pinCnt:%d dirty:%t refbit:%t valid:%t\n",
				i, d.file.Filename(), d.pageNo, d.pinCnt, d.dirty, d.refbit, d.valid)
			validFrames++
		} else {
			out += fmt.Sprintf("FrameNo:%d valid:%t\n", i, d.valid)
		}
	}
	out += fmt.Sprintf("Total Number of Valid Frames:%d\n", validFrames)

	if b.cfg.Verbose {
		glog.Infof("PrintSelf:\n%s", out)
	}
	return out
}

// advanceClock circularly increments the clock hand modulo the pool
// size.
func (b *BufMgr) advanceClock() {
	b.clockHand = (b.clockHand + 1) % len(b.descs)
}

// allocBuf runs the clock replacement sweep and returns an evictable
// frame number.
//
// The all-pinned precondition is checked before any sweeping, so this
// either returns a victim or fails — it never spins. Termination of
// the sweep itself is bounded by MaxSweepLoops*N ticks; once the
// precondition holds, 2N ticks always suffice, which the default
// MaxSweepLoops of 2 covers exactly.
func (b *BufMgr) allocBuf() (int, error) {
	n := len(b.descs)

	allPinned := true
	for i := range b.descs {
		if b.descs[i].pinCnt == 0 {
			allPinned = false
			break
		}
	}
	if allPinned {
		return 0, &BufferExceededError{PoolSize: n}
	}

	maxTicks := b.cfg.MaxSweepLoops * n
	for tick := 0; tick < maxTicks; tick++ {
		b.advanceClock()
		d := &b.descs[b.clockHand]

		switch {
		case !d.valid:
			return b.clockHand, nil

		case d.refbit:
			d.refbit = false

		case d.pinCnt > 0:
			// skip: second chance does not apply to pinned frames

		case d.dirty:
			if err := d.file.WritePage(&b.pool[b.clockHand]); err != nil {
				return 0, ioError("WritePage", err)
			}
			d.dirty = false
			return b.evict(b.clockHand), nil

		default:
			return b.evict(b.clockHand), nil
		}
	}

	return 0, &BufferExceededError{PoolSize: n}
}

// evict removes a selected victim's resident-index entry (if any) and
// clears its descriptor, returning the now-free frame number.
func (b *BufMgr) evict(frameNo int) int {
	d := &b.descs[frameNo]
	if d.valid {
		b.idx.remove(d.file.ID(), d.pageNo)
		b.logInfof("allocBuf: evicted (file %s, page %d) from frame %d", d.file.Filename(), d.pageNo, frameNo)
		d.Clear()
	}
	return frameNo
}

func (b *BufMgr) logInfof(format string, args ...interface{}) {
	if b.cfg.Verbose {
		glog.V(1).Infof(format, args...)
	}
}

func (b *BufMgr) logErrf(format string, args ...interface{}) {
	glog.Errorf(format, args...)
}
