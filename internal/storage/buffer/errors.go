package buffer

import (
	"errors"
	"fmt"

	"github.com/pageframe/bufmgr/internal/storage/file"
	"github.com/pageframe/bufmgr/internal/storage/page"
)

// Sentinel errors, one per error kind the buffer manager raises. Typed
// wrappers below carry the offending (file, pageNo) context while
// remaining errors.Is-comparable against these sentinels.
var (
	ErrBufferExceeded = errors.New("buffer: all frames are pinned")
	ErrPageNotPinned  = errors.New("buffer: page is not pinned")
	ErrPagePinned     = errors.New("buffer: page is pinned")
	ErrBadBuffer      = errors.New("buffer: frame claimed by file is not valid")
	ErrDuplicateKey   = errors.New("buffer: (file, pageNo) already resident")
	ErrNotFound       = errors.New("buffer: (file, pageNo) not resident")
)

// BufferExceededError reports that allocBuf found no evictable frame.
type BufferExceededError struct {
	PoolSize int
}

func (e *BufferExceededError) Error() string {
	return fmt.Sprintf("buffer: all %d frames are pinned, no victim available", e.PoolSize)
}

func (e *BufferExceededError) Unwrap() error { return ErrBufferExceeded }

// PageNotPinnedError reports an UnpinPage call against a resident page
// whose pin count is already zero.
type PageNotPinnedError struct {
	File   string
	PageNo page.ID
}

func (e *PageNotPinnedError) Error() string {
	return fmt.Sprintf("buffer: page %d of %s is not pinned", e.PageNo, e.File)
}

func (e *PageNotPinnedError) Unwrap() error { return ErrPageNotPinned }

// PagePinnedError reports that FlushFile found a pinned frame
// belonging to the target file.
type PagePinnedError struct {
	File   string
	PageNo page.ID
}

func (e *PagePinnedError) Error() string {
	return fmt.Sprintf("buffer: page %d of %s is pinned", e.PageNo, e.File)
}

func (e *PagePinnedError) Unwrap() error { return ErrPagePinned }

// BadBufferError reports an internal invariant violation: a frame
// claimed by the target file is not valid.
type BadBufferError struct {
	File    string
	FrameNo int
}

func (e *BadBufferError) Error() string {
	return fmt.Sprintf("buffer: frame %d claimed by %s is not valid", e.FrameNo, e.File)
}

func (e *BadBufferError) Unwrap() error { return ErrBadBuffer }

// DuplicateKeyError reports a resident-index insert collision. Should
// never surface from the public API; surfacing indicates a bug in the
// buffer manager's own bookkeeping.
type DuplicateKeyError struct {
	File   file.ID
	PageNo page.ID
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("buffer: (file %d, page %d) is already resident", e.File, e.PageNo)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// IoError wraps a file-store failure encountered during read, write,
// allocate or delete.
type IoError struct {
	Op  string
	Err error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("buffer: io error during %s: %v", e.Op, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

func ioError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IoError{Op: op, Err: err}
}
