// Package file implements the file-store contract the buffer manager
// core depends on: page-addressable allocation, read, write and
// delete, addressed through a stable ID handle rather than a raw
// pointer, so hashing and equality never depend on an address.
package file

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/pageframe/bufmgr/internal/storage/page"
)

// ID is a stable, process-local handle identifying an open file. It is
// the value the resident index and frame descriptors key on — never a
// *File pointer.
type ID uint64

var nextID atomic.Uint64

func newID() ID {
	return ID(nextID.Add(1))
}

// File is an open, page-addressable store.
type File struct {
	id   ID
	name string
	f    *os.File

	size     int64 // current file size in bytes, always a multiple of page.Size
	nextPage page.ID
	freeList []page.ID
}

// OpenFile opens an existing page file.
func OpenFile(name string) (*File, error) {
	f, err := os.OpenFile(name, os.O_RDWR, 0o666)
	if err != nil {
		return nil, fmt.Errorf("file: open %s: %w", name, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("file: stat %s: %w", name, err)
	}

	size := info.Size()
	nextPage := page.ID(size/page.Size) + 1

	return &File{
		id:       newID(),
		name:     name,
		f:        f,
		size:     size,
		nextPage: nextPage,
	}, nil
}

// CreateFile creates a new, empty page file, truncating it if it
// already exists.
func CreateFile(name string) (*File, error) {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, fmt.Errorf("file: create %s: %w", name, err)
	}
	return &File{
		id:       newID(),
		name:     name,
		f:        f,
		size:     0,
		nextPage: 1,
	}, nil
}

// ID reports the file's stable handle.
func (fl *File) ID() ID { return fl.id }

// Filename reports the diagnostic name used in error messages.
func (fl *File) Filename() string { return fl.name }

// Close releases the underlying OS file descriptor. It does not flush
// any buffer-manager-resident pages; callers must flush first.
func (fl *File) Close() error {
	if fl == nil || fl.f == nil {
		return nil
	}
	err := fl.f.Close()
	fl.f = nil
	return err
}

// AllocatePage extends the file with a new page, returning its
// assigned id and zeroed initial contents.
func (fl *File) AllocatePage() (*page.Page, error) {
	var id page.ID
	if n := len(fl.freeList); n > 0 {
		id = fl.freeList[n-1]
		fl.freeList = fl.freeList[:n-1]
	} else {
		id = fl.nextPage
		fl.nextPage++
	}

	p := page.New(id)
	if err := fl.writeAt(p); err != nil {
		return nil, fmt.Errorf("file: allocate page %d in %s: %w", id, fl.name, err)
	}
	return p, nil
}

// ReadPage returns the stored contents of pageNo.
func (fl *File) ReadPage(pageNo page.ID) (*page.Page, error) {
	offset := pageOffset(pageNo)
	if offset+page.Size > fl.size {
		return nil, fmt.Errorf("file: read page %d in %s: %w", pageNo, fl.name, ErrNoSuchPage)
	}
	for _, free := range fl.freeList {
		if free == pageNo {
			return nil, fmt.Errorf("file: read page %d in %s: %w", pageNo, fl.name, ErrNoSuchPage)
		}
	}

	buf := make([]byte, page.Size)
	if _, err := fl.f.ReadAt(buf, offset); err != nil {
		return nil, fmt.Errorf("file: read page %d in %s: %w", pageNo, fl.name, err)
	}

	p, err := page.Deserialize(buf)
	if err != nil {
		return nil, fmt.Errorf("file: read page %d in %s: %w", pageNo, fl.name, err)
	}
	return p, nil
}

// WritePage persists p's contents at its own page id.
func (fl *File) WritePage(p *page.Page) error {
	if err := fl.writeAt(p); err != nil {
		return fmt.Errorf("file: write page %d in %s: %w", p.PageNumber(), fl.name, err)
	}
	return nil
}

// DeletePage removes pageNo from the file, returning its slot to the
// free list for reuse by a later AllocatePage.
func (fl *File) DeletePage(pageNo page.ID) error {
	offset := pageOffset(pageNo)
	if offset+page.Size > fl.size {
		return fmt.Errorf("file: delete page %d in %s: %w", pageNo, fl.name, ErrNoSuchPage)
	}
	fl.freeList = append(fl.freeList, pageNo)
	return nil
}

func (fl *File) writeAt(p *page.Page) error {
	offset := pageOffset(p.PageNumber())
	if need := offset + page.Size; need > fl.size {
		if err := fl.f.Truncate(need); err != nil {
			return err
		}
		fl.size = need
	}
	if _, err := fl.f.WriteAt(p.Serialize(), offset); err != nil {
		return err
	}
	return nil
}

func pageOffset(id page.ID) int64 {
	return int64(id-1) * page.Size
}
