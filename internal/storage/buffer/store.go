package buffer

import (
	"github.com/pageframe/bufmgr/internal/storage/file"
	"github.com/pageframe/bufmgr/internal/storage/page"
)

// Store is the file-store contract the buffer manager core depends
// on, threaded through as an interface rather than a concrete type so
// the resident index's key — file.ID(), not a pointer — is the only
// thing identity ever depends on, and so tests can exercise the core
// against a fake that counts calls without any real disk I/O.
// *file.File satisfies it.
type Store interface {
	// ID reports the store's stable handle.
	ID() file.ID
	// Filename reports a diagnostic identity used in error messages.
	Filename() string
	// AllocatePage extends the store with a new page, returning its
	// assigned id and initial contents.
	AllocatePage() (*page.Page, error)
	// ReadPage returns the stored contents of pageNo.
	ReadPage(pageNo page.ID) (*page.Page, error)
	// WritePage persists p's contents at its own page id.
	WritePage(p *page.Page) error
	// DeletePage removes pageNo from the store.
	DeletePage(pageNo page.ID) error
}

var _ Store = (*file.File)(nil)
