package buffer

import (
	"fmt"
	"sync/atomic"

	"github.com/pageframe/bufmgr/internal/storage/file"
	"github.com/pageframe/bufmgr/internal/storage/page"
)

// fakeStore is an in-memory Store double used so tests can assert on
// exactly how many times the file store was actually hit, without
// touching a real disk.
type fakeStore struct {
	id     file.ID
	name   string
	pages  map[page.ID]*page.Page
	nextID page.ID

	reads   int
	writes  int
	allocs  int
	deletes int

	writeLog []page.ID // page numbers written, in call order
}

var fakeStoreNextID atomic.Uint64

func newFakeStore(name string) *fakeStore {
	return &fakeStore{
		id:    file.ID(fakeStoreNextID.Add(1)),
		name:  name,
		pages: make(map[page.ID]*page.Page),
	}
}

func (s *fakeStore) ID() file.ID      { return s.id }
func (s *fakeStore) Filename() string { return s.name }

func (s *fakeStore) AllocatePage() (*page.Page, error) {
	s.allocs++
	s.nextID++
	p := page.New(s.nextID)
	cp := *p
	s.pages[s.nextID] = &cp
	out := *p
	return &out, nil
}

func (s *fakeStore) ReadPage(pageNo page.ID) (*page.Page, error) {
	s.reads++
	p, ok := s.pages[pageNo]
	if !ok {
		return nil, fmt.Errorf("fakeStore %s: no such page %d", s.name, pageNo)
	}
	out := *p
	return &out, nil
}

func (s *fakeStore) WritePage(p *page.Page) error {
	s.writes++
	s.writeLog = append(s.writeLog, p.PageNumber())
	cp := *p
	s.pages[p.PageNumber()] = &cp
	return nil
}

func (s *fakeStore) DeletePage(pageNo page.ID) error {
	s.deletes++
	if _, ok := s.pages[pageNo]; !ok {
		return fmt.Errorf("fakeStore %s: no such page %d", s.name, pageNo)
	}
	delete(s.pages, pageNo)
	return nil
}

// seedPage installs a page with id pageNo and the given byte contents
// directly, bypassing AllocatePage, so a test can drive a specific page
// number chosen in advance.
func (s *fakeStore) seedPage(pageNo page.ID, data []byte) {
	p := page.New(pageNo)
	copy(p.Data[:], data)
	s.pages[pageNo] = p
	if pageNo > s.nextID {
		s.nextID = pageNo
	}
}

var _ Store = (*fakeStore)(nil)
