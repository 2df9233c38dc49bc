package file

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageframe/bufmgr/internal/storage/page"
)

func TestCreateFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.db")

	f, err := CreateFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, path, f.Filename())
	assert.NotZero(t, f.ID())

	_, err = f.ReadPage(1)
	assert.ErrorIs(t, err, ErrNoSuchPage)
}

func TestAllocatePageWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.db")
	f, err := CreateFile(path)
	require.NoError(t, err)
	defer f.Close()

	p, err := f.AllocatePage()
	require.NoError(t, err)
	assert.Equal(t, page.ID(1), p.PageNumber())

	p2, err := f.AllocatePage()
	require.NoError(t, err)
	assert.Equal(t, page.ID(2), p2.PageNumber())

	copy(p.Data[:4], []byte("abcd"))
	require.NoError(t, f.WritePage(p))

	got, err := f.ReadPage(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), got.Data[:4])
}

func TestDeletePageReturnsSlotToFreeList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.db")
	f, err := CreateFile(path)
	require.NoError(t, err)
	defer f.Close()

	p1, err := f.AllocatePage()
	require.NoError(t, err)

	require.NoError(t, f.DeletePage(p1.PageNumber()))

	p2, err := f.AllocatePage()
	require.NoError(t, err)
	assert.Equal(t, p1.PageNumber(), p2.PageNumber(), "a deleted page's slot is reused before extending the file")
}

func TestDeletePageRejectsUnallocated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.db")
	f, err := CreateFile(path)
	require.NoError(t, err)
	defer f.Close()

	err = f.DeletePage(5)
	assert.ErrorIs(t, err, ErrNoSuchPage)
}

func TestOpenFileReopensExistingContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.db")
	f, err := CreateFile(path)
	require.NoError(t, err)

	p, err := f.AllocatePage()
	require.NoError(t, err)
	copy(p.Data[:5], []byte("hello"))
	require.NoError(t, f.WritePage(p))
	require.NoError(t, f.Close())

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.ReadPage(p.PageNumber())
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got.Data[:5])
}

func TestFileIDsAreUniqueAndStable(t *testing.T) {
	p1 := filepath.Join(t.TempDir(), "a.db")
	p2 := filepath.Join(t.TempDir(), "b.db")

	f1, err := CreateFile(p1)
	require.NoError(t, err)
	defer f1.Close()
	f2, err := CreateFile(p2)
	require.NoError(t, err)
	defer f2.Close()

	assert.NotEqual(t, f1.ID(), f2.ID())
	assert.Equal(t, f1.ID(), f1.ID())
}
