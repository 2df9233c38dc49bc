// Package page defines the fixed-size, self-identifying byte container
// that the file store persists and the buffer manager caches.
package page

import (
	"encoding/binary"
	"hash/crc32"
)

// Size is the fixed page size in bytes, header included.
const Size = 4096

// headerSize is PageID (8) + Checksum (4) + padding (4), kept aligned.
const headerSize = 16

// ID identifies a page within a single file. Assigned by the file
// store at allocation time; immutable afterward.
type ID uint64

// InvalidID marks the absence of a page number.
const InvalidID ID = 0

// Page is the opaque byte container passed between the file store and
// the buffer manager. It carries no pin/dirty state of its own — that
// bookkeeping belongs exclusively to the buffer manager's frame
// descriptors (see buffer.FrameDescriptor), never to the payload.
type Page struct {
	id   ID
	Data [Size - headerSize]byte
}

// New returns a zeroed page stamped with the given id.
func New(id ID) *Page {
	return &Page{id: id}
}

// PageNumber reports the page's identity, as assigned by the file
// store at allocation time.
func (p *Page) PageNumber() ID {
	return p.id
}

// SetPageNumber overwrites the page's id. The file store stamps ids
// through New and Deserialize instead; this is not part of the buffer
// manager's surface.
func (p *Page) SetPageNumber(id ID) {
	p.id = id
}

// Serialize packs the page into a fixed Size-byte slice for writing to
// the file store.
func (p *Page) Serialize() []byte {
	buf := make([]byte, Size)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(p.id))
	copy(buf[headerSize:], p.Data[:])
	checksum := crc32.ChecksumIEEE(buf[headerSize:])
	binary.LittleEndian.PutUint32(buf[8:12], checksum)
	return buf
}

// Deserialize unpacks a Size-byte slice produced by Serialize,
// validating its checksum.
func Deserialize(buf []byte) (*Page, error) {
	if len(buf) != Size {
		return nil, ErrShortBuffer
	}

	p := &Page{id: ID(binary.LittleEndian.Uint64(buf[0:8]))}
	copy(p.Data[:], buf[headerSize:])

	want := binary.LittleEndian.Uint32(buf[8:12])
	got := crc32.ChecksumIEEE(p.Data[:])
	if want != got {
		return nil, ErrChecksumMismatch
	}
	return p, nil
}
