package buffer

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/pageframe/bufmgr/internal/storage/file"
	"github.com/pageframe/bufmgr/internal/storage/page"
)

// residentKey is the unique key under which a resident page is
// indexed: (FileID, pageNo).
type residentKey struct {
	file   file.ID
	pageNo page.ID
}

// residentEntry is one node in a bucket's hash chain.
type residentEntry struct {
	key     residentKey
	frameNo int
	next    *residentEntry
}

// residentIndex is the hash-chained (file, pageNo) -> frameNo map: a
// fixed array of bucket-chain heads, sized proportional to the pool and
// never resized at runtime, since at most poolSize entries ever
// coexist.
type residentIndex struct {
	buckets []*residentEntry
}

// newResidentIndex sizes the bucket array to ~1.2x poolSize, rounded
// up to an odd number for mixing: ((poolSize*12/10)*2/2)+1, bumped by
// one more when that result is even.
func newResidentIndex(poolSize int) *residentIndex {
	htSize := ((poolSize*12/10)*2/2) + 1
	if htSize%2 == 0 {
		htSize++
	}
	if htSize < 1 {
		htSize = 1
	}
	return &residentIndex{buckets: make([]*residentEntry, htSize)}
}

func (idx *residentIndex) bucketFor(key residentKey) int {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(key.file))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(key.pageNo))
	h := xxhash.Sum64(buf[:])
	return int(h % uint64(len(idx.buckets)))
}

// insert installs a new (file, pageNo) -> frameNo mapping. Fails with
// a *DuplicateKeyError if the key is already mapped to any frame.
func (idx *residentIndex) insert(f file.ID, pageNo page.ID, frameNo int) error {
	key := residentKey{file: f, pageNo: pageNo}
	b := idx.bucketFor(key)

	for e := idx.buckets[b]; e != nil; e = e.next {
		if e.key == key {
			return &DuplicateKeyError{File: f, PageNo: pageNo}
		}
	}

	idx.buckets[b] = &residentEntry{key: key, frameNo: frameNo, next: idx.buckets[b]}
	return nil
}

// lookup reports the frame mapped to (file, pageNo), if any. The
// boolean return is the miss signal: callers that treat a miss as a
// normal control-flow branch (ReadPage, UnpinPage, DisposePage) test
// this return directly rather than unwrapping an error for it.
func (idx *residentIndex) lookup(f file.ID, pageNo page.ID) (frameNo int, found bool) {
	key := residentKey{file: f, pageNo: pageNo}
	b := idx.bucketFor(key)
	for e := idx.buckets[b]; e != nil; e = e.next {
		if e.key == key {
			return e.frameNo, true
		}
	}
	return 0, false
}

// remove deletes the (file, pageNo) entry. Reports whether an entry
// was actually present; does not silently succeed on absence.
func (idx *residentIndex) remove(f file.ID, pageNo page.ID) bool {
	key := residentKey{file: f, pageNo: pageNo}
	b := idx.bucketFor(key)

	var prev *residentEntry
	for e := idx.buckets[b]; e != nil; e = e.next {
		if e.key == key {
			if prev != nil {
				prev.next = e.next
			} else {
				idx.buckets[b] = e.next
			}
			return true
		}
		prev = e
	}
	return false
}
