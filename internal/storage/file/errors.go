package file

import "errors"

// ErrNoSuchPage is returned by ReadPage/DeletePage when the requested
// page number has never been allocated in this file, and by ReadPage
// also when the page has been deleted and not reallocated since.
var ErrNoSuchPage = errors.New("file: no such page")
