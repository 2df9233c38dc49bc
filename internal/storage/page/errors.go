package page

import "errors"

var (
	ErrShortBuffer      = errors.New("page: buffer is not exactly Size bytes")
	ErrChecksumMismatch = errors.New("page: checksum mismatch")
)
