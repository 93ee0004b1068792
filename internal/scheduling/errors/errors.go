package errors

import "errors"

var (
	ErrStoreUnavailable = errors.New("reservation store unavailable")

	ErrStoreWriteFailed = errors.New("reservation store rejected the write")

	ErrPartialWrite = errors.New("round trip partially written, manual reconciliation required")
)
