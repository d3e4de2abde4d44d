package anomaly

import "errors"

var (
	// ErrNotFound is returned when a flag cannot be found in the store.
	ErrNotFound = errors.New("anomaly flag not found")
	// ErrUnknownDisposition is returned for a review verdict outside the known set.
	ErrUnknownDisposition = errors.New("unknown review disposition")
	// ErrRecordFlag is returned when persisting a new flag fails.
	ErrRecordFlag = errors.New("failed to record anomaly flag")
	// ErrReviewFlag is returned when recording a disposition fails.
	ErrReviewFlag = errors.New("failed to review anomaly flag")
)
