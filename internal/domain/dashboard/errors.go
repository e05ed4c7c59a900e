package dashboard

import "errors"

var (
	ErrInvalidBucket   = errors.New("bucket must be present, absent or unmarked")
	ErrSummaryNotReady = errors.New("dashboard has not been loaded yet")
)
