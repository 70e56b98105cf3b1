package trends

import "errors"

var (
	ErrRateLimited     = errors.New("trends: rate limited")
	ErrNotFound        = errors.New("trends: not found")
	ErrInvalidResponse = errors.New("trends: invalid response")
	ErrBrowserNotReady = errors.New("trends: browser not initialized")
	ErrNoSnapshot      = errors.New("trends: no snapshot available")
	ErrEmptyCorpus     = errors.New("trends: empty corpus")
)
