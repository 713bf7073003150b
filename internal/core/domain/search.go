package domain

import "errors"

// ErrUpstream marks a failure of the external book-metadata search. It is
// surfaced to callers as a gateway error and never retried.
var ErrUpstream = errors.New("upstream metadata search failed")
