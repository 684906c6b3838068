package store

import "errors"

// ErrUnavailable marks a genuine store failure. It is fatal to the request
// that hit it; callers never retry and never substitute defaults for it.
var ErrUnavailable = errors.New("store unavailable")

// ErrNotFound is returned when a lookup by id matches nothing.
var ErrNotFound = errors.New("not found")
