package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrMalformedOrder is returned when a persisted row order cannot be decoded.
var ErrMalformedOrder = errors.New("malformed order")
