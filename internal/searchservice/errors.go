package searchservice

import "errors"

var (
	// ErrInvalidRequest means the query carried neither coordinates nor a place name.
	ErrInvalidRequest = errors.New("no valid location provided")
	// ErrLocationNotFound means the geocoder returned no usable match.
	ErrLocationNotFound = errors.New("location not found")
	// ErrUpstreamUnavailable wraps transport and non-2xx failures of a provider.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
