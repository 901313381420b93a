package azsearch

import "errors"

var (
	// ErrEndpointRequired indicates the service endpoint is not configured.
	ErrEndpointRequired = errors.New("azsearch: endpoint is required")

	// ErrAPIKeyRequired indicates the API key is not configured.
	ErrAPIKeyRequired = errors.New("azsearch: api key is required")

	// ErrIndexNameRequired indicates the index name is not configured.
	ErrIndexNameRequired = errors.New("azsearch: index name is required")

	// ErrSearchFailed indicates the search request failed.
	ErrSearchFailed = errors.New("azsearch: search request failed")
)
