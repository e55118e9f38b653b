package generation

import "errors"

var (
	// ErrValidationRejected marks a content-policy rejection. It is the only
	// failure that ends a pipeline run.
	ErrValidationRejected = errors.New("prompt rejected")

	// ErrNotConfigured is returned by a vendor client built without credentials.
	ErrNotConfigured = errors.New("capability not configured")

	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrRenderFailed        = errors.New("render failed")
	ErrRenderTimeout       = errors.New("render timeout")
	ErrHostingUnavailable  = errors.New("hosting unavailable")
)
