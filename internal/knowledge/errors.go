package knowledge

import "errors"

var (
	ErrUnknownCrop   = errors.New("unknown crop")
	ErrUnknownScheme = errors.New("unknown scheme")
	ErrNotConfigured = errors.New("api key not configured")
)
