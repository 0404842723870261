package settings

import "errors"

var (
	// ErrInvalidSettings is returned when a settings update fails
	// validation.
	ErrInvalidSettings = errors.New("invalid settings")
)
