package players

import "errors"

var (
	// ErrPlayerNotFound is returned when a player id does not exist.
	ErrPlayerNotFound = errors.New("player not found")
)
