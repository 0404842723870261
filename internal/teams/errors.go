package teams

import "errors"

var (
	// ErrTeamNotFound is returned when a team id does not exist.
	ErrTeamNotFound = errors.New("team not found")

	// ErrInvalidJoinCode is returned when no team in the draft matches the
	// presented join code.
	ErrInvalidJoinCode = errors.New("invalid join code")

	// ErrReplaceBlocked is returned when teams cannot be replaced because
	// the draft has open auctions or drafted players.
	ErrReplaceBlocked = errors.New("teams cannot be replaced while auctions are open or players are drafted")

	// ErrDuplicateJoinCode is returned when an import would give two teams
	// in the same draft the same join code.
	ErrDuplicateJoinCode = errors.New("duplicate join code")
)
