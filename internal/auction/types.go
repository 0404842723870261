package auction

// FinalizeStatus is the outcome of one finalize call.
type FinalizeStatus string

const (
	// StatusAwarded means this call closed the auction and charged the
	// winning team.
	StatusAwarded FinalizeStatus = "AWARDED"
	// StatusNoBids means this call closed the auction with no bids placed;
	// nobody was awarded or charged.
	StatusNoBids FinalizeStatus = "NO_BIDS"
	// StatusAlreadyClosed means a concurrent caller won the terminal
	// transition first. Idempotent no-op.
	StatusAlreadyClosed FinalizeStatus = "ALREADY_CLOSED"
)

// MinIncrement is the fixed minimum raise over the current high bid.
const MinIncrement = 1
