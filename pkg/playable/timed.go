package playable

// Timed is a game where every turn runs against a countdown
type Timed interface {
	// CurrentTurn returns the number of the turn in progress and the seat it belongs to
	// automatic is true when the seat is played by the server (a bot or a departed player)
	// ok is false when no turn is waiting for an action
	CurrentTurn() (turn int, seatID string, automatic bool, ok bool)

	// Timeout resolves the turn on behalf of the seat that did not act in time
	// A turn that is no longer current is ignored and updateState is false
	Timeout(turn int) (updateState bool, err error)
}
