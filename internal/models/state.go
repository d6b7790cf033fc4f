package models

// State classifies bookings at query time relative to the wall clock. It is
// never stored.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"

	// StateUnsupported marks a caller-supplied value outside the known set.
	// Parsing never fails; the engine rejects the sentinel instead.
	StateUnsupported State = "UNSUPPORTED_STATUS"
)

// ParseState maps a raw query value to a State. An empty value means ALL,
// anything unrecognized maps to StateUnsupported.
func ParseState(raw string) State {
	if raw == "" {
		return StateAll
	}
	switch State(raw) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(raw)
	}
	return StateUnsupported
}
