package domain

import (
	"fmt"
	"strings"
)

// StateFilter selects a temporal/status bucket of bookings. The set is
// closed: adding a state means adding a constant here, a name below and a
// query clause in the database layer, all of which the compiler checks.
type StateFilter int

const (
	StateAll StateFilter = iota
	StateCurrent
	StatePast
	StateFuture
	StateWaiting
	StateRejected
)

var stateNames = map[string]StateFilter{
	"ALL":      StateAll,
	"CURRENT":  StateCurrent,
	"PAST":     StatePast,
	"FUTURE":   StateFuture,
	"WAITING":  StateWaiting,
	"REJECTED": StateRejected,
}

// ParseStateFilter resolves a case-insensitive token. The error message
// carries the token exactly as the caller sent it.
func ParseStateFilter(token string) (StateFilter, error) {
	state, ok := stateNames[strings.ToUpper(token)]
	if !ok {
		return StateAll, fmt.Errorf("%w: %s", ErrUnknownState, token)
	}
	return state, nil
}

func (s StateFilter) String() string {
	switch s {
	case StateAll:
		return "ALL"
	case StateCurrent:
		return "CURRENT"
	case StatePast:
		return "PAST"
	case StateFuture:
		return "FUTURE"
	case StateWaiting:
		return "WAITING"
	case StateRejected:
		return "REJECTED"
	default:
		return fmt.Sprintf("StateFilter(%d)", int(s))
	}
}
