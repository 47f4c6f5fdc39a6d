package domain

import "fmt"

// transitions is the single source of truth for legal status changes.
// Fulfilled and cancelled are terminal: once reached, the order can never be
// mutated again. Self-transitions are illegal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusFulfilled, StatusCancelled},
	StatusFulfilled: {},
	StatusCancelled: {},
}

// CanTransition reports whether from→to is legal and, when it is not, a
// human-readable reason.
func CanTransition(from, to Status) (bool, string) {
	allowed, known := transitions[from]
	if !known {
		return false, fmt.Sprintf("status %q is unknown", from)
	}
	if _, known := transitions[to]; !known {
		return false, fmt.Sprintf("status %q is unknown", to)
	}
	if from == to {
		return false, fmt.Sprintf("order is already %s", from)
	}
	for _, s := range allowed {
		if s == to {
			return true, ""
		}
	}
	if IsTerminal(from) {
		return false, fmt.Sprintf("%s is a terminal status", from)
	}
	return false, fmt.Sprintf("cannot transition from %s to %s", from, to)
}

// IsTerminal reports whether a status has no outgoing transitions.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

// AllowedTransitions returns the legal targets from the given status.
func AllowedTransitions(from Status) []Status {
	allowed := transitions[from]
	result := make([]Status, len(allowed))
	copy(result, allowed)
	return result
}
