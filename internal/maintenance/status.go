package maintenance

import (
	"fmt"
	"strings"

	errors "github.com/cropmaint/machine-maintenance/internal"
)

// Status is the lifecycle state of a maintenance log. Values are immutable;
// a stored status is only ever swapped through the validated transition
// path, never mutated in place.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCanceled   Status = "CANCELED"
)

var statusNames = []string{
	string(StatusPending),
	string(StatusInProgress),
	string(StatusCompleted),
	string(StatusCanceled),
}

// allowedTransitions is the per-state set of permitted next states.
// Self-transitions are always allowed and are not listed. COMPLETED and
// CANCELED are terminal. Adding a state means adding one entry here.
var allowedTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusInProgress: true,
		StatusCanceled:   true,
	},
	StatusInProgress: {
		StatusCompleted: true,
		StatusCanceled:  true,
	},
	StatusCompleted: {},
	StatusCanceled:  {},
}

// ParseStatus resolves a status token case-insensitively. An unknown token
// yields a transition-typed error naming the token and the valid set.
func ParseStatus(token string) (Status, *errors.AppError) {
	s := Status(strings.ToUpper(strings.TrimSpace(token)))
	if _, ok := allowedTransitions[s]; !ok {
		return "", errors.NewTransitionError(
			fmt.Sprintf("invalid status value: %s. must be one of %s",
				token, strings.Join(statusNames, ", ")),
			errors.ErrCodeInvalidStatusValue)
	}
	return s, nil
}

// CanTransition reports whether the state machine permits from → to.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	return allowedTransitions[from][to]
}

// ValidateTransition returns a typed error carrying the attempted pair when
// the transition is not permitted.
func ValidateTransition(from, to Status) *errors.AppError {
	if CanTransition(from, to) {
		return nil
	}
	return errors.NewTransitionError(
		fmt.Sprintf("invalid status transition from %s to %s", from, to),
		errors.ErrCodeInvalidStatusTransition)
}
