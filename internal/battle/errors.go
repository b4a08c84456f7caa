package battle

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAction is returned when a submitted action is rejected.
	// The battle is left unchanged.
	ErrInvalidAction = errors.New("invalid action")
	// ErrUnknownPlayer is returned when a name does not belong to the battle.
	ErrUnknownPlayer = errors.New("unknown player")
	// ErrResolutionFailed wraps errors raised by the round resolver.
	ErrResolutionFailed = errors.New("round resolution failed")

	ErrInvalidTransition = errors.New("invalid state transition")
)

// ActionError describes why an action was rejected.
type ActionError struct {
	PlayerName string
	Reason     string
	// Cause is set when an ActionChecker rejected the action.
	Cause error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("invalid action by %s: %s", e.PlayerName, e.Reason)
}

func (e *ActionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidAction}
	}
	return []error{ErrInvalidAction, e.Cause}
}

func invalid(player, reason string) error {
	return &ActionError{PlayerName: player, Reason: reason}
}
