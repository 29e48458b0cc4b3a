package chat

import (
	"errors"
	"fmt"
)

// Error classes. Handler errors match one of these through errors.Is;
// backend failures surface as *api.NetworkError instead.
var (
	ErrValidation = errors.New("validation error")
	ErrAuth       = errors.New("authentication error")
)

var (
	ErrNoAgentSelected = fmt.Errorf("%w: no agent selected", ErrValidation)
	ErrEmptyMessage    = fmt.Errorf("%w: empty message", ErrValidation)
	ErrSendInFlight    = fmt.Errorf("%w: a message is already being sent", ErrValidation)
	ErrIncorrectSecret = fmt.Errorf("%w: incorrect developer password", ErrAuth)

	// ErrReadOnly is returned by interactive handlers while in viewer mode.
	ErrReadOnly = errors.New("viewer mode is read-only")
	// ErrUnavailable is returned when the region a handler belongs to is hidden.
	ErrUnavailable = errors.New("not available in the current mode")
)
