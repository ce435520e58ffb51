package services

import "errors"

var (
	// ErrValidation covers missing or malformed task fields.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidTransition is returned for lifecycle moves the state machine
	// does not allow, such as extending a finished task.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrTaskNotFound is returned when the id does not exist in the store.
	ErrTaskNotFound = errors.New("task not found")
)
