package domain

import "errors"

var (
	// ErrNotFound is returned when a requested task does not exist
	ErrNotFound = errors.New("task not found")

	// ErrOccurrenceNotFound is returned when a reschedule targets an
	// occurrence id that is not part of the task
	ErrOccurrenceNotFound = errors.New("occurrence not found")

	// ErrBadParamInput is returned when request parameters are invalid
	ErrBadParamInput = errors.New("invalid parameters")

	// ErrTaskCannotCancel is returned when a task is not in a cancellable state
	ErrTaskCannotCancel = errors.New("task cannot be cancelled in current state")
)
