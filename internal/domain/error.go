package domain

import "errors"

var (
	// ErrInvalidHour indicates that an hour is outside 0-23.
	ErrInvalidHour = errors.New("hour must be between 0 and 23")

	// ErrInvalidMinute indicates that a minute is outside 0-59.
	ErrInvalidMinute = errors.New("minute must be between 0 and 59")

	// ErrInvalidClockFormat indicates that a clock string could not be parsed.
	ErrInvalidClockFormat = errors.New("invalid clock time, want HH:MM or HH:MM+1")

	// ErrBreakNotFound indicates that no break matches the given reference.
	ErrBreakNotFound = errors.New("break not found")

	// ErrDuplicateBreakID indicates that two breaks share an identifier.
	ErrDuplicateBreakID = errors.New("duplicate break id")

	// ErrUnknownPolicy indicates an unsupported legal policy name.
	ErrUnknownPolicy = errors.New("unknown legal policy")

	// ErrInvalidThreshold indicates a non-positive legal threshold.
	ErrInvalidThreshold = errors.New("legal thresholds must be positive")

	// ErrDutyInvalid is returned by callers that turn an invalid result into a failure.
	ErrDutyInvalid = errors.New("duty is invalid")
)
