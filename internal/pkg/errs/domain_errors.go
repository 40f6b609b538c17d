package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Availability errors
	ErrNoSchedule      = errors.New("weekly schedule not configured")
	ErrInvalidSchedule = errors.New("invalid weekly schedule")

	// Scheduling errors
	ErrPastDate       = errors.New("date is in the past")
	ErrDateOutOfRange = errors.New("date beyond booking horizon")
	ErrSlotTaken      = errors.New("time slot already booked")
	ErrSlotNotOffered = errors.New("time slot was not offered")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")

	// Conversation errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFinished = errors.New("session already finished")
	ErrInvalidStep     = errors.New("operation not valid in current step")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
