package appointment

import "errors"

var (
	ErrNotFound           = errors.New("appointment not found")
	ErrNotScheduled       = errors.New("appointment is not in scheduled status")
	ErrAlreadyAssigned    = errors.New("appointment already has an assigned staff member")
	ErrNotAssigned        = errors.New("appointment has no assigned staff member")
	ErrStaffNotFound      = errors.New("staff member not found")
	ErrWorkerTypeMismatch = errors.New("staff member's worker type does not match the appointment")
	ErrEmptyCancelReason  = errors.New("cancellation reason must not be empty")
)
