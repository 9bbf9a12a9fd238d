package timesheet

import "errors"

var (
	ErrNotFound         = errors.New("timesheet not found")
	ErrNotDraft         = errors.New("timesheet is not in draft status")
	ErrNotSubmitted     = errors.New("timesheet is not in submitted status")
	ErrEmptyReason      = errors.New("rejection reason must not be empty")
	ErrEmployeeNotFound = errors.New("employee not found")
)
