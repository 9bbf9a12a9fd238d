package schedule

import "errors"

var (
	ErrNotFound    = errors.New("service schedule not found")
	ErrNotActive   = errors.New("service schedule is not active")
	ErrEnded       = errors.New("service schedule has ended")
	ErrNotEditable = errors.New("only draft and paused schedules can be edited")
)
