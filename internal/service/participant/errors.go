package participant

import "errors"

var (
	ErrNotFound      = errors.New("participant not found")
	ErrPlanNotFound  = errors.New("ndis plan not found")
	ErrDuplicateNDIS = errors.New("a participant with this ndis number already exists")
)
