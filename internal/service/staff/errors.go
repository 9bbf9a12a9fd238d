package staff

import "errors"

var (
	ErrNotFound       = errors.New("staff member not found")
	ErrDuplicateEmail = errors.New("a staff member with this email already exists")
)
