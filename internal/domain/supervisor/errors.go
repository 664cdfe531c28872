package supervisor

import "errors"

var (
	ErrSupervisorNotFound = errors.New("supervisor not found")
	ErrUsernameExists     = errors.New("username already registered")
)
