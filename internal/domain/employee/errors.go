package employee

import "errors"

var (
	ErrMutationInFlight = errors.New("another employee change is still being submitted")
	ErrNoDeleteTarget   = errors.New("no employee selected for deletion")
	ErrEmployeeNotFound = errors.New("employee not found")
)
